package domain

import "errors"

// Категории ошибок. Все ошибки use case оборачивают ровно одну из них,
// чтобы транспортный слой мог выбрать код ответа через errors.Is.
var (
	// ErrNotFound салон, сотрудник, услуга, часы работы или запись не найдены
	ErrNotFound = errors.New("not found")

	// ErrConflict выбранный слот уже занят на момент сохранения
	ErrConflict = errors.New("conflict")

	// ErrValidation некорректные входные данные
	ErrValidation = errors.New("validation failed")

	// ErrAccessDenied у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")
)

package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidInterval возвращается при некорректном формате интервала "HH:MM-HH:MM"
	ErrInvalidInterval = errors.New("invalid interval, expected HH:MM-HH:MM")

	// ErrEmptyInterval возвращается, когда начало интервала не раньше конца
	ErrEmptyInterval = errors.New("interval start must be before end")
)

// Interval полуоткрытый интервал времени суток [Start, End)
type Interval struct {
	Start TimeOfDay `json:"start" toml:"start"`
	End   TimeOfDay `json:"end" toml:"end"`
}

// NewInterval создает интервал и проверяет, что он не пустой
func NewInterval(start, end TimeOfDay) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// ParseInterval разбирает строку вида "09:00-17:00"
func ParseInterval(s string) (Interval, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}

	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %v", ErrInvalidInterval, s, err)
	}
	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q: %v", ErrInvalidInterval, s, err)
	}

	return NewInterval(start, end)
}

// MustParseInterval как ParseInterval, но паникует при ошибке
func MustParseInterval(s string) Interval {
	iv, err := ParseInterval(s)
	if err != nil {
		panic(err)
	}
	return iv
}

// Validate проверяет границы интервала
func (iv Interval) Validate() error {
	if !iv.Start.IsValid() || !iv.End.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, iv)
	}
	if !iv.Start.Before(iv.End) {
		return fmt.Errorf("%w: %s", ErrEmptyInterval, iv)
	}
	return nil
}

// IsZero сообщает, что интервал не задан
func (iv Interval) IsZero() bool {
	return iv.Start == 0 && iv.End == 0
}

// Duration длительность интервала
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.End-iv.Start) * time.Minute
}

// Within сообщает, что iv целиком лежит внутри outer
func (iv Interval) Within(outer Interval) bool {
	return !iv.Start.Before(outer.Start) && !iv.End.After(outer.End)
}

// On привязывает интервал к календарной дате, возвращая абсолютные границы
func (iv Interval) On(date time.Time) (time.Time, time.Time) {
	return iv.Start.On(date), iv.End.On(date)
}

// String форматирует интервал как "HH:MM-HH:MM"
func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// MarshalText реализует encoding.TextMarshaler
func (iv Interval) MarshalText() ([]byte, error) {
	return []byte(iv.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (iv *Interval) UnmarshalText(text []byte) error {
	parsed, err := ParseInterval(string(text))
	if err != nil {
		return err
	}
	*iv = parsed
	return nil
}

// MarshalJSON сериализует интервал объектом {"start":"HH:MM","end":"HH:MM"}
func (iv Interval) MarshalJSON() ([]byte, error) {
	type plain Interval
	return json.Marshal(plain(iv))
}

// UnmarshalJSON принимает и объект {"start","end"}, и строку "HH:MM-HH:MM"
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return iv.UnmarshalText([]byte(s))
	}

	type plain Interval
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	parsed, err := NewInterval(p.Start, p.End)
	if err != nil {
		return err
	}
	*iv = parsed
	return nil
}

// Value реализует driver.Valuer, в БД интервал хранится как TEXT "HH:MM-HH:MM"
func (iv Interval) Value() (driver.Value, error) {
	return iv.String(), nil
}

// Scan реализует sql.Scanner
func (iv *Interval) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return iv.UnmarshalText([]byte(v))
	case []byte:
		return iv.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidInterval, src)
	}
}

package get_employee_schedule

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из параметров пути и query
func ToServiceRequest(userID, salonID, employeeID, dateStr string) (*models.ListEmployeeDayRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &models.ListEmployeeDayRequest{
		UserID:     userID,
		SalonID:    salonID,
		EmployeeID: employeeID,
		Date:       date,
	}, nil
}

package memory

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ErrInvalidSeed возвращается, когда файл начальных данных не читается или содержит ошибки
var ErrInvalidSeed = errors.New("memory.store: invalid seed")

// Seed начальные данные хранилища (TOML)
//
//	[[salons]]
//	id = "salon-1"
//	owner_id = "owner-1"
//	  [salons.hours.monday]
//	  open = "09:00-17:00"
//	  breaks = ["12:00-13:00"]
//
//	[[employees]]
//	id = "emp-1"
//	salon_id = "salon-1"
//	work_hours = "10:00-18:00"
type Seed struct {
	Salons    []SeedSalon    `toml:"salons"`
	Employees []SeedEmployee `toml:"employees"`
	Services  []SeedService  `toml:"services"`
}

type SeedSalon struct {
	ID      string                  `toml:"id"`
	OwnerID string                  `toml:"owner_id"`
	Name    string                  `toml:"name"`
	Hours   map[string]SeedDayHours `toml:"hours"`
}

type SeedDayHours struct {
	Open   types.Interval   `toml:"open"`
	Breaks []types.Interval `toml:"breaks"`
}

type SeedEmployee struct {
	ID        string           `toml:"id"`
	SalonID   string           `toml:"salon_id"`
	Name      string           `toml:"name"`
	WorkHours types.Interval   `toml:"work_hours"`
	Breaks    []types.Interval `toml:"breaks"`
}

type SeedService struct {
	ID              string  `toml:"id"`
	SalonID         string  `toml:"salon_id"`
	Name            string  `toml:"name"`
	DurationMinutes int     `toml:"duration_minutes"`
	Price           float64 `toml:"price"`
}

// LoadSeed читает файл начальных данных и заполняет им хранилище
func (s *Store) LoadSeed(path string) error {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidSeed, path, err)
	}
	return s.Apply(seed)
}

// Apply добавляет в хранилище салоны, затем сотрудников и услуги
func (s *Store) Apply(seed Seed) error {
	for _, sl := range seed.Salons {
		hours := make(domain.WeeklyHours, len(sl.Hours))
		for name, h := range sl.Hours {
			day, err := domain.ParseWeekday(name)
			if err != nil {
				return fmt.Errorf("%w: salon %s: %v", ErrInvalidSeed, sl.ID, err)
			}
			hours[day] = domain.DayHours{Open: h.Open, Breaks: h.Breaks}
		}

		err := s.AddSalon(domain.Salon{ID: sl.ID, OwnerID: sl.OwnerID, Name: sl.Name, Hours: hours})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
	}

	for _, e := range seed.Employees {
		err := s.AddEmployee(domain.Employee{
			ID:        e.ID,
			SalonID:   e.SalonID,
			Name:      e.Name,
			WorkHours: e.WorkHours,
			Breaks:    e.Breaks,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
	}

	for _, svc := range seed.Services {
		err := s.AddService(domain.Service{
			ID:              svc.ID,
			SalonID:         svc.SalonID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeed, err)
		}
	}

	return nil
}

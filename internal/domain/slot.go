package domain

import "github.com/m04kA/TRG-ScheduleService/pkg/types"

// Slot свободный интервал, предлагаемый для бронирования сеанса
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// End возвращает время окончания слота
func (s *Slot) End() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}

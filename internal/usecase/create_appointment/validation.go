package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// validateRequest валидирует форму запроса до обращения к хранимым данным
func validateRequest(req *Request) error {
	if req.TherapistID == uuid.Nil {
		return fmt.Errorf("%w: therapistID is required", ErrInvalidInput)
	}

	if req.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patientID is required", ErrInvalidInput)
	}

	if req.TherapistID == req.PatientID {
		return fmt.Errorf("%w: therapist cannot book a session with themselves", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата попадает в допустимый горизонт бронирования
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что запись не нарушает minBookingNoticeMinutes
func validateBookingTime(
	date time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Для будущих дат проверка не нужна
	if !isSameDay(date, now) {
		return nil
	}

	start, err := startTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	minAllowed := now.Hour()*60 + now.Minute() + minBookingNoticeMinutes

	if start < minAllowed {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// fitsWorkingHours проверяет, что интервал сеанса целиком помещается хотя бы
// в одно активное окно приёма (конец сеанса может совпадать с закрытием)
func fitsWorkingHours(rules []*domain.AvailabilityRule, startMinutes, durationMinutes int) bool {
	end := startMinutes + durationMinutes

	for _, rule := range rules {
		if !rule.IsActive || !rule.IsWellFormed() {
			continue
		}

		open, err := rule.StartTime.TotalMinutes()
		if err != nil {
			continue
		}
		close, err := rule.EndTime.TotalMinutes()
		if err != nil {
			continue
		}

		if startMinutes >= open && end <= close {
			return true
		}
	}

	return false
}

// findConflict ищет активный сеанс, пересекающийся с интервалом [start, end)
// Строгие неравенства: сеансы впритык не конфликтуют
func findConflict(appointments []*domain.Appointment, startMinutes, durationMinutes int) *domain.Appointment {
	end := startMinutes + durationMinutes

	for _, apt := range appointments {
		if !apt.IsActive() {
			continue
		}

		aptStart, err := apt.StartTime.TotalMinutes()
		if err != nil {
			continue
		}
		aptEnd := aptStart + apt.DurationMinutes

		if aptStart < end && aptEnd > startMinutes {
			return apt
		}
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

package create_appointment

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("create_appointment: therapist not found")

	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrOutsideWorkingHours возвращается, когда интервал сеанса не помещается
	// ни в одно активное окно приёма терапевта в этот день
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside therapist working hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим
	// активным сеансом — ожидаемый исход гонки за слот, не сбой
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

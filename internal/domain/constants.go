package domain

// Значения конфигурации по умолчанию
const (
	DefaultSessionDurationMinutes  = 60 // Стандартная длительность сеанса терапии
	DefaultSlotGranularityMinutes  = 30 // Слоты на целых и половинах часа
	DefaultAdvanceBookingDays      = 0  // 0 = без ограничения
	DefaultMinBookingNoticeMinutes = 60
)

// Границы бизнес-валидации
const (
	MinSessionDurationMinutes   = 15
	MaxSessionDurationMinutes   = 240
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 120
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MinNoticeMinutes            = 0
	MaxNoticeMinutes            = 10080 // Неделя
	MinDayOfWeek                = 0
	MaxDayOfWeek                = 6
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы сеансов, не занимающих слот в расписании
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByPatient,
	StatusCancelledByTherapist,
	StatusNoShow,
}

// ActiveStatuses статусы сеансов, блокирующих слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

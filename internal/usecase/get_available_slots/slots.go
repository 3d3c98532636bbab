package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/TRG-ScheduleService/internal/domain"
	"github.com/m04kA/TRG-ScheduleService/pkg/types"
)

// interval полуинтервал [start, end) в минутах с начала суток
// Вся арифметика слотов ведётся в целых минутах: никакой плавающей точки
// и никакого парсинга строк внутри цикла
type interval struct {
	start int
	end   int
}

// overlaps проверяет пересечение двух полуинтервалов
// Строгие неравенства: сеансы впритык (один заканчивается ровно там, где
// начинается другой) пересечением не считаются
//
// Примеры:
// - Слот 11:30-12:30, сеанс 11:00-12:00 → ЕСТЬ пересечение (11:30-12:00)
// - Слот 12:00-13:00, сеанс 11:00-12:00 → НЕТ пересечения (граничат)
func (i interval) overlaps(other interval) bool {
	return i.start < other.end && i.end > other.start
}

// computeSlots вычисляет свободные слоты на день
//
// Для каждого активного правила кандидаты идут от начала окна с шагом
// granularityMinutes; кандидат допустим, только если сеанс целиком помещается
// в окно (конец сеанса может совпадать с закрытием). Кандидаты, пересекающиеся
// хотя бы с одним активным сеансом, отбрасываются. Результат по всем правилам
// дедуплицируется и сортируется: пересекающиеся или граничащие правила на один
// день не дают ни дубликатов, ни нарушения порядка
//
// Некорректное правило (start >= end) и правило с нечитаемым временем просто
// не дают слотов. Пустой список правил даёт пустой результат, не ошибку
func computeSlots(
	rules []*domain.AvailabilityRule,
	appointments []*domain.Appointment,
	durationMinutes int,
	granularityMinutes int,
) []types.TimeString {
	if durationMinutes <= 0 || granularityMinutes <= 0 {
		return []types.TimeString{}
	}

	busy := collectBusyIntervals(appointments)

	seen := make(map[int]struct{})

	for _, rule := range rules {
		if !rule.IsActive {
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

		// Правило с пустым или вывернутым окном слотов не даёт
		if open >= close {
			continue
		}

		for start := open; start+durationMinutes <= close; start += granularityMinutes {
			candidate := interval{start: start, end: start + durationMinutes}

			if overlapsAny(candidate, busy) {
				continue
			}

			seen[start] = struct{}{}
		}
	}

	starts := make([]int, 0, len(seen))
	for start := range seen {
		starts = append(starts, start)
	}
	sort.Ints(starts)

	result := make([]types.TimeString, 0, len(starts))
	for _, start := range starts {
		ts, err := types.FromMinutes(start)
		if err != nil {
			continue
		}
		result = append(result, ts)
	}

	return result
}

// collectBusyIntervals собирает интервалы активных сеансов
// Отменённые и no-show сеансы слоты не блокируют
func collectBusyIntervals(appointments []*domain.Appointment) []interval {
	busy := make([]interval, 0, len(appointments))

	for _, apt := range appointments {
		if !apt.IsActive() {
			continue
		}

		start, err := apt.StartTime.TotalMinutes()
		if err != nil {
			continue
		}

		busy = append(busy, interval{start: start, end: start + apt.DurationMinutes})
	}

	return busy
}

func overlapsAny(candidate interval, busy []interval) bool {
	for _, b := range busy {
		if candidate.overlaps(b) {
			return true
		}
	}

	return false
}

// filterByNotice отбрасывает слоты, нарушающие минимальное время до записи
// Фильтр действует только когда запрошенная дата — сегодня
func filterByNotice(
	slots []types.TimeString,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) []types.TimeString {
	if !isSameDay(requestDate, now) {
		return slots
	}

	minAllowed := now.Hour()*60 + now.Minute() + minBookingNoticeMinutes

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		start, err := slot.TotalMinutes()
		if err != nil {
			continue
		}
		if start >= minAllowed {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

package get_available_slots

import (
	"time"

	"carservice/internal/domain"
)

// buildSlotGrid строит полную сетку слотов на день для пары (станция, услуга).
// Сетка идет от открытия до закрытия с фиксированным шагом; конец каждого
// слота это начало плюс длительность УСЛУГИ, а не шаг сетки. Слот доступен,
// если его интервал не пересекается ни с одним активным бронированием и
// начало строго в будущем.
//
// Сетка генерируется всегда полностью, занятые и прошедшие слоты помечаются
// IsAvailable=false, но из ответа не выбрасываются
func buildSlotGrid(
	window domain.OperatingWindow,
	date time.Time,
	serviceDurationMinutes int,
	now time.Time,
	bookings []*domain.Booking,
) []domain.TimeSlot {
	dayStart := window.DayStart(date)
	dayEnd := window.DayEnd(date)
	step := time.Duration(window.SlotStepMinutes) * time.Minute
	serviceDuration := time.Duration(serviceDurationMinutes) * time.Minute

	slots := make([]domain.TimeSlot, 0, window.SlotCount())

	for start := dayStart; start.Before(dayEnd); start = start.Add(step) {
		end := start.Add(serviceDuration)

		slots = append(slots, domain.TimeSlot{
			StartTime:   start,
			EndTime:     end,
			IsAvailable: start.After(now) && !intersectsAny(start, end, bookings),
			DisplayTime: start.Format(domain.TimeFormat),
		})
	}

	return slots
}

// intersectsAny проверяет пересечение интервала слота с активными бронированиями
func intersectsAny(slotStart, slotEnd time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		// Пропускаем неактивные бронирования
		if !b.IsActive() {
			continue
		}
		if domain.IntervalsIntersect(b.ScheduledDate, b.IntervalEnd(), slotStart, slotEnd) {
			return true
		}
	}
	return false
}

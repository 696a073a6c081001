package domain

import "time"

// OverlapPolicy decides whether a candidate booking conflicts with the
// supplied set of existing bookings. Implementations must ignore inactive
// bookings themselves, callers pass the raw set.
//
// Две реализации намеренно живут рядом: SymmetricWindowPolicy воспроизводит
// исторически принятое приближение, ExactIntervalPolicy считает точное
// пересечение интервалов. Выбор политики - явное решение вызывающего кода
type OverlapPolicy interface {
	Name() string
	// QueryWindow returns the inclusive scheduled_date range a caller must
	// fetch so that Conflicts sees every booking the policy examines
	QueryWindow(candidate time.Time, durationMinutes int) (time.Time, time.Time)
	Conflicts(candidate time.Time, durationMinutes int, existing []*Booking) bool
}

// SymmetricWindowPolicy rejects a candidate when any active booking at the
// station STARTS inside the window [candidate-duration, candidate+duration],
// widened on both sides by the candidate's own service duration.
//
// Приближение консервативное: длительности существующих бронирований не
// учитываются, поэтому возможны и ложные отказы, и пропуски при сильно
// различающихся длительностях услуг. Сохранено для совместимости
type SymmetricWindowPolicy struct{}

// Name returns the policy identifier used in logs
func (SymmetricWindowPolicy) Name() string { return "symmetric_window" }

// QueryWindow returns the inclusive query window around the candidate start.
// Репозиторий использует его для выборки бронирований одним запросом
func (SymmetricWindowPolicy) QueryWindow(candidate time.Time, durationMinutes int) (time.Time, time.Time) {
	d := time.Duration(durationMinutes) * time.Minute
	return candidate.Add(-d), candidate.Add(d)
}

// Conflicts reports whether any active booking starts inside the window
func (p SymmetricWindowPolicy) Conflicts(candidate time.Time, durationMinutes int, existing []*Booking) bool {
	from, to := p.QueryWindow(candidate, durationMinutes)

	for _, b := range existing {
		if !b.IsActive() {
			continue
		}
		// Границы окна включительно, как в исходном запросе BETWEEN
		if !b.ScheduledDate.Before(from) && !b.ScheduledDate.After(to) {
			return true
		}
	}
	return false
}

// ExactIntervalPolicy rejects a candidate when its interval
// [candidate, candidate+duration) truly intersects the interval of any
// active booking, each taken with its own stored duration
type ExactIntervalPolicy struct{}

// Name returns the policy identifier used in logs
func (ExactIntervalPolicy) Name() string { return "exact_interval" }

// QueryWindow returns a range wide enough to catch long-running bookings
// that started before the candidate but still intersect it
func (ExactIntervalPolicy) QueryWindow(candidate time.Time, durationMinutes int) (time.Time, time.Time) {
	return candidate.Add(-MaxServiceDurationMinutes * time.Minute),
		candidate.Add(time.Duration(durationMinutes) * time.Minute)
}

// Conflicts reports whether the candidate interval intersects any active booking
func (ExactIntervalPolicy) Conflicts(candidate time.Time, durationMinutes int, existing []*Booking) bool {
	candidateEnd := candidate.Add(time.Duration(durationMinutes) * time.Minute)

	for _, b := range existing {
		if !b.IsActive() {
			continue
		}
		if IntervalsIntersect(candidate, candidateEnd, b.ScheduledDate, b.IntervalEnd()) {
			return true
		}
	}
	return false
}

// IntervalsIntersect is the three-way interval intersection test used by the
// slot grid: partial overlap on the left, partial overlap on the right, or
// full containment. Boundary-touching intervals do not intersect
func IntervalsIntersect(aStart, aEnd, bStart, bEnd time.Time) bool {
	// Начало первого интервала внутри второго
	if !aStart.Before(bStart) && aStart.Before(bEnd) {
		return true
	}
	// Конец первого интервала внутри второго
	if aEnd.After(bStart) && !aEnd.After(bEnd) {
		return true
	}
	// Первый интервал полностью накрывает второй
	if !aStart.After(bStart) && !aEnd.Before(bEnd) {
		return true
	}
	return false
}

package domain

import "time"

// OperatingWindow is the global daily operating window of all stations.
// It is injected from configuration; per-station hours are not supported
// (the textual Station.OperatingHours field is display-only).
type OperatingWindow struct {
	OpenHour        int
	CloseHour       int
	SlotStepMinutes int
}

// DefaultOperatingWindow returns the standard 8:00-18:00 window with a
// 30-minute slot step
func DefaultOperatingWindow() OperatingWindow {
	return OperatingWindow{
		OpenHour:        DefaultOpenHour,
		CloseHour:       DefaultCloseHour,
		SlotStepMinutes: DefaultSlotStepMinutes,
	}
}

// DayStart returns the opening instant of the window on the given date
func (w OperatingWindow) DayStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), w.OpenHour, 0, 0, 0, date.Location())
}

// DayEnd returns the closing instant of the window on the given date
func (w OperatingWindow) DayEnd(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), w.CloseHour, 0, 0, 0, date.Location())
}

// AllowsStartHour reports whether t falls inside operating hours.
// Сравнивается ТОЛЬКО поле часа, минуты игнорируются: запись на 18:45
// проходит проверку. Это зафиксированный контракт с существующими
// клиентами, менять только вместе с мобильным приложением
func (w OperatingWindow) AllowsStartHour(t time.Time) bool {
	hour := t.Hour()
	return hour >= w.OpenHour && hour <= w.CloseHour
}

// SlotCount returns the number of grid slots covering the window
func (w OperatingWindow) SlotCount() int {
	minutes := (w.CloseHour - w.OpenHour) * 60
	return (minutes + w.SlotStepMinutes - 1) / w.SlotStepMinutes
}

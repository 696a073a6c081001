package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperatingWindow_DayBounds(t *testing.T) {
	w := DefaultOperatingWindow()
	date := time.Date(2026, time.March, 10, 14, 37, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC), w.DayStart(date))
	assert.Equal(t, time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC), w.DayEnd(date))
}

func TestOperatingWindow_AllowsStartHour(t *testing.T) {
	w := DefaultOperatingWindow()

	tests := []struct {
		name    string
		hour    int
		min     int
		allowed bool
	}{
		{"before opening", 7, 59, false},
		{"at opening", 8, 0, true},
		{"midday", 12, 30, true},
		{"at closing hour", 18, 0, true},
		// Минуты не проверяются: 18:45 проходит, хотя окно закрывается в 18:00
		{"past closing within closing hour", 18, 45, true},
		{"after closing hour", 19, 0, false},
		{"midnight", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := time.Date(2026, time.March, 10, tt.hour, tt.min, 0, 0, time.UTC)
			assert.Equal(t, tt.allowed, w.AllowsStartHour(candidate))
		})
	}
}

func TestOperatingWindow_SlotCount(t *testing.T) {
	assert.Equal(t, 20, DefaultOperatingWindow().SlotCount())

	// Неполный последний шаг округляется вверх
	w := OperatingWindow{OpenHour: 8, CloseHour: 9, SlotStepMinutes: 45}
	assert.Equal(t, 2, w.SlotCount())
}

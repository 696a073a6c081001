package domain

// Default schedule values
// Рабочие часы единые для всех станций, см. ScheduleConfig
const (
	DefaultOpenHour        = 8
	DefaultCloseHour       = 18
	DefaultSlotStepMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes     = 5
	MaxServiceDurationMinutes     = 480 // 8 hours
	MaxSpecialInstructionsLength  = 1000
	MaxStatusNotesLength          = 500
	DefaultUserBookingsPageSize   = 10
	MaxUserBookingsPageSize       = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие временной слот
// Только они участвуют в проверках пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// AllStatuses полный список допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

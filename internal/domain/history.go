package domain

import "time"

// BookingStatusHistory is an append-only audit record of a single status
// transition. Exactly one entry is written per transition, including the
// initial pending entry at creation. Entries are never updated or deleted.
type BookingStatusHistory struct {
	ID        int64
	BookingID int64
	Status    BookingStatus
	Notes     *string
	ChangedBy int64
	CreatedAt time.Time
}

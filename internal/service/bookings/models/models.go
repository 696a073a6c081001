package models

import (
	"errors"
	"time"

	"carservice/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
	Page   int     `json:"page,omitempty"`
	Limit  int     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр с нормализацией пагинации
func (r *GetUserBookingsRequest) ToDomainFilter() (domain.UserBookingsFilter, error) {
	filter := domain.UserBookingsFilter{
		UserID: r.UserID,
		Limit:  r.Limit,
	}

	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultUserBookingsPageSize
	}
	if filter.Limit > domain.MaxUserBookingsPageSize {
		filter.Limit = domain.MaxUserBookingsPageSize
	}

	page := r.Page
	if page <= 0 {
		page = 1
	}
	filter.Offset = (page - 1) * filter.Limit

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64   `json:"userId"`
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                  int64                 `json:"id"`
	UserID              int64                 `json:"userId"`
	ServiceID           int64                 `json:"serviceId"`
	StationID           int64                 `json:"stationId"`
	ScheduledDate       time.Time             `json:"scheduledDate"`
	DurationMinutes     int                   `json:"durationMinutes"`
	TotalPrice          float64               `json:"totalPrice"`
	Status              string                `json:"status"`
	VehicleDetails      domain.VehicleDetails `json:"vehicleDetails"`
	SpecialInstructions *string               `json:"specialInstructions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusHistoryEntry запись истории смены статуса
type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	ChangedBy int64     `json:"changedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingDetailResponse бронирование вместе с историей статусов
type BookingDetailResponse struct {
	BookingResponse
	StatusHistory []StatusHistoryEntry `json:"statusHistory"`
}

// Pagination данные о странице выборки
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// BookingListResponse ответ со списком бронирований пользователя
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Pagination Pagination        `json:"pagination"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		ServiceID:           b.ServiceID,
		StationID:           b.StationID,
		ScheduledDate:       b.ScheduledDate,
		DurationMinutes:     b.DurationMinutes,
		TotalPrice:          b.TotalPrice,
		Status:              string(b.Status),
		VehicleDetails:      b.VehicleDetails,
		SpecialInstructions: b.SpecialInstructions,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingDetail конвертирует бронирование с историей в DTO
func FromDomainBookingDetail(b *domain.Booking, history []*domain.BookingStatusHistory) *BookingDetailResponse {
	if b == nil {
		return nil
	}

	resp := &BookingDetailResponse{
		BookingResponse: *FromDomainBooking(b),
		StatusHistory:   make([]StatusHistoryEntry, len(history)),
	}

	for i, h := range history {
		resp.StatusHistory[i] = StatusHistoryEntry{
			Status:    string(h.Status),
			Notes:     h.Notes,
			ChangedBy: h.ChangedBy,
			CreatedAt: h.CreatedAt,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует страницу бронирований в DTO
func FromDomainBookingList(bookings []*domain.Booking, filter domain.UserBookingsFilter, total int64) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
		Pagination: Pagination{
			Page:  filter.Offset/filter.Limit + 1,
			Limit: filter.Limit,
			Total: total,
		},
	}
	resp.Pagination.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

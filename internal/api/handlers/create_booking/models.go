package create_booking

import (
	"time"

	"carservice/internal/domain"
	createBooking "carservice/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// UserID берется из заголовка аутентификации, не из тела
type CreateBookingRequest struct {
	ServiceID           int64          `json:"serviceId" validate:"required,gt=0"`
	StationID           int64          `json:"stationId" validate:"required,gt=0"`
	ScheduledDate       string         `json:"scheduledDate" validate:"required"` // RFC3339
	VehicleDetails      VehicleDetails `json:"vehicleDetails" validate:"required"`
	SpecialInstructions *string        `json:"specialInstructions,omitempty" validate:"omitempty,max=1000"`
}

// VehicleDetails данные автомобиля клиента
type VehicleDetails struct {
	Make         string  `json:"make" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required,gte=1900,lte=2100"`
	LicensePlate string  `json:"licensePlate" validate:"required"`
	Color        *string `json:"color,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                  int64          `json:"id"`
	UserID              int64          `json:"userId"`
	ServiceID           int64          `json:"serviceId"`
	StationID           int64          `json:"stationId"`
	ScheduledDate       string         `json:"scheduledDate"`
	DurationMinutes     int            `json:"durationMinutes"`
	TotalPrice          float64        `json:"totalPrice"`
	Status              string         `json:"status"`
	VehicleDetails      VehicleDetails `json:"vehicleDetails"`
	SpecialInstructions *string        `json:"specialInstructions,omitempty"`
	ServiceName         string         `json:"serviceName"`
	StationName         string         `json:"stationName"`
	CreatedAt           string         `json:"createdAt"`
	UpdatedAt           string         `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату со временем
	scheduledDate, err := time.Parse(time.RFC3339, r.ScheduledDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:        userID,
		ServiceID:     r.ServiceID,
		StationID:     r.StationID,
		ScheduledDate: scheduledDate,
		VehicleDetails: domain.VehicleDetails{
			Make:         r.VehicleDetails.Make,
			Model:        r.VehicleDetails.Model,
			Year:         r.VehicleDetails.Year,
			LicensePlate: r.VehicleDetails.LicensePlate,
			Color:        r.VehicleDetails.Color,
		},
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ServiceID:       resp.ServiceID,
		StationID:       resp.StationID,
		ScheduledDate:   resp.ScheduledDate.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice,
		Status:          resp.Status,
		VehicleDetails: VehicleDetails{
			Make:         resp.VehicleDetails.Make,
			Model:        resp.VehicleDetails.Model,
			Year:         resp.VehicleDetails.Year,
			LicensePlate: resp.VehicleDetails.LicensePlate,
			Color:        resp.VehicleDetails.Color,
		},
		SpecialInstructions: resp.SpecialInstructions,
		ServiceName:         resp.ServiceName,
		StationName:         resp.StationName,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}

package create_booking

import (
	"fmt"
	"time"

	"carservice/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduledDate is required", ErrInvalidInput)
	}

	if err := validateVehicleDetails(&req.VehicleDetails); err != nil {
		return err
	}

	if req.SpecialInstructions != nil && len(*req.SpecialInstructions) > domain.MaxSpecialInstructionsLength {
		return fmt.Errorf("%w: specialInstructions must be at most %d characters",
			ErrInvalidInput, domain.MaxSpecialInstructionsLength)
	}

	return nil
}

// validateVehicleDetails проверяет обязательные поля данных автомобиля
func validateVehicleDetails(vd *domain.VehicleDetails) error {
	if vd.Make == "" {
		return fmt.Errorf("%w: vehicle make is required", ErrInvalidInput)
	}
	if vd.Model == "" {
		return fmt.Errorf("%w: vehicle model is required", ErrInvalidInput)
	}
	if vd.Year <= 0 {
		return fmt.Errorf("%w: vehicle year must be positive", ErrInvalidInput)
	}
	if vd.LicensePlate == "" {
		return fmt.Errorf("%w: vehicle licensePlate is required", ErrInvalidInput)
	}
	return nil
}

// validateSchedule проверяет, что запрошенное время допустимо для бронирования.
// Порядок проверок фиксированный: сначала прошлое, затем рабочие часы
func validateSchedule(scheduledDate, now time.Time, window domain.OperatingWindow) error {
	// Время должно быть строго в будущем
	if !scheduledDate.After(now) {
		return ErrPastSchedule
	}

	if !window.AllowsStartHour(scheduledDate) {
		return ErrOutsideOperatingHours
	}

	return nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"

	"carservice/internal/domain"
	bookingRepo "carservice/internal/infra/storage/booking"
	catalogRepo "carservice/internal/infra/storage/catalog"
	"carservice/pkg/ptr"
)

// historyNoteCreated заметка, записываемая в историю при создании бронирования
const historyNoteCreated = "Booking created"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	catalogRepo   CatalogRepository
	txManager     TransactionManager
	window        domain.OperatingWindow
	overlapPolicy domain.OverlapPolicy
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	window domain.OperatingWindow,
	overlapPolicy domain.OverlapPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogRepo:   catalogRepo,
		txManager:     txManager,
		window:        window,
		overlapPolicy: overlapPolicy,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, station=%d, service=%d, date=%s",
		req.UserID, req.StationID, req.ServiceID, req.ScheduledDate.Format(domain.DateFormat+" "+domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем станцию
	station, err := uc.catalogRepo.GetStationByID(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStationNotFound) {
			uc.logger.Warn("CreateBooking: station id=%d not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get station id=%d: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}
	if !station.IsActive {
		uc.logger.Warn("CreateBooking: station id=%d is inactive", req.StationID)
		return nil, ErrStationNotFound
	}

	// 4. Получаем услугу
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Проверяем, что услуга оказывается на станции, и берем цену
	price, err := uc.catalogRepo.GetActivePrice(ctx, req.StationID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPriceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not available at station id=%d",
				req.ServiceID, req.StationID)
			return nil, ErrServiceNotAvailableAtStation
		}
		uc.logger.Error("CreateBooking: failed to get price station=%d service=%d: %v",
			req.StationID, req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get price: %v", ErrInternal, err)
	}

	// 6. Валидация запрошенного времени
	if err := validateSchedule(req.ScheduledDate, now, uc.window); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Выбираем активные бронирования станции в окне политики
		// с блокировкой строк (FOR UPDATE)
		from, to := uc.overlapPolicy.QueryWindow(req.ScheduledDate, service.EstimatedDurationMinutes)

		existing, err := uc.bookingRepo.GetActiveInWindow(txCtx, req.StationID, from, to)
		if err != nil {
			// Ошибка сериализации может прийти уже на SELECT FOR UPDATE,
			// не только на Commit: отдаем её необернутой
			if bookingRepo.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to get bookings in window: %v", err)
			return fmt.Errorf("%w: failed to get bookings in window: %v", ErrInternal, err)
		}

		// 7.2. Проверяем доступность слота
		if uc.overlapPolicy.Conflicts(req.ScheduledDate, service.EstimatedDurationMinutes, existing) {
			uc.logger.Warn("CreateBooking: slot not available, policy=%s, station=%d, date=%s",
				uc.overlapPolicy.Name(), req.StationID, req.ScheduledDate.Format(domain.TimeFormat))
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateBooking: slot available, policy=%s, %d bookings in window",
			uc.overlapPolicy.Name(), len(existing))

		// 7.3. Создаем бронирование с денормализацией длительности и цены
		booking := &domain.Booking{
			UserID:              req.UserID,
			ServiceID:           req.ServiceID,
			StationID:           req.StationID,
			ScheduledDate:       req.ScheduledDate,
			DurationMinutes:     service.EstimatedDurationMinutes,
			TotalPrice:          price.Price,
			Status:              domain.StatusPending,
			VehicleDetails:      req.VehicleDetails,
			SpecialInstructions: req.SpecialInstructions,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if bookingRepo.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 7.4. Первая запись истории статусов, в той же транзакции
		entry := &domain.BookingStatusHistory{
			BookingID: created.ID,
			Status:    domain.StatusPending,
			Notes:     ptr.Ptr(historyNoteCreated),
			ChangedBy: req.UserID,
		}
		if _, err := uc.bookingRepo.AppendStatusHistory(txCtx, entry); err != nil {
			if bookingRepo.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to append status history: %v", err)
			return fmt.Errorf("%w: failed to append status history: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентная транзакция успела занять слот первой
		if bookingRepo.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization conflict, station=%d, date=%s",
				req.StationID, req.ScheduledDate.Format(domain.TimeFormat))
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:                  result.ID,
		UserID:              result.UserID,
		ServiceID:           result.ServiceID,
		StationID:           result.StationID,
		ScheduledDate:       result.ScheduledDate,
		DurationMinutes:     result.DurationMinutes,
		TotalPrice:          result.TotalPrice,
		Status:              string(result.Status),
		VehicleDetails:      result.VehicleDetails,
		SpecialInstructions: result.SpecialInstructions,
		ServiceName:         service.Name,
		StationName:         station.Name,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}

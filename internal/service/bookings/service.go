package bookings

import (
	"context"
	"errors"
	"fmt"

	"carservice/internal/domain"
	bookingRepo "carservice/internal/infra/storage/booking"
	"carservice/internal/service/bookings/models"
	"carservice/pkg/ptr"
)

// historyNoteCancelled заметка по умолчанию при отмене без указания причины
const historyNoteCancelled = "Booking cancelled"

// Service сервис для работы с бронированиями пользователя
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с историей статусов
// Пользователь может видеть только свои бронирования
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingDetailResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getOwnedBooking(ctx, id, userID, "GetByID")
	if err != nil {
		return nil, err
	}

	history, err := s.bookingRepo.GetStatusHistory(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get status history for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d with %d history entries", id, len(history))
	return models.FromDomainBookingDetail(booking, history), nil
}

// GetUserBookings получает страницу бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v, page=%d, limit=%d",
		req.UserID, req.Status, req.Page, req.Limit)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%v for user=%d", req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, total, err := s.bookingRepo.GetByUserWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d of %d bookings for user=%d",
		len(bookings), total, req.UserID)
	return models.FromDomainBookingList(bookings, filter, total), nil
}

// UpdateStatus переводит бронирование в новый статус
// Переход проверяется машиной статусов; смена статуса и запись истории
// выполняются в одной транзакции
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	if req.Notes != nil && len(*req.Notes) > domain.MaxStatusNotesLength {
		s.logger.Warn("UpdateStatus: notes too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxStatusNotesLength)
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return ErrInvalidStatus
	}

	booking, err := s.getOwnedBooking(ctx, bookingID, req.UserID, "UpdateStatus")
	if err != nil {
		return err
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.applyTransition(ctx, bookingID, booking.Status, newStatus, req.Notes, req.UserID); err != nil {
		s.logger.Error("UpdateStatus: failed to apply transition for booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Cancel отменяет бронирование владельца
// Отмена разрешена из любого нетерминального статуса
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getOwnedBooking(ctx, bookingID, req.UserID, "Cancel")
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	notes := req.CancellationReason
	if notes == nil || *notes == "" {
		notes = ptr.Ptr(historyNoteCancelled)
	}
	if len(*notes) > domain.MaxStatusNotesLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxStatusNotesLength)
	}

	if err := s.applyTransition(ctx, bookingID, booking.Status, domain.StatusCancelled, notes, req.UserID); err != nil {
		// Конкурентный переход мог сделать отмену недопустимой
		if errors.Is(err, ErrInvalidTransition) {
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// getOwnedBooking получает бронирование и проверяет, что оно принадлежит пользователю
func (s *Service) getOwnedBooking(ctx context.Context, id int64, userID int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// applyTransition записывает новый статус и запись истории в одной транзакции
// UPDATE защищен условием status = from: если конкурентная операция успела
// изменить статус после проверки допустимости перехода, транзакция
// откатывается и запись в историю не появляется
func (s *Service) applyTransition(ctx context.Context, bookingID int64, from, to domain.BookingStatus, notes *string, changedBy int64) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, from, to); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		entry := &domain.BookingStatusHistory{
			BookingID: bookingID,
			Status:    to,
			Notes:     notes,
			ChangedBy: changedBy,
		}
		if _, err := s.bookingRepo.AppendStatusHistory(txCtx, entry); err != nil {
			return fmt.Errorf("%w: failed to append status history: %v", ErrInternal, err)
		}

		return nil
	})
}

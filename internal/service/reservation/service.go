package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/adapter/queue"
	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/infrastructure/keylock"
	"github.com/evsync/evsync/internal/observability/telemetry"
	"github.com/evsync/evsync/internal/ports"
)

// Service implements ReservationService
type Service struct {
	repo        ports.ReservationRepository
	stationRepo ports.StationRepository
	outletRepo  ports.OutletRepository
	accountRepo ports.AccountRepository
	walletSvc   ports.WalletService
	mq          queue.MessageQueue
	config      *domain.ReservationConfig
	outletLocks *keylock.KeyedMutex
	log         *zap.Logger
}

// NewService creates a new reservation service
func NewService(
	repo ports.ReservationRepository,
	stationRepo ports.StationRepository,
	outletRepo ports.OutletRepository,
	accountRepo ports.AccountRepository,
	walletSvc ports.WalletService,
	mq queue.MessageQueue,
	config *domain.ReservationConfig,
	log *zap.Logger,
) *Service {
	if config == nil {
		config = domain.DefaultReservationConfig()
	}

	return &Service{
		repo:        repo,
		stationRepo: stationRepo,
		outletRepo:  outletRepo,
		accountRepo: accountRepo,
		walletSvc:   walletSvc,
		mq:          mq,
		config:      config,
		outletLocks: keylock.New(),
		log:         log,
	}
}

// CreateReservation books the first outlet of the station that has no
// conflicting reservation for the requested window. Outlets are scanned
// in insertion order; the overlap check and the insert run under a
// per-outlet lock so two concurrent requests cannot both pass the check.
func (s *Service) CreateReservation(ctx context.Context, req *ports.ReservationRequest) (*domain.Reservation, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	consumer, err := s.accountRepo.FindByID(ctx, req.ConsumerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find consumer: %w", err)
	}
	if consumer == nil {
		return nil, domain.NewNotFound("consumer", req.ConsumerID)
	}
	if !consumer.IsConsumer() {
		return nil, domain.NewValidation("consumer_id", "account is not a consumer")
	}

	station, err := s.stationRepo.FindByID(ctx, req.StationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find station: %w", err)
	}
	if station == nil {
		return nil, domain.NewNotFound("station", req.StationID)
	}

	outlets, err := s.outletRepo.FindByStationID(ctx, req.StationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}

	end := req.StartTime.Add(time.Duration(req.DurationHours * float64(time.Hour)))

	for i := range outlets {
		outlet := &outlets[i]

		reservation, err := s.tryReserveOutlet(ctx, req, outlet.ID, end)
		if err != nil {
			return nil, err
		}
		if reservation == nil {
			continue // outlet busy, try the next one
		}

		telemetry.ReservationsTotal.WithLabelValues("created").Inc()
		s.publishEvent(queue.TopicReservationCreated, reservation)

		s.log.Info("Reservation created",
			zap.String("reservation_id", reservation.ID),
			zap.String("consumer_id", req.ConsumerID),
			zap.String("station_id", req.StationID),
			zap.String("outlet_id", outlet.ID),
			zap.Time("start_time", req.StartTime),
		)

		return reservation, nil
	}

	telemetry.ReservationsTotal.WithLabelValues("rejected").Inc()
	return nil, &domain.NoAvailableOutletError{
		StationID: req.StationID,
		StartTime: req.StartTime,
		Hours:     req.DurationHours,
	}
}

// tryReserveOutlet checks the outlet for conflicts and inserts the
// reservation if it is free. Returns (nil, nil) when the outlet is busy.
func (s *Service) tryReserveOutlet(ctx context.Context, req *ports.ReservationRequest, outletID string, end time.Time) (*domain.Reservation, error) {
	unlock := s.outletLocks.Lock(outletID)
	defer unlock()

	blocking, err := s.repo.FindBlockingByOutlet(ctx, outletID, req.StartTime, end)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing reservations: %w", err)
	}

	for i := range blocking {
		if blocking[i].Overlaps(req.StartTime, end) {
			return nil, nil
		}
	}

	reservation := &domain.Reservation{
		ID:            uuid.New().String(),
		ConsumerID:    req.ConsumerID,
		StationID:     req.StationID,
		OutletID:      outletID,
		Status:        domain.ReservationStatusPending,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		Fee:           0,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.repo.Save(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	return reservation, nil
}

// validateRequest validates a reservation request
func (s *Service) validateRequest(req *ports.ReservationRequest) error {
	if req.ConsumerID == "" {
		return domain.NewValidation("consumer_id", "is required")
	}
	if req.StationID == "" {
		return domain.NewValidation("station_id", "is required")
	}
	if req.DurationHours <= 0 {
		return domain.NewValidation("duration_hours", "must be positive")
	}
	if req.StartTime.IsZero() {
		return domain.NewValidation("start_time", "is required")
	}

	maxAdvance := time.Now().AddDate(0, 0, s.config.MaxAdvanceBookingDays)
	if req.StartTime.After(maxAdvance) {
		return domain.NewValidation("start_time",
			fmt.Sprintf("cannot book more than %d days in advance", s.config.MaxAdvanceBookingDays))
	}

	return nil
}

// ConfirmReservation charges the confirmation fee and moves a PENDING
// reservation to CONFIRMED. Confirming any other state is rejected, so a
// reservation can never be charged twice.
func (s *Service) ConfirmReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, domain.NewNotFound("reservation", id)
	}

	if reservation.Status != domain.ReservationStatusPending {
		return nil, domain.NewInvalidState("reservation", id,
			fmt.Sprintf("only PENDING reservations can be confirmed, current status is %s", reservation.Status))
	}
	if reservation.OutletID == "" {
		return nil, domain.NewInvalidState("reservation", id, "no outlet bound")
	}

	outlet, err := s.outletRepo.FindByID(ctx, reservation.OutletID)
	if err != nil {
		return nil, fmt.Errorf("failed to find outlet: %w", err)
	}
	if outlet == nil {
		return nil, domain.NewNotFound("outlet", reservation.OutletID)
	}

	fee := s.config.FeePercent * reservation.DurationHours * outlet.CostPerHour

	if fee > 0 {
		err := s.walletSvc.Debit(ctx, reservation.ConsumerID, fee, "Reservation confirmation fee", reservation.ID)
		if err != nil {
			return nil, err
		}
	}

	reservation.Status = domain.ReservationStatusConfirmed
	reservation.Fee = fee
	reservation.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, reservation); err != nil {
		// Give the fee back so the consumer is not charged for a
		// reservation that never reached CONFIRMED.
		if fee > 0 {
			if crErr := s.walletSvc.Credit(ctx, reservation.ConsumerID, fee, reservation.ID); crErr != nil {
				s.log.Error("Failed to refund confirmation fee",
					zap.String("reservation_id", id),
					zap.Error(crErr),
				)
			}
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	telemetry.ReservationsTotal.WithLabelValues("confirmed").Inc()
	s.publishEvent(queue.TopicReservationConfirmed, reservation)

	s.log.Info("Reservation confirmed",
		zap.String("reservation_id", id),
		zap.Float64("fee", fee),
	)

	return reservation, nil
}

// CancelReservation moves a PENDING or CONFIRMED reservation to
// CANCELLED. Cancelling an already cancelled reservation is a no-op.
// The confirmation fee is not refunded.
func (s *Service) CancelReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, domain.NewNotFound("reservation", id)
	}

	if reservation.Status == domain.ReservationStatusCancelled {
		return reservation, nil
	}

	if !reservation.CanBeCancelled() {
		return nil, domain.NewInvalidState("reservation", id,
			fmt.Sprintf("cannot cancel a %s reservation", reservation.Status))
	}

	reservation.Status = domain.ReservationStatusCancelled
	reservation.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	telemetry.ReservationsTotal.WithLabelValues("cancelled").Inc()
	s.publishEvent(queue.TopicReservationCancelled, reservation)

	s.log.Info("Reservation cancelled", zap.String("reservation_id", id))

	return reservation, nil
}

// GetReservation retrieves a reservation by ID
func (s *Service) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, domain.NewNotFound("reservation", id)
	}
	return reservation, nil
}

// GetConsumerReservations retrieves all reservations for a consumer
func (s *Service) GetConsumerReservations(ctx context.Context, consumerID string, status string, limit, offset int) ([]domain.Reservation, error) {
	return s.repo.FindByConsumerID(ctx, consumerID, status, limit, offset)
}

// GetStationReservations retrieves all reservations for a station on a day
func (s *Service) GetStationReservations(ctx context.Context, stationID string, date time.Time) ([]domain.Reservation, error) {
	return s.repo.FindByStationID(ctx, stationID, date)
}

func (s *Service) publishEvent(topic string, reservation *domain.Reservation) {
	if s.mq == nil {
		return
	}
	data, err := json.Marshal(reservation)
	if err != nil {
		return
	}
	if err := s.mq.Publish(topic, data); err != nil {
		s.log.Error("Failed to publish reservation event",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}

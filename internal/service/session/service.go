package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/adapter/queue"
	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/observability/telemetry"
	"github.com/evsync/evsync/internal/ports"
)

// Service implements SessionService
type Service struct {
	repo            ports.SessionRepository
	reservationRepo ports.ReservationRepository
	outletRepo      ports.OutletRepository
	walletSvc       ports.WalletService
	mq              queue.MessageQueue
	pricing         *domain.PricingConfig
	log             *zap.Logger
}

// NewService creates a new session service
func NewService(
	repo ports.SessionRepository,
	reservationRepo ports.ReservationRepository,
	outletRepo ports.OutletRepository,
	walletSvc ports.WalletService,
	mq queue.MessageQueue,
	pricing *domain.PricingConfig,
	log *zap.Logger,
) *Service {
	if pricing == nil {
		pricing = domain.DefaultPricingConfig()
	}

	return &Service{
		repo:            repo,
		reservationRepo: reservationRepo,
		outletRepo:      outletRepo,
		walletSvc:       walletSvc,
		mq:              mq,
		pricing:         pricing,
		log:             log,
	}
}

// StartSession begins charging against a confirmed reservation. The
// outlet is marked OCCUPIED and the reservation moves to ACTIVE.
func (s *Service) StartSession(ctx context.Context, reservationID string) (*domain.ChargingSession, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, domain.NewNotFound("reservation", reservationID)
	}

	if reservation.Status != domain.ReservationStatusConfirmed {
		return nil, domain.NewInvalidState("reservation", reservationID,
			"reservation must be CONFIRMED to start session")
	}

	existing, err := s.repo.FindByReservationID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing session: %w", err)
	}
	if existing != nil {
		return nil, domain.NewInvalidState("reservation", reservationID,
			"a session already exists for this reservation")
	}

	now := time.Now()
	session := &domain.ChargingSession{
		ID:            uuid.New().String(),
		ReservationID: reservation.ID,
		OutletID:      reservation.OutletID,
		Status:        domain.SessionStatusActive,
		StartTime:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := s.outletRepo.UpdateStatus(ctx, reservation.OutletID, domain.OutletStatusOccupied); err != nil {
		return nil, fmt.Errorf("failed to occupy outlet: %w", err)
	}

	reservation.Status = domain.ReservationStatusActive
	reservation.UpdatedAt = now
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	telemetry.ActiveChargingSessions.Inc()
	s.publishEvent(queue.TopicSessionStarted, session)

	s.log.Info("Charging session started",
		zap.String("session_id", session.ID),
		zap.String("reservation_id", reservation.ID),
		zap.String("outlet_id", reservation.OutletID),
	)

	return session, nil
}

// EndSession settles and completes an active session. The remaining cost
// (total minus the confirmation fee already paid) is debited from the
// consumer's wallet; if the debit fails nothing changes and the session
// stays ACTIVE.
func (s *Service) EndSession(ctx context.Context, sessionID string, energyKWh float64) (*domain.ChargingSession, error) {
	if energyKWh < 0 {
		return nil, domain.NewValidation("energy_kwh", "must not be negative")
	}

	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.NewNotFound("session", sessionID)
	}

	if session.Status != domain.SessionStatusActive {
		return nil, domain.NewInvalidState("session", sessionID,
			fmt.Sprintf("only ACTIVE sessions can be ended, current status is %s", session.Status))
	}

	reservation, err := s.reservationRepo.FindByID(ctx, session.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, domain.NewNotFound("reservation", session.ReservationID)
	}

	outlet, err := s.outletRepo.FindByID(ctx, session.OutletID)
	if err != nil {
		return nil, fmt.Errorf("failed to get outlet: %w", err)
	}
	if outlet == nil {
		return nil, domain.NewNotFound("outlet", session.OutletID)
	}

	now := time.Now()
	elapsed := session.ElapsedHours(now)
	cost := s.pricing.Cost(elapsed, outlet.CostPerHour, energyKWh)
	remaining := cost - reservation.Fee

	if remaining > 0 {
		err := s.walletSvc.Debit(ctx, reservation.ConsumerID, remaining, "Charging session settlement", session.ID)
		if err != nil {
			telemetry.WalletDebitsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
		telemetry.WalletDebitsTotal.WithLabelValues("accepted").Inc()
	}

	session.Status = domain.SessionStatusCompleted
	session.EndTime = &now
	session.EnergyKWh = energyKWh
	session.TotalCost = cost
	session.UpdatedAt = now

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := s.outletRepo.UpdateStatus(ctx, session.OutletID, domain.OutletStatusAvailable); err != nil {
		s.log.Error("Failed to release outlet",
			zap.String("outlet_id", session.OutletID),
			zap.Error(err),
		)
	}

	reservation.Status = domain.ReservationStatusCompleted
	reservation.UpdatedAt = now
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	telemetry.ActiveChargingSessions.Dec()
	telemetry.EnergyDeliveredTotal.Add(energyKWh)
	s.publishEvent(queue.TopicSessionCompleted, session)

	s.log.Info("Charging session completed",
		zap.String("session_id", session.ID),
		zap.Float64("energy_kwh", energyKWh),
		zap.Float64("total_cost", cost),
		zap.Float64("settled", remaining),
	)

	return session, nil
}

// InterruptSession terminates an active session abnormally (outlet fault,
// emergency stop). No settlement happens: the confirmation fee is kept
// and nothing more is charged. The outlet is released.
func (s *Service) InterruptSession(ctx context.Context, sessionID string, reason string) (*domain.ChargingSession, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.NewNotFound("session", sessionID)
	}

	if session.Status != domain.SessionStatusActive {
		return nil, domain.NewInvalidState("session", sessionID,
			fmt.Sprintf("only ACTIVE sessions can be interrupted, current status is %s", session.Status))
	}

	now := time.Now()
	session.Status = domain.SessionStatusInterrupted
	session.EndTime = &now
	session.UpdatedAt = now

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := s.outletRepo.UpdateStatus(ctx, session.OutletID, domain.OutletStatusAvailable); err != nil {
		s.log.Error("Failed to release outlet",
			zap.String("outlet_id", session.OutletID),
			zap.Error(err),
		)
	}

	reservation, err := s.reservationRepo.FindByID(ctx, session.ReservationID)
	if err == nil && reservation != nil {
		reservation.Status = domain.ReservationStatusCompleted
		reservation.UpdatedAt = now
		if err := s.reservationRepo.Save(ctx, reservation); err != nil {
			s.log.Error("Failed to close reservation after interrupt",
				zap.String("reservation_id", reservation.ID),
				zap.Error(err),
			)
		}
	}

	telemetry.ActiveChargingSessions.Dec()
	s.publishEvent(queue.TopicSessionInterrupted, session)

	s.log.Warn("Charging session interrupted",
		zap.String("session_id", session.ID),
		zap.String("reason", reason),
	)

	return session, nil
}

// GetSession retrieves a session by ID
func (s *Service) GetSession(ctx context.Context, id string) (*domain.ChargingSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.NewNotFound("session", id)
	}
	return session, nil
}

// DeleteSession removes a session record. Administrative operation.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return domain.NewNotFound("session", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.log.Info("Charging session deleted", zap.String("session_id", id))
	return nil
}

func (s *Service) publishEvent(topic string, session *domain.ChargingSession) {
	if s.mq == nil {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := s.mq.Publish(topic, data); err != nil {
		s.log.Error("Failed to publish session event",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}

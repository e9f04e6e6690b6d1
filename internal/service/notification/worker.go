package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/adapter/queue"
	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/ports"
)

// Worker consumes reservation and session lifecycle events and sends
// the matching emails. It runs inside the server process; a lost
// message only means a missed notification, never a broken booking.
type Worker struct {
	mq              queue.MessageQueue
	accountRepo     ports.AccountRepository
	reservationRepo ports.ReservationRepository
	emailSvc        ports.EmailService
	log             *zap.Logger
}

func NewWorker(
	mq queue.MessageQueue,
	accountRepo ports.AccountRepository,
	reservationRepo ports.ReservationRepository,
	emailSvc ports.EmailService,
	log *zap.Logger,
) *Worker {
	return &Worker{
		mq:              mq,
		accountRepo:     accountRepo,
		reservationRepo: reservationRepo,
		emailSvc:        emailSvc,
		log:             log,
	}
}

// Start registers the queue subscriptions.
func (w *Worker) Start() error {
	if err := w.mq.Subscribe(queue.TopicReservationConfirmed, w.handleReservationConfirmed); err != nil {
		return fmt.Errorf("failed to subscribe to reservation.confirmed: %w", err)
	}
	if err := w.mq.Subscribe(queue.TopicSessionCompleted, w.handleSessionCompleted); err != nil {
		return fmt.Errorf("failed to subscribe to session.completed: %w", err)
	}

	w.log.Info("Notification worker started")
	return nil
}

func (w *Worker) handleReservationConfirmed(data []byte) error {
	var reservation domain.Reservation
	if err := json.Unmarshal(data, &reservation); err != nil {
		return fmt.Errorf("failed to unmarshal reservation event: %w", err)
	}

	ctx := context.Background()
	account, err := w.accountRepo.FindByID(ctx, reservation.ConsumerID)
	if err != nil || account == nil {
		w.log.Warn("Could not resolve consumer for notification",
			zap.String("consumer_id", reservation.ConsumerID),
			zap.Error(err),
		)
		return nil
	}

	if err := w.emailSvc.SendReservationConfirmed(ctx, account.Email, &reservation); err != nil {
		w.log.Error("Failed to send reservation confirmation email",
			zap.String("reservation_id", reservation.ID),
			zap.Error(err),
		)
	}
	return nil
}

func (w *Worker) handleSessionCompleted(data []byte) error {
	var session domain.ChargingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to unmarshal session event: %w", err)
	}

	ctx := context.Background()
	reservation, err := w.reservationRepo.FindByID(ctx, session.ReservationID)
	if err != nil || reservation == nil {
		w.log.Warn("Could not resolve reservation for notification",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		return nil
	}

	account, err := w.accountRepo.FindByID(ctx, reservation.ConsumerID)
	if err != nil || account == nil {
		w.log.Warn("Could not resolve consumer for notification",
			zap.String("consumer_id", reservation.ConsumerID),
			zap.Error(err),
		)
		return nil
	}

	if err := w.emailSvc.SendSessionCompleted(ctx, account.Email, &session); err != nil {
		w.log.Error("Failed to send session summary email",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}
	return nil
}

package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/mocks"
	"github.com/evsync/evsync/internal/ports"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func testConsumer(id string) *domain.Account {
	return &domain.Account{
		ID:    id,
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.AccountRoleConsumer,
	}
}

func testStation(id string) *domain.ChargingStation {
	return &domain.ChargingStation{
		ID:   id,
		Name: "Central Garage",
	}
}

func testOutlets(stationID string, n int) []domain.ChargingOutlet {
	outlets := make([]domain.ChargingOutlet, n)
	for i := 0; i < n; i++ {
		outlets[i] = domain.ChargingOutlet{
			ID:          stationID + "-outlet-" + string(rune('a'+i)),
			StationID:   stationID,
			Position:    i,
			CostPerHour: 10.0,
			Status:      domain.OutletStatusAvailable,
		}
	}
	return outlets
}

func TestCreateReservation_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	start := time.Now().Add(2 * time.Hour)

	var saved *domain.Reservation
	mockRepo := &mocks.MockReservationRepository{
		SaveFunc: func(ctx context.Context, r *domain.Reservation) error {
			saved = r
			return nil
		},
	}
	mockStationRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return testStation(id), nil
		},
	}
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByStationIDFunc: func(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error) {
			return testOutlets(stationID, 2), nil
		},
	}
	mockAccountRepo := &mocks.MockAccountRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Account, error) {
			return testConsumer(id), nil
		},
	}
	mockQueue := mocks.NewMockMessageQueue()

	service := NewService(mockRepo, mockStationRepo, mockOutletRepo, mockAccountRepo,
		&mocks.MockWalletService{}, mockQueue, nil, newTestLogger())

	// Act
	reservation, err := service.CreateReservation(ctx, &ports.ReservationRequest{
		ConsumerID:    "consumer-1",
		StationID:     "station-1",
		StartTime:     start,
		DurationHours: 2,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reservation == nil {
		t.Fatal("expected reservation, got nil")
	}
	if reservation.Status != domain.ReservationStatusPending {
		t.Errorf("expected status PENDING, got %s", reservation.Status)
	}
	if reservation.Fee != 0 {
		t.Errorf("expected no fee before confirmation, got %f", reservation.Fee)
	}
	if reservation.OutletID != "station-1-outlet-a" {
		t.Errorf("expected first outlet, got %s", reservation.OutletID)
	}
	if saved == nil {
		t.Error("expected reservation to be persisted")
	}
	if len(mockQueue.GetPublishedMessages("reservation.created")) != 1 {
		t.Error("expected reservation.created event")
	}
}

func TestCreateReservation_ConsumerNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockAccountRepo := &mocks.MockAccountRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, nil
		},
	}

	service := NewService(&mocks.MockReservationRepository{}, &mocks.MockStationRepository{},
		&mocks.MockOutletRepository{}, mockAccountRepo,
		&mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.CreateReservation(ctx, &ports.ReservationRequest{
		ConsumerID:    "ghost",
		StationID:     "station-1",
		StartTime:     time.Now().Add(time.Hour),
		DurationHours: 1,
	})

	// Assert
	if !domain.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestCreateReservation_StationNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockAccountRepo := &mocks.MockAccountRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Account, error) {
			return testConsumer(id), nil
		},
	}
	mockStationRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return nil, nil
		},
	}

	service := NewService(&mocks.MockReservationRepository{}, mockStationRepo,
		&mocks.MockOutletRepository{}, mockAccountRepo,
		&mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.CreateReservation(ctx, &ports.ReservationRequest{
		ConsumerID:    "consumer-1",
		StationID:     "nowhere",
		StartTime:     time.Now().Add(time.Hour),
		DurationHours: 1,
	})

	// Assert
	if !domain.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestCreateReservation_InvalidDuration(t *testing.T) {
	// Arrange
	ctx := context.Background()

	service := NewService(&mocks.MockReservationRepository{}, &mocks.MockStationRepository{},
		&mocks.MockOutletRepository{}, &mocks.MockAccountRepository{},
		&mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.CreateReservation(ctx, &ports.ReservationRequest{
		ConsumerID:    "consumer-1",
		StationID:     "station-1",
		StartTime:     time.Now().Add(time.Hour),
		DurationHours: 0,
	})

	// Assert
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateReservation_TooFarInAdvance(t *testing.T) {
	// Arrange
	ctx := context.Background()

	service := NewService(&mocks.MockReservationRepository{}, &mocks.MockStationRepository{},
		&mocks.MockOutletRepository{}, &mocks.MockAccountRepository{},
		&mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.CreateReservation(ctx, &ports.ReservationRequest{
		ConsumerID:    "consumer-1",
		StationID:     "station-1",
		StartTime:     time.Now().AddDate(0, 0, 45),
		DurationHours: 1,
	})

	// Assert
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateReservation_NoAvailableOutlet(t *testing.T) {
	// Arrange: a single outlet fully booked over the requested window.
	ctx := context.Background()
	start := time.Now().Add(2 * time.Hour)

	mockRepo := &mocks.MockReservationRepository{
		FindBlockingByOutletFunc: func(ctx context.Context, outletID string, s, e time.Time) ([]domain.Reservation, error) {
			return []domain.Reservation{{
				ID:            "existing",
				OutletID:      outletID,
				Status:        domain.ReservationStatusConfirmed,
				StartTime:     start.Add(-time.Hour),
				DurationHours: 4,
			}}, nil
		},
	}
	mockStationRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return testStation(id), nil
		},
	}
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByStationIDFunc: func(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error) {
			return testOutlets(stationID, 1), nil
		},
	}
	mockAccountRepo := &mocks.MockAccountRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Account, error) {
			return testConsumer(id), nil
		},
	}

	service := NewService(mockRepo, mockStationRepo, mockOutletRepo, mockAccountRepo,
		&mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.CreateReservation(ctx, &ports.ReservationRequest{
		ConsumerID:    "consumer-1",
		StationID:     "station-1",
		StartTime:     start,
		DurationHours: 2,
	})

	// Assert
	if !domain.IsNoAvailableOutlet(err) {
		t.Errorf("expected no-available-outlet error, got %v", err)
	}
}

func TestCreateReservation_FirstFitSkipsBusyOutlet(t *testing.T) {
	// Arrange: outlet-a is booked, outlet-b is free.
	ctx := context.Background()
	start := time.Now().Add(2 * time.Hour)

	mockRepo := &mocks.MockReservationRepository{
		FindBlockingByOutletFunc: func(ctx context.Context, outletID string, s, e time.Time) ([]domain.Reservation, error) {
			if outletID == "station-1-outlet-a" {
				return []domain.Reservation{{
					ID:            "existing",
					OutletID:      outletID,
					Status:        domain.ReservationStatusPending,
					StartTime:     start,
					DurationHours: 2,
				}}, nil
			}
			return nil, nil
		},
	}
	mockStationRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return testStation(id), nil
		},
	}
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByStationIDFunc: func(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error) {
			return testOutlets(stationID, 2), nil
		},
	}
	mockAccountRepo := &mocks.MockAccountRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Account, error) {
			return testConsumer(id), nil
		},
	}

	service := NewService(mockRepo, mockStationRepo, mockOutletRepo, mockAccountRepo,
		&mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	reservation, err := service.CreateReservation(ctx, &ports.ReservationRequest{
		ConsumerID:    "consumer-1",
		StationID:     "station-1",
		StartTime:     start,
		DurationHours: 2,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reservation.OutletID != "station-1-outlet-b" {
		t.Errorf("expected second outlet, got %s", reservation.OutletID)
	}
}

func TestCreateReservation_BackToBackAllowed(t *testing.T) {
	// Arrange: an existing booking ends exactly when the new one starts.
	ctx := context.Background()
	start := time.Now().Add(4 * time.Hour)

	mockRepo := &mocks.MockReservationRepository{
		FindBlockingByOutletFunc: func(ctx context.Context, outletID string, s, e time.Time) ([]domain.Reservation, error) {
			return []domain.Reservation{{
				ID:            "existing",
				OutletID:      outletID,
				Status:        domain.ReservationStatusConfirmed,
				StartTime:     start.Add(-2 * time.Hour),
				DurationHours: 2,
			}}, nil
		},
	}
	mockStationRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return testStation(id), nil
		},
	}
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByStationIDFunc: func(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error) {
			return testOutlets(stationID, 1), nil
		},
	}
	mockAccountRepo := &mocks.MockAccountRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Account, error) {
			return testConsumer(id), nil
		},
	}

	service := NewService(mockRepo, mockStationRepo, mockOutletRepo, mockAccountRepo,
		&mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	reservation, err := service.CreateReservation(ctx, &ports.ReservationRequest{
		ConsumerID:    "consumer-1",
		StationID:     "station-1",
		StartTime:     start,
		DurationHours: 1,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected back-to-back booking to succeed, got %v", err)
	}
	if reservation == nil {
		t.Fatal("expected reservation, got nil")
	}
}

func TestConfirmReservation_Success(t *testing.T) {
	// Arrange: 2h at 10/h with a 20% fee should debit 4.00.
	ctx := context.Background()

	pending := &domain.Reservation{
		ID:            "res-1",
		ConsumerID:    "consumer-1",
		StationID:     "station-1",
		OutletID:      "outlet-1",
		Status:        domain.ReservationStatusPending,
		StartTime:     time.Now().Add(time.Hour),
		DurationHours: 2,
	}

	var saved *domain.Reservation
	mockRepo := &mocks.MockReservationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return pending, nil
		},
		SaveFunc: func(ctx context.Context, r *domain.Reservation) error {
			saved = r
			return nil
		},
	}
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingOutlet, error) {
			return &domain.ChargingOutlet{ID: id, CostPerHour: 10.0}, nil
		},
	}

	var debited float64
	mockWallet := &mocks.MockWalletService{
		DebitFunc: func(ctx context.Context, accountID string, amount float64, description, referenceID string) error {
			debited = amount
			return nil
		},
	}
	mockQueue := mocks.NewMockMessageQueue()

	service := NewService(mockRepo, &mocks.MockStationRepository{}, mockOutletRepo,
		&mocks.MockAccountRepository{}, mockWallet, mockQueue, nil, newTestLogger())

	// Act
	reservation, err := service.ConfirmReservation(ctx, "res-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reservation.Status != domain.ReservationStatusConfirmed {
		t.Errorf("expected status CONFIRMED, got %s", reservation.Status)
	}
	if debited != 4.0 {
		t.Errorf("expected fee debit of 4.0, got %f", debited)
	}
	if reservation.Fee != 4.0 {
		t.Errorf("expected fee 4.0 recorded, got %f", reservation.Fee)
	}
	if saved == nil {
		t.Error("expected reservation to be persisted")
	}
	if len(mockQueue.GetPublishedMessages("reservation.confirmed")) != 1 {
		t.Error("expected reservation.confirmed event")
	}
}

func TestConfirmReservation_AlreadyConfirmed(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockReservationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return &domain.Reservation{
				ID:     id,
				Status: domain.ReservationStatusConfirmed,
			}, nil
		},
	}

	debitCalled := false
	mockWallet := &mocks.MockWalletService{
		DebitFunc: func(ctx context.Context, accountID string, amount float64, description, referenceID string) error {
			debitCalled = true
			return nil
		},
	}

	service := NewService(mockRepo, &mocks.MockStationRepository{}, &mocks.MockOutletRepository{},
		&mocks.MockAccountRepository{}, mockWallet, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.ConfirmReservation(ctx, "res-1")

	// Assert
	if !domain.IsInvalidState(err) {
		t.Errorf("expected invalid-state error, got %v", err)
	}
	if debitCalled {
		t.Error("confirming a CONFIRMED reservation must not charge again")
	}
}

func TestConfirmReservation_InsufficientFunds(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockReservationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return &domain.Reservation{
				ID:            id,
				ConsumerID:    "consumer-1",
				OutletID:      "outlet-1",
				Status:        domain.ReservationStatusPending,
				StartTime:     time.Now().Add(time.Hour),
				DurationHours: 2,
			}, nil
		},
		SaveFunc: func(ctx context.Context, r *domain.Reservation) error {
			t.Error("reservation must not change when the debit fails")
			return nil
		},
	}
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingOutlet, error) {
			return &domain.ChargingOutlet{ID: id, CostPerHour: 10.0}, nil
		},
	}
	mockWallet := &mocks.MockWalletService{
		DebitFunc: func(ctx context.Context, accountID string, amount float64, description, referenceID string) error {
			return &domain.InsufficientFundsError{AccountID: accountID, Required: amount, Available: 1.0}
		},
	}

	service := NewService(mockRepo, &mocks.MockStationRepository{}, mockOutletRepo,
		&mocks.MockAccountRepository{}, mockWallet, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.ConfirmReservation(ctx, "res-1")

	// Assert
	if !domain.IsInsufficientFunds(err) {
		t.Errorf("expected insufficient-funds error, got %v", err)
	}
}

func TestConfirmReservation_SaveFailureRefundsFee(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockReservationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return &domain.Reservation{
				ID:            id,
				ConsumerID:    "consumer-1",
				OutletID:      "outlet-1",
				Status:        domain.ReservationStatusPending,
				StartTime:     time.Now().Add(time.Hour),
				DurationHours: 2,
			}, nil
		},
		SaveFunc: func(ctx context.Context, r *domain.Reservation) error {
			return errors.New("database error")
		},
	}
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingOutlet, error) {
			return &domain.ChargingOutlet{ID: id, CostPerHour: 10.0}, nil
		},
	}

	var refunded float64
	mockWallet := &mocks.MockWalletService{
		CreditFunc: func(ctx context.Context, accountID string, amount float64, referenceID string) error {
			refunded = amount
			return nil
		},
	}

	service := NewService(mockRepo, &mocks.MockStationRepository{}, mockOutletRepo,
		&mocks.MockAccountRepository{}, mockWallet, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.ConfirmReservation(ctx, "res-1")

	// Assert
	if err == nil {
		t.Fatal("expected error from failed save")
	}
	if refunded != 4.0 {
		t.Errorf("expected fee refund of 4.0, got %f", refunded)
	}
}

func TestCancelReservation_Idempotent(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockReservationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return &domain.Reservation{
				ID:     id,
				Status: domain.ReservationStatusCancelled,
			}, nil
		},
		SaveFunc: func(ctx context.Context, r *domain.Reservation) error {
			t.Error("cancelling a CANCELLED reservation must not write")
			return nil
		},
	}

	service := NewService(mockRepo, &mocks.MockStationRepository{}, &mocks.MockOutletRepository{},
		&mocks.MockAccountRepository{}, &mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	reservation, err := service.CancelReservation(ctx, "res-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reservation.Status != domain.ReservationStatusCancelled {
		t.Errorf("expected status CANCELLED, got %s", reservation.Status)
	}
}

func TestCancelReservation_NoRefund(t *testing.T) {
	// Arrange: cancelling a confirmed reservation keeps the fee.
	ctx := context.Background()

	mockRepo := &mocks.MockReservationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return &domain.Reservation{
				ID:         id,
				ConsumerID: "consumer-1",
				Status:     domain.ReservationStatusConfirmed,
				Fee:        4.0,
			}, nil
		},
	}

	creditCalled := false
	mockWallet := &mocks.MockWalletService{
		CreditFunc: func(ctx context.Context, accountID string, amount float64, referenceID string) error {
			creditCalled = true
			return nil
		},
	}

	service := NewService(mockRepo, &mocks.MockStationRepository{}, &mocks.MockOutletRepository{},
		&mocks.MockAccountRepository{}, mockWallet, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	reservation, err := service.CancelReservation(ctx, "res-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reservation.Status != domain.ReservationStatusCancelled {
		t.Errorf("expected status CANCELLED, got %s", reservation.Status)
	}
	if creditCalled {
		t.Error("cancellation must not refund the confirmation fee")
	}
}

func TestCancelReservation_ActiveRejected(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockReservationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Reservation, error) {
			return &domain.Reservation{
				ID:     id,
				Status: domain.ReservationStatusActive,
			}, nil
		},
	}

	service := NewService(mockRepo, &mocks.MockStationRepository{}, &mocks.MockOutletRepository{},
		&mocks.MockAccountRepository{}, &mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.CancelReservation(ctx, "res-1")

	// Assert
	if !domain.IsInvalidState(err) {
		t.Errorf("expected invalid-state error, got %v", err)
	}
}

func TestGetReservation_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()

	service := NewService(&mocks.MockReservationRepository{}, &mocks.MockStationRepository{},
		&mocks.MockOutletRepository{}, &mocks.MockAccountRepository{},
		&mocks.MockWalletService{}, mocks.NewMockMessageQueue(), nil, newTestLogger())

	// Act
	_, err := service.GetReservation(ctx, "nonexistent")

	// Assert
	if !domain.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

package mocks

import (
	"context"
	"time"

	"github.com/evsync/evsync/internal/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	SaveFunc        func(ctx context.Context, account *domain.Account) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Account, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Account, error)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, account)
	}
	return nil
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

// MockStationRepository is a mock implementation of StationRepository
type MockStationRepository struct {
	SaveFunc       func(ctx context.Context, station *domain.ChargingStation) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.ChargingStation, error)
	FindAllFunc    func(ctx context.Context, status string) ([]domain.ChargingStation, error)
	FindNearbyFunc func(ctx context.Context, lat, lon, radiusKm float64) ([]domain.ChargingStation, error)
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *MockStationRepository) Save(ctx context.Context, station *domain.ChargingStation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, station)
	}
	return nil
}

func (m *MockStationRepository) FindByID(ctx context.Context, id string) (*domain.ChargingStation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStationRepository) FindAll(ctx context.Context, status string) ([]domain.ChargingStation, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, status)
	}
	return []domain.ChargingStation{}, nil
}

func (m *MockStationRepository) FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.ChargingStation, error) {
	if m.FindNearbyFunc != nil {
		return m.FindNearbyFunc(ctx, lat, lon, radiusKm)
	}
	return []domain.ChargingStation{}, nil
}

func (m *MockStationRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockOutletRepository is a mock implementation of OutletRepository
type MockOutletRepository struct {
	SaveFunc            func(ctx context.Context, outlet *domain.ChargingOutlet) error
	FindByIDFunc        func(ctx context.Context, id string) (*domain.ChargingOutlet, error)
	FindByStationIDFunc func(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error)
	UpdateStatusFunc    func(ctx context.Context, id string, status domain.OutletStatus) error
}

func (m *MockOutletRepository) Save(ctx context.Context, outlet *domain.ChargingOutlet) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, outlet)
	}
	return nil
}

func (m *MockOutletRepository) FindByID(ctx context.Context, id string) (*domain.ChargingOutlet, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOutletRepository) FindByStationID(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error) {
	if m.FindByStationIDFunc != nil {
		return m.FindByStationIDFunc(ctx, stationID)
	}
	return []domain.ChargingOutlet{}, nil
}

func (m *MockOutletRepository) UpdateStatus(ctx context.Context, id string, status domain.OutletStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

// MockReservationRepository is a mock implementation of ReservationRepository
type MockReservationRepository struct {
	SaveFunc                 func(ctx context.Context, reservation *domain.Reservation) error
	FindByIDFunc             func(ctx context.Context, id string) (*domain.Reservation, error)
	FindByConsumerIDFunc     func(ctx context.Context, consumerID string, status string, limit, offset int) ([]domain.Reservation, error)
	FindByStationIDFunc      func(ctx context.Context, stationID string, date time.Time) ([]domain.Reservation, error)
	FindBlockingByOutletFunc func(ctx context.Context, outletID string, start, end time.Time) ([]domain.Reservation, error)
}

func (m *MockReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, reservation)
	}
	return nil
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReservationRepository) FindByConsumerID(ctx context.Context, consumerID string, status string, limit, offset int) ([]domain.Reservation, error) {
	if m.FindByConsumerIDFunc != nil {
		return m.FindByConsumerIDFunc(ctx, consumerID, status, limit, offset)
	}
	return []domain.Reservation{}, nil
}

func (m *MockReservationRepository) FindByStationID(ctx context.Context, stationID string, date time.Time) ([]domain.Reservation, error) {
	if m.FindByStationIDFunc != nil {
		return m.FindByStationIDFunc(ctx, stationID, date)
	}
	return []domain.Reservation{}, nil
}

func (m *MockReservationRepository) FindBlockingByOutlet(ctx context.Context, outletID string, start, end time.Time) ([]domain.Reservation, error) {
	if m.FindBlockingByOutletFunc != nil {
		return m.FindBlockingByOutletFunc(ctx, outletID, start, end)
	}
	return []domain.Reservation{}, nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	SaveFunc                func(ctx context.Context, session *domain.ChargingSession) error
	FindByIDFunc            func(ctx context.Context, id string) (*domain.ChargingSession, error)
	FindByReservationIDFunc func(ctx context.Context, reservationID string) (*domain.ChargingSession, error)
	FindActiveFunc          func(ctx context.Context) ([]domain.ChargingSession, error)
	DeleteFunc              func(ctx context.Context, id string) error
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.ChargingSession) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*domain.ChargingSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindByReservationID(ctx context.Context, reservationID string) (*domain.ChargingSession, error) {
	if m.FindByReservationIDFunc != nil {
		return m.FindByReservationIDFunc(ctx, reservationID)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindActive(ctx context.Context) ([]domain.ChargingSession, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx)
	}
	return []domain.ChargingSession{}, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	SaveFunc             func(ctx context.Context, wallet *domain.Wallet) error
	FindByAccountIDFunc  func(ctx context.Context, accountID string) (*domain.Wallet, error)
	SaveTransactionFunc  func(ctx context.Context, tx *domain.WalletTransaction) error
	FindTransactionsFunc func(ctx context.Context, walletID string, limit, offset int) ([]domain.WalletTransaction, error)
}

func (m *MockWalletRepository) Save(ctx context.Context, wallet *domain.Wallet) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, wallet)
	}
	return nil
}

func (m *MockWalletRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error) {
	if m.FindByAccountIDFunc != nil {
		return m.FindByAccountIDFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *MockWalletRepository) SaveTransaction(ctx context.Context, tx *domain.WalletTransaction) error {
	if m.SaveTransactionFunc != nil {
		return m.SaveTransactionFunc(ctx, tx)
	}
	return nil
}

func (m *MockWalletRepository) FindTransactions(ctx context.Context, walletID string, limit, offset int) ([]domain.WalletTransaction, error) {
	if m.FindTransactionsFunc != nil {
		return m.FindTransactionsFunc(ctx, walletID, limit, offset)
	}
	return []domain.WalletTransaction{}, nil
}

// MockRatingRepository is a mock implementation of RatingRepository
type MockRatingRepository struct {
	SaveFunc            func(ctx context.Context, rating *domain.Rating) error
	FindByStationIDFunc func(ctx context.Context, stationID string) ([]domain.Rating, error)
}

func (m *MockRatingRepository) Save(ctx context.Context, rating *domain.Rating) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rating)
	}
	return nil
}

func (m *MockRatingRepository) FindByStationID(ctx context.Context, stationID string) ([]domain.Rating, error) {
	if m.FindByStationIDFunc != nil {
		return m.FindByStationIDFunc(ctx, stationID)
	}
	return []domain.Rating{}, nil
}

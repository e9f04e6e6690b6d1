package mocks

import (
	"context"

	"github.com/evsync/evsync/internal/domain"
)

// MockWalletService is a mock implementation of WalletService
type MockWalletService struct {
	GetWalletFunc       func(ctx context.Context, accountID string) (*domain.Wallet, error)
	CreditFunc          func(ctx context.Context, accountID string, amount float64, referenceID string) error
	DebitFunc           func(ctx context.Context, accountID string, amount float64, description, referenceID string) error
	GetTransactionsFunc func(ctx context.Context, accountID string, limit, offset int) ([]domain.WalletTransaction, error)
}

func (m *MockWalletService) GetWallet(ctx context.Context, accountID string) (*domain.Wallet, error) {
	if m.GetWalletFunc != nil {
		return m.GetWalletFunc(ctx, accountID)
	}
	return &domain.Wallet{AccountID: accountID}, nil
}

func (m *MockWalletService) Credit(ctx context.Context, accountID string, amount float64, referenceID string) error {
	if m.CreditFunc != nil {
		return m.CreditFunc(ctx, accountID, amount, referenceID)
	}
	return nil
}

func (m *MockWalletService) Debit(ctx context.Context, accountID string, amount float64, description, referenceID string) error {
	if m.DebitFunc != nil {
		return m.DebitFunc(ctx, accountID, amount, description, referenceID)
	}
	return nil
}

func (m *MockWalletService) GetTransactions(ctx context.Context, accountID string, limit, offset int) ([]domain.WalletTransaction, error) {
	if m.GetTransactionsFunc != nil {
		return m.GetTransactionsFunc(ctx, accountID, limit, offset)
	}
	return []domain.WalletTransaction{}, nil
}

// MockGeocoder is a mock implementation of Geocoder
type MockGeocoder struct {
	GeocodeFunc func(ctx context.Context, address string) (float64, float64, error)
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if m.GeocodeFunc != nil {
		return m.GeocodeFunc(ctx, address)
	}
	return 0, 0, nil
}

// MockEmailService is a mock implementation of EmailService
type MockEmailService struct {
	SendFunc                     func(ctx context.Context, to, subject, body string) error
	SendReservationConfirmedFunc func(ctx context.Context, to string, reservation *domain.Reservation) error
	SendSessionCompletedFunc     func(ctx context.Context, to string, session *domain.ChargingSession) error
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	return nil
}

func (m *MockEmailService) SendReservationConfirmed(ctx context.Context, to string, reservation *domain.Reservation) error {
	if m.SendReservationConfirmedFunc != nil {
		return m.SendReservationConfirmedFunc(ctx, to, reservation)
	}
	return nil
}

func (m *MockEmailService) SendSessionCompleted(ctx context.Context, to string, session *domain.ChargingSession) error {
	if m.SendSessionCompletedFunc != nil {
		return m.SendSessionCompletedFunc(ctx, to, session)
	}
	return nil
}

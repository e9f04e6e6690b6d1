package ports

import (
	"context"
	"time"

	"github.com/evsync/evsync/internal/domain"
)

// AccountRepository persists consumer and operator accounts.
type AccountRepository interface {
	Save(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// StationRepository persists charging stations and their outlets.
type StationRepository interface {
	Save(ctx context.Context, station *domain.ChargingStation) error
	FindByID(ctx context.Context, id string) (*domain.ChargingStation, error)
	FindAll(ctx context.Context, status string) ([]domain.ChargingStation, error)
	FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.ChargingStation, error)
	Delete(ctx context.Context, id string) error
}

// OutletRepository persists individual charging outlets.
type OutletRepository interface {
	Save(ctx context.Context, outlet *domain.ChargingOutlet) error
	FindByID(ctx context.Context, id string) (*domain.ChargingOutlet, error)
	FindByStationID(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error)
	UpdateStatus(ctx context.Context, id string, status domain.OutletStatus) error
}

// ReservationRepository persists reservations.
type ReservationRepository interface {
	Save(ctx context.Context, reservation *domain.Reservation) error
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	FindByConsumerID(ctx context.Context, consumerID string, status string, limit, offset int) ([]domain.Reservation, error)
	FindByStationID(ctx context.Context, stationID string, date time.Time) ([]domain.Reservation, error)

	// FindBlockingByOutlet returns reservations on the outlet in the
	// PENDING, CONFIRMED or ACTIVE states whose window intersects
	// [start, end).
	FindBlockingByOutlet(ctx context.Context, outletID string, start, end time.Time) ([]domain.Reservation, error)
}

// SessionRepository persists charging sessions.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.ChargingSession) error
	FindByID(ctx context.Context, id string) (*domain.ChargingSession, error)
	FindByReservationID(ctx context.Context, reservationID string) (*domain.ChargingSession, error)
	FindActive(ctx context.Context) ([]domain.ChargingSession, error)
	Delete(ctx context.Context, id string) error
}

// WalletRepository persists wallets and their ledger.
type WalletRepository interface {
	Save(ctx context.Context, wallet *domain.Wallet) error
	FindByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error)
	SaveTransaction(ctx context.Context, tx *domain.WalletTransaction) error
	FindTransactions(ctx context.Context, walletID string, limit, offset int) ([]domain.WalletTransaction, error)
}

// RatingRepository persists station ratings.
type RatingRepository interface {
	Save(ctx context.Context, rating *domain.Rating) error
	FindByStationID(ctx context.Context, stationID string) ([]domain.Rating, error)
}

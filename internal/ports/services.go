package ports

import (
	"context"
	"time"

	"github.com/evsync/evsync/internal/domain"
)

// ReservationRequest is the input to ReservationService.CreateReservation.
type ReservationRequest struct {
	ConsumerID    string
	StationID     string
	StartTime     time.Time
	DurationHours float64
}

// ReservationService manages the reservation lifecycle.
type ReservationService interface {
	CreateReservation(ctx context.Context, req *ReservationRequest) (*domain.Reservation, error)
	ConfirmReservation(ctx context.Context, id string) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, id string) (*domain.Reservation, error)
	GetReservation(ctx context.Context, id string) (*domain.Reservation, error)
	GetConsumerReservations(ctx context.Context, consumerID string, status string, limit, offset int) ([]domain.Reservation, error)
	GetStationReservations(ctx context.Context, stationID string, date time.Time) ([]domain.Reservation, error)
}

// SessionService manages charging sessions derived from confirmed
// reservations.
type SessionService interface {
	StartSession(ctx context.Context, reservationID string) (*domain.ChargingSession, error)
	EndSession(ctx context.Context, sessionID string, energyKWh float64) (*domain.ChargingSession, error)
	InterruptSession(ctx context.Context, sessionID string, reason string) (*domain.ChargingSession, error)
	GetSession(ctx context.Context, id string) (*domain.ChargingSession, error)
	DeleteSession(ctx context.Context, id string) error
}

// WalletService is the atomic per-consumer ledger.
type WalletService interface {
	GetWallet(ctx context.Context, accountID string) (*domain.Wallet, error)
	Credit(ctx context.Context, accountID string, amount float64, referenceID string) error
	Debit(ctx context.Context, accountID string, amount float64, description, referenceID string) error
	GetTransactions(ctx context.Context, accountID string, limit, offset int) ([]domain.WalletTransaction, error)
}

// StationRequest is the input to StationService.RegisterStation.
type StationRequest struct {
	Name       string
	OperatorID string
	Latitude   float64
	Longitude  float64
	Address    string
}

// OutletRequest is the input to StationService.AddOutlet.
type OutletRequest struct {
	StationID   string
	CostPerHour float64
	MaxPowerKW  float64
}

// StationService is the station directory.
type StationService interface {
	RegisterStation(ctx context.Context, req *StationRequest) (*domain.ChargingStation, error)
	GetStation(ctx context.Context, id string) (*domain.ChargingStation, error)
	ListStations(ctx context.Context, status string) ([]domain.ChargingStation, error)
	FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.ChargingStation, error)
	DeleteStation(ctx context.Context, id string) error
	AddOutlet(ctx context.Context, req *OutletRequest) (*domain.ChargingOutlet, error)
}

// AuthService authenticates accounts and issues JWT tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error)
	Register(ctx context.Context, account *domain.Account) error
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.Account, error)
}

// RatingService handles station reviews and the environmental impact
// estimate.
type RatingService interface {
	RateStation(ctx context.Context, consumerID, stationID string, score int, comment string) (*domain.Rating, error)
	GetStationRatings(ctx context.Context, stationID string) ([]domain.Rating, float64, error)
	EstimateImpact(energyKWh float64) float64
}

// EmailService sends transactional notifications.
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendReservationConfirmed(ctx context.Context, to string, reservation *domain.Reservation) error
	SendSessionCompleted(ctx context.Context, to string, session *domain.ChargingSession) error
}

// Cache is a key-value cache with TTL semantics.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

// Geocoder resolves a postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lon float64, err error)
}

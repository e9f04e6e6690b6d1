package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/ports"
)

type ReservationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReservationRepository(db *gorm.DB, log *zap.Logger) ports.ReservationRepository {
	return &ReservationRepository{
		db:  db,
		log: log,
	}
}

func (r *ReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := r.db.WithContext(ctx).First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepository) FindByConsumerID(ctx context.Context, consumerID string, status string, limit, offset int) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	query := r.db.WithContext(ctx).Where("consumer_id = ?", consumerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("start_time desc").Limit(limit).Offset(offset).Find(&reservations).Error
	return reservations, err
}

func (r *ReservationRepository) FindByStationID(ctx context.Context, stationID string, date time.Time) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	err := r.db.WithContext(ctx).
		Where("station_id = ? AND start_time >= ? AND start_time < ?", stationID, startOfDay, endOfDay).
		Order("start_time asc").
		Find(&reservations).Error
	return reservations, err
}

// FindBlockingByOutlet returns non-terminal reservations on the outlet
// whose window intersects [start, end). The SQL window filter uses the
// same half-open overlap rule as the domain check.
func (r *ReservationRepository) FindBlockingByOutlet(ctx context.Context, outletID string, start, end time.Time) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("outlet_id = ?", outletID).
		Where("status IN ?", []domain.ReservationStatus{
			domain.ReservationStatusPending,
			domain.ReservationStatusConfirmed,
			domain.ReservationStatusActive,
		}).
		Where("start_time < ? AND (start_time + (duration_hours || ' hours')::interval) > ?", end, start).
		Find(&reservations).Error
	return reservations, err
}

package postgres

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/ports"
)

type StationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStationRepository(db *gorm.DB, log *zap.Logger) ports.StationRepository {
	return &StationRepository{
		db:  db,
		log: log,
	}
}

func (r *StationRepository) Save(ctx context.Context, station *domain.ChargingStation) error {
	return r.db.WithContext(ctx).Save(station).Error
}

func (r *StationRepository) FindByID(ctx context.Context, id string) (*domain.ChargingStation, error) {
	var station domain.ChargingStation
	err := r.db.WithContext(ctx).
		Preload("Outlets", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&station, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &station, nil
}

func (r *StationRepository) FindAll(ctx context.Context, status string) ([]domain.ChargingStation, error) {
	var stations []domain.ChargingStation
	query := r.db.WithContext(ctx).
		Preload("Outlets", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") })
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at asc").Find(&stations).Error
	return stations, err
}

// FindNearby filters candidates with a coarse bounding box; the caller
// applies the exact haversine cut.
func (r *StationRepository) FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.ChargingStation, error) {
	latDelta := radiusKm / 111.0
	lonDelta := radiusKm / (111.0 * math.Cos(lat*math.Pi/180))
	if lonDelta < 0 {
		lonDelta = -lonDelta
	}

	var stations []domain.ChargingStation
	err := r.db.WithContext(ctx).
		Preload("Outlets", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("latitude BETWEEN ? AND ?", lat-latDelta, lat+latDelta).
		Where("longitude BETWEEN ? AND ?", lon-lonDelta, lon+lonDelta).
		Find(&stations).Error
	return stations, err
}

func (r *StationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("station_id = ?", id).Delete(&domain.ChargingOutlet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.ChargingStation{}, "id = ?", id).Error
	})
}

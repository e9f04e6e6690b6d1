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

type OutletRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewOutletRepository(db *gorm.DB, log *zap.Logger) ports.OutletRepository {
	return &OutletRepository{
		db:  db,
		log: log,
	}
}

func (r *OutletRepository) Save(ctx context.Context, outlet *domain.ChargingOutlet) error {
	return r.db.WithContext(ctx).Save(outlet).Error
}

func (r *OutletRepository) FindByID(ctx context.Context, id string) (*domain.ChargingOutlet, error) {
	var outlet domain.ChargingOutlet
	err := r.db.WithContext(ctx).First(&outlet, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &outlet, nil
}

// FindByStationID returns outlets in insertion order, which is the scan
// order for first-fit selection.
func (r *OutletRepository) FindByStationID(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error) {
	var outlets []domain.ChargingOutlet
	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("position asc").
		Find(&outlets).Error
	return outlets, err
}

func (r *OutletRepository) UpdateStatus(ctx context.Context, id string, status domain.OutletStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.ChargingOutlet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFound("outlet", id)
	}
	return nil
}

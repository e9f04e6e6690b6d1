package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/ports"
)

type RatingRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRatingRepository(db *gorm.DB, log *zap.Logger) ports.RatingRepository {
	return &RatingRepository{
		db:  db,
		log: log,
	}
}

func (r *RatingRepository) Save(ctx context.Context, rating *domain.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *RatingRepository) FindByStationID(ctx context.Context, stationID string) ([]domain.Rating, error) {
	var ratings []domain.Rating
	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

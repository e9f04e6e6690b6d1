package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/ports"
)

// Service implements RatingService
type Service struct {
	repo        ports.RatingRepository
	stationRepo ports.StationRepository
	log         *zap.Logger
}

// NewService creates a new rating service
func NewService(repo ports.RatingRepository, stationRepo ports.StationRepository, log *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		stationRepo: stationRepo,
		log:         log,
	}
}

// RateStation stores a 1..5 review of a station.
func (s *Service) RateStation(ctx context.Context, consumerID, stationID string, score int, comment string) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, domain.NewValidation("score", "must be between 1 and 5")
	}

	station, err := s.stationRepo.FindByID(ctx, stationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	if station == nil {
		return nil, domain.NewNotFound("station", stationID)
	}

	rating := &domain.Rating{
		ID:         uuid.New().String(),
		ConsumerID: consumerID,
		StationID:  stationID,
		Score:      score,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Save(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	s.log.Info("Station rated",
		zap.String("station_id", stationID),
		zap.Int("score", score),
	)

	return rating, nil
}

// GetStationRatings returns all ratings of a station and their average.
// The average is 0 when no ratings exist.
func (s *Service) GetStationRatings(ctx context.Context, stationID string) ([]domain.Rating, float64, error) {
	ratings, err := s.repo.FindByStationID(ctx, stationID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get ratings: %w", err)
	}

	if len(ratings) == 0 {
		return ratings, 0, nil
	}

	sum := 0
	for i := range ratings {
		sum += ratings[i].Score
	}

	return ratings, float64(sum) / float64(len(ratings)), nil
}

// EstimateImpact returns the estimated CO2 avoided by charging the given
// energy instead of burning fuel.
func (s *Service) EstimateImpact(energyKWh float64) float64 {
	return domain.EstimateCO2AvoidedKg(energyKWh)
}

package rating

import (
	"context"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestRateStation_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()

	var saved *domain.Rating
	mockRepo := &mocks.MockRatingRepository{
		SaveFunc: func(ctx context.Context, r *domain.Rating) error {
			saved = r
			return nil
		},
	}
	mockStationRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return &domain.ChargingStation{ID: id}, nil
		},
	}

	service := NewService(mockRepo, mockStationRepo, newTestLogger())

	// Act
	rating, err := service.RateStation(ctx, "consumer-1", "station-1", 4, "fast charger")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rating.Score != 4 {
		t.Errorf("expected score 4, got %d", rating.Score)
	}
	if saved == nil {
		t.Error("expected rating to be persisted")
	}
}

func TestRateStation_ScoreOutOfRange(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(&mocks.MockRatingRepository{}, &mocks.MockStationRepository{}, newTestLogger())

	for _, score := range []int{0, 6, -1} {
		// Act
		_, err := service.RateStation(ctx, "consumer-1", "station-1", score, "")

		// Assert
		if !domain.IsValidation(err) {
			t.Errorf("score %d: expected validation error, got %v", score, err)
		}
	}
}

func TestRateStation_StationNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(&mocks.MockRatingRepository{}, &mocks.MockStationRepository{}, newTestLogger())

	// Act
	_, err := service.RateStation(ctx, "consumer-1", "nowhere", 3, "")

	// Assert
	if !domain.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestGetStationRatings_Average(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockRatingRepository{
		FindByStationIDFunc: func(ctx context.Context, stationID string) ([]domain.Rating, error) {
			return []domain.Rating{
				{Score: 5},
				{Score: 4},
				{Score: 2},
			}, nil
		},
	}

	service := NewService(mockRepo, &mocks.MockStationRepository{}, newTestLogger())

	// Act
	ratings, average, err := service.GetStationRatings(ctx, "station-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ratings) != 3 {
		t.Errorf("expected 3 ratings, got %d", len(ratings))
	}
	if math.Abs(average-11.0/3.0) > 1e-9 {
		t.Errorf("expected average %f, got %f", 11.0/3.0, average)
	}
}

func TestGetStationRatings_EmptyAverageIsZero(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(&mocks.MockRatingRepository{}, &mocks.MockStationRepository{}, newTestLogger())

	// Act
	_, average, err := service.GetStationRatings(ctx, "station-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if average != 0 {
		t.Errorf("expected average 0 with no ratings, got %f", average)
	}
}

func TestEstimateImpact(t *testing.T) {
	// Arrange
	service := NewService(&mocks.MockRatingRepository{}, &mocks.MockStationRepository{}, newTestLogger())

	// Act
	avoided := service.EstimateImpact(40.0)

	// Assert
	if avoided != 10.0 {
		t.Errorf("expected 10.0 kg CO2 avoided for 40 kWh, got %f", avoided)
	}
}

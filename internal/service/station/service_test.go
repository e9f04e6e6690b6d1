package station

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/mocks"
	"github.com/evsync/evsync/internal/ports"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestRegisterStation_WithCoordinates(t *testing.T) {
	// Arrange
	ctx := context.Background()

	var saved *domain.ChargingStation
	mockRepo := &mocks.MockStationRepository{
		SaveFunc: func(ctx context.Context, s *domain.ChargingStation) error {
			saved = s
			return nil
		},
	}
	mockGeocoder := &mocks.MockGeocoder{
		GeocodeFunc: func(ctx context.Context, address string) (float64, float64, error) {
			t.Error("geocoder must not be called when coordinates are given")
			return 0, 0, nil
		},
	}

	service := NewService(mockRepo, &mocks.MockOutletRepository{}, mockGeocoder, mocks.NewMockCache(), newTestLogger())

	// Act
	station, err := service.RegisterStation(ctx, &ports.StationRequest{
		Name:       "Central Garage",
		OperatorID: "operator-1",
		Latitude:   48.8566,
		Longitude:  2.3522,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if station.Latitude != 48.8566 || station.Longitude != 2.3522 {
		t.Errorf("unexpected coordinates: %f, %f", station.Latitude, station.Longitude)
	}
	if station.Status != domain.StationStatusAvailable {
		t.Errorf("expected status AVAILABLE, got %s", station.Status)
	}
	if saved == nil {
		t.Error("expected station to be persisted")
	}
}

func TestRegisterStation_GeocodesAddress(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockStationRepository{}
	mockGeocoder := &mocks.MockGeocoder{
		GeocodeFunc: func(ctx context.Context, address string) (float64, float64, error) {
			return 52.52, 13.405, nil
		},
	}

	service := NewService(mockRepo, &mocks.MockOutletRepository{}, mockGeocoder, mocks.NewMockCache(), newTestLogger())

	// Act
	station, err := service.RegisterStation(ctx, &ports.StationRequest{
		Name:       "Berlin Hub",
		OperatorID: "operator-1",
		Address:    "Alexanderplatz 1, Berlin",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if station.Latitude != 52.52 || station.Longitude != 13.405 {
		t.Errorf("expected geocoded coordinates, got %f, %f", station.Latitude, station.Longitude)
	}
}

func TestRegisterStation_GeocodingFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockGeocoder := &mocks.MockGeocoder{
		GeocodeFunc: func(ctx context.Context, address string) (float64, float64, error) {
			return 0, 0, errors.New("upstream unavailable")
		},
	}

	service := NewService(&mocks.MockStationRepository{}, &mocks.MockOutletRepository{},
		mockGeocoder, mocks.NewMockCache(), newTestLogger())

	// Act
	_, err := service.RegisterStation(ctx, &ports.StationRequest{
		Name:       "Berlin Hub",
		OperatorID: "operator-1",
		Address:    "Alexanderplatz 1, Berlin",
	})

	// Assert
	if err == nil {
		t.Fatal("expected geocoding error to propagate")
	}
}

func TestRegisterStation_MissingAddressAndCoordinates(t *testing.T) {
	// Arrange
	ctx := context.Background()

	service := NewService(&mocks.MockStationRepository{}, &mocks.MockOutletRepository{},
		&mocks.MockGeocoder{}, mocks.NewMockCache(), newTestLogger())

	// Act
	_, err := service.RegisterStation(ctx, &ports.StationRequest{
		Name:       "Nowhere",
		OperatorID: "operator-1",
	})

	// Assert
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestFindNearby_FiltersByDistance(t *testing.T) {
	// Arrange: one station ~1km away, one ~50km away.
	ctx := context.Background()

	mockRepo := &mocks.MockStationRepository{
		FindNearbyFunc: func(ctx context.Context, lat, lon, radiusKm float64) ([]domain.ChargingStation, error) {
			return []domain.ChargingStation{
				{ID: "near", Latitude: 48.8656, Longitude: 2.3522},
				{ID: "far", Latitude: 49.30, Longitude: 2.3522},
			}, nil
		},
	}

	service := NewService(mockRepo, &mocks.MockOutletRepository{},
		&mocks.MockGeocoder{}, mocks.NewMockCache(), newTestLogger())

	// Act
	stations, err := service.FindNearby(ctx, 48.8566, 2.3522, 5)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(stations) != 1 {
		t.Fatalf("expected 1 station within radius, got %d", len(stations))
	}
	if stations[0].ID != "near" {
		t.Errorf("expected the near station, got %s", stations[0].ID)
	}
}

func TestDeleteStation_OccupiedOutletRejected(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return &domain.ChargingStation{ID: id, Status: domain.StationStatusAvailable}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			t.Error("station with an occupied outlet must not be deleted")
			return nil
		},
	}
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByStationIDFunc: func(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error) {
			return []domain.ChargingOutlet{
				{ID: "outlet-1", StationID: stationID, Status: domain.OutletStatusOccupied},
			}, nil
		},
	}

	service := NewService(mockRepo, mockOutletRepo, &mocks.MockGeocoder{}, mocks.NewMockCache(), newTestLogger())

	// Act
	err := service.DeleteStation(ctx, "station-1")

	// Assert
	if !domain.IsInvalidState(err) {
		t.Errorf("expected invalid-state error, got %v", err)
	}
}

func TestDeleteStation_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()

	deleted := false
	mockRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return &domain.ChargingStation{ID: id, Status: domain.StationStatusAvailable}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}

	service := NewService(mockRepo, &mocks.MockOutletRepository{},
		&mocks.MockGeocoder{}, mocks.NewMockCache(), newTestLogger())

	// Act
	err := service.DeleteStation(ctx, "station-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !deleted {
		t.Error("expected station to be deleted")
	}
}

func TestAddOutlet_AssignsNextPosition(t *testing.T) {
	// Arrange
	ctx := context.Background()

	mockRepo := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			return &domain.ChargingStation{ID: id}, nil
		},
	}

	var saved *domain.ChargingOutlet
	mockOutletRepo := &mocks.MockOutletRepository{
		FindByStationIDFunc: func(ctx context.Context, stationID string) ([]domain.ChargingOutlet, error) {
			return []domain.ChargingOutlet{
				{ID: "outlet-a", Position: 0},
				{ID: "outlet-b", Position: 1},
			}, nil
		},
		SaveFunc: func(ctx context.Context, o *domain.ChargingOutlet) error {
			saved = o
			return nil
		},
	}

	service := NewService(mockRepo, mockOutletRepo, &mocks.MockGeocoder{}, mocks.NewMockCache(), newTestLogger())

	// Act
	outlet, err := service.AddOutlet(ctx, &ports.OutletRequest{
		StationID:   "station-1",
		CostPerHour: 12.5,
		MaxPowerKW:  22,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if outlet.Position != 2 {
		t.Errorf("expected position 2, got %d", outlet.Position)
	}
	if outlet.Status != domain.OutletStatusAvailable {
		t.Errorf("expected status AVAILABLE, got %s", outlet.Status)
	}
	if saved == nil {
		t.Error("expected outlet to be persisted")
	}
}

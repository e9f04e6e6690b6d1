package station

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/ports"
)

const (
	stationCacheTTL = 5 * time.Minute
	stationCacheKey = "station:"
)

// Service implements StationService, the station directory used by
// operators. Outlet status writes happen only in the session service.
type Service struct {
	repo       ports.StationRepository
	outletRepo ports.OutletRepository
	geocoder   ports.Geocoder
	cache      ports.Cache
	log        *zap.Logger
}

// NewService creates a new station service
func NewService(
	repo ports.StationRepository,
	outletRepo ports.OutletRepository,
	geocoder ports.Geocoder,
	cache ports.Cache,
	log *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		outletRepo: outletRepo,
		geocoder:   geocoder,
		cache:      cache,
		log:        log,
	}
}

// RegisterStation creates a station. When coordinates are absent the
// address is geocoded; geocoding failures propagate to the caller.
func (s *Service) RegisterStation(ctx context.Context, req *ports.StationRequest) (*domain.ChargingStation, error) {
	if req.Name == "" {
		return nil, domain.NewValidation("name", "is required")
	}
	if req.OperatorID == "" {
		return nil, domain.NewValidation("operator_id", "is required")
	}

	lat, lon := req.Latitude, req.Longitude
	if lat == 0 && lon == 0 {
		if req.Address == "" {
			return nil, domain.NewValidation("address", "required when coordinates are absent")
		}
		var err error
		lat, lon, err = s.geocoder.Geocode(ctx, req.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to geocode address: %w", err)
		}
	}

	station := &domain.ChargingStation{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Latitude:   lat,
		Longitude:  lon,
		Address:    req.Address,
		Status:     domain.StationStatusAvailable,
		OperatorID: req.OperatorID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.Save(ctx, station); err != nil {
		return nil, fmt.Errorf("failed to save station: %w", err)
	}

	s.log.Info("Station registered",
		zap.String("station_id", station.ID),
		zap.String("operator_id", req.OperatorID),
		zap.Float64("latitude", lat),
		zap.Float64("longitude", lon),
	)

	return station, nil
}

// GetStation retrieves a station with its outlets, serving repeated
// directory reads from the cache.
func (s *Service) GetStation(ctx context.Context, id string) (*domain.ChargingStation, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, stationCacheKey+id); err == nil && cached != "" {
			var station domain.ChargingStation
			if err := json.Unmarshal([]byte(cached), &station); err == nil {
				return &station, nil
			}
		}
	}

	station, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	if station == nil {
		return nil, domain.NewNotFound("station", id)
	}

	if s.cache != nil {
		if data, err := json.Marshal(station); err == nil {
			if err := s.cache.Set(ctx, stationCacheKey+id, string(data), stationCacheTTL); err != nil {
				s.log.Debug("Failed to cache station", zap.Error(err))
			}
		}
	}

	return station, nil
}

// ListStations lists stations, optionally filtered by status.
func (s *Service) ListStations(ctx context.Context, status string) ([]domain.ChargingStation, error) {
	return s.repo.FindAll(ctx, status)
}

// FindNearby returns stations within radiusKm of a point. The repository
// pre-filters with a bounding box; the precise haversine cut happens here.
func (s *Service) FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.ChargingStation, error) {
	if radiusKm <= 0 {
		radiusKm = 10
	}

	candidates, err := s.repo.FindNearby(ctx, lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby stations: %w", err)
	}

	nearby := make([]domain.ChargingStation, 0, len(candidates))
	for i := range candidates {
		if candidates[i].DistanceKm(lat, lon) <= radiusKm {
			nearby = append(nearby, candidates[i])
		}
	}

	return nearby, nil
}

// DeleteStation removes a station. Forbidden while any outlet is
// occupied by a running session.
func (s *Service) DeleteStation(ctx context.Context, id string) error {
	station, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get station: %w", err)
	}
	if station == nil {
		return domain.NewNotFound("station", id)
	}

	if station.Status == domain.StationStatusOccupied {
		return domain.NewInvalidState("station", id, "cannot delete an occupied station")
	}

	outlets, err := s.outletRepo.FindByStationID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list outlets: %w", err)
	}
	for i := range outlets {
		if outlets[i].Status == domain.OutletStatusOccupied {
			return domain.NewInvalidState("station", id, "cannot delete a station with an occupied outlet")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, stationCacheKey+id); err != nil {
			s.log.Debug("Failed to invalidate station cache", zap.Error(err))
		}
	}

	s.log.Info("Station deleted", zap.String("station_id", id))
	return nil
}

// AddOutlet appends an outlet to a station. Position records insertion
// order, which drives first-fit outlet selection.
func (s *Service) AddOutlet(ctx context.Context, req *ports.OutletRequest) (*domain.ChargingOutlet, error) {
	if req.CostPerHour < 0 {
		return nil, domain.NewValidation("cost_per_hour", "must not be negative")
	}

	station, err := s.repo.FindByID(ctx, req.StationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get station: %w", err)
	}
	if station == nil {
		return nil, domain.NewNotFound("station", req.StationID)
	}

	existing, err := s.outletRepo.FindByStationID(ctx, req.StationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}

	outlet := &domain.ChargingOutlet{
		ID:          uuid.New().String(),
		StationID:   req.StationID,
		Position:    len(existing),
		CostPerHour: req.CostPerHour,
		MaxPowerKW:  req.MaxPowerKW,
		Status:      domain.OutletStatusAvailable,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.outletRepo.Save(ctx, outlet); err != nil {
		return nil, fmt.Errorf("failed to save outlet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, stationCacheKey+req.StationID); err != nil {
			s.log.Debug("Failed to invalidate station cache", zap.Error(err))
		}
	}

	s.log.Info("Outlet added",
		zap.String("outlet_id", outlet.ID),
		zap.String("station_id", req.StationID),
		zap.Int("position", outlet.Position),
	)

	return outlet, nil
}

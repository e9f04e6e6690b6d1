package domain

import (
	"math"
	"time"
)

// StationStatus is informational; session admission is decided by outlet
// status and the reservation index.
type StationStatus string

const (
	StationStatusAvailable   StationStatus = "AVAILABLE"
	StationStatusOccupied    StationStatus = "OCCUPIED"
	StationStatusMaintenance StationStatus = "MAINTENANCE"
)

// OutletStatus is authoritative for physical occupancy: an outlet is
// OCCUPIED exactly while an active charging session holds it.
type OutletStatus string

const (
	OutletStatusAvailable OutletStatus = "AVAILABLE"
	OutletStatusOccupied  OutletStatus = "OCCUPIED"
)

// ChargingStation groups outlets at a geographic location.
type ChargingStation struct {
	ID         string           `json:"id" gorm:"primaryKey"`
	Name       string           `json:"name"`
	Latitude   float64          `json:"latitude"`
	Longitude  float64          `json:"longitude"`
	Address    string           `json:"address,omitempty"`
	Status     StationStatus    `json:"status"`
	OperatorID string           `json:"operator_id" gorm:"index"`
	Outlets    []ChargingOutlet `json:"outlets,omitempty" gorm:"foreignKey:StationID"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ChargingOutlet is a single plug. Position preserves insertion order so
// outlet selection is deterministic (first fit).
type ChargingOutlet struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	StationID   string       `json:"station_id" gorm:"index"`
	Position    int          `json:"position"`
	CostPerHour float64      `json:"cost_per_hour"`
	MaxPowerKW  float64      `json:"max_power_kw"`
	Status      OutletStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine distance from the station to a point.
func (s *ChargingStation) DistanceKm(lat, lon float64) float64 {
	dLat := (lat - s.Latitude) * math.Pi / 180
	dLon := (lon - s.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(s.Latitude*math.Pi/180)*math.Cos(lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

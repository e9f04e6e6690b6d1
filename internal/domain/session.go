package domain

import "time"

// SessionStatus represents the lifecycle state of a charging session
type SessionStatus string

const (
	SessionStatusActive      SessionStatus = "ACTIVE"
	SessionStatusCompleted   SessionStatus = "COMPLETED"
	SessionStatusCancelled   SessionStatus = "CANCELLED"
	SessionStatusInterrupted SessionStatus = "INTERRUPTED" // abnormal termination, no settlement
)

// ChargingSession is the physical act of charging against a confirmed
// reservation. At most one session exists per reservation.
type ChargingSession struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	ReservationID string        `json:"reservation_id" gorm:"uniqueIndex"`
	OutletID      string        `json:"outlet_id" gorm:"index"`
	Status        SessionStatus `json:"status" gorm:"index"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       *time.Time    `json:"end_time,omitempty"`
	EnergyKWh     float64       `json:"energy_kwh"`
	TotalCost     float64       `json:"total_cost"` // derived at completion, never set by clients
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ElapsedHours returns the session duration in hours at minute
// granularity, as used for time-based pricing.
func (s *ChargingSession) ElapsedHours(end time.Time) float64 {
	minutes := end.Sub(s.StartTime).Minutes()
	if minutes < 0 {
		minutes = 0
	}
	return minutes / 60
}

// PricingPolicy selects how a completed session is priced. Exactly one
// policy applies per deployment.
type PricingPolicy string

const (
	PricingPerHour PricingPolicy = "per_hour"
	PricingPerKWh  PricingPolicy = "per_kwh"
)

// PricingConfig holds session pricing tunables.
type PricingConfig struct {
	Policy PricingPolicy
	PerKWh float64 // rate used only under PricingPerKWh
}

// DefaultPricingConfig returns time-based pricing.
func DefaultPricingConfig() *PricingConfig {
	return &PricingConfig{Policy: PricingPerHour}
}

// Cost computes the total session cost under the configured policy.
func (p *PricingConfig) Cost(elapsedHours, costPerHour, energyKWh float64) float64 {
	if p.Policy == PricingPerKWh {
		return energyKWh * p.PerKWh
	}
	return elapsedHours * costPerHour
}

package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusActive    ReservationStatus = "ACTIVE" // consumer arrived, session running
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation books a specific outlet for a time window. The outlet is
// fixed at creation and never reassigned.
type Reservation struct {
	ID            string            `json:"id" gorm:"primaryKey"`
	ConsumerID    string            `json:"consumer_id" gorm:"index"`
	StationID     string            `json:"station_id" gorm:"index"`
	OutletID      string            `json:"outlet_id" gorm:"index"`
	Status        ReservationStatus `json:"status" gorm:"index"`
	StartTime     time.Time         `json:"start_time" gorm:"index"`
	DurationHours float64           `json:"duration_hours"`
	Fee           float64           `json:"fee"` // confirmation fee, 0 until confirmed
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// EndTime returns the exclusive end of the reserved window.
func (r *Reservation) EndTime() time.Time {
	return r.StartTime.Add(time.Duration(r.DurationHours * float64(time.Hour)))
}

// Overlaps reports whether the reserved window [start, end) intersects
// [otherStart, otherEnd). Back-to-back windows do not overlap.
func (r *Reservation) Overlaps(otherStart, otherEnd time.Time) bool {
	return r.StartTime.Before(otherEnd) && otherStart.Before(r.EndTime())
}

// Blocks reports whether the reservation counts against outlet
// availability. CANCELLED and COMPLETED never block.
func (r *Reservation) Blocks() bool {
	switch r.Status {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusActive:
		return true
	}
	return false
}

// CanBeCancelled reports whether cancellation is a legal transition.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// ReservationConfig holds tunables for the reservation service.
type ReservationConfig struct {
	// FeePercent is the share of the estimated charging cost charged as
	// confirmation fee.
	FeePercent float64

	// MaxAdvanceBookingDays bounds how far ahead a window may start.
	MaxAdvanceBookingDays int
}

// DefaultReservationConfig returns the standard tunables.
func DefaultReservationConfig() *ReservationConfig {
	return &ReservationConfig{
		FeePercent:            0.20,
		MaxAdvanceBookingDays: 30,
	}
}

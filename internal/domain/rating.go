package domain

import "time"

// Rating is a consumer's review of a charging station.
type Rating struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ConsumerID string    `json:"consumer_id" gorm:"index"`
	StationID  string    `json:"station_id" gorm:"index"`
	Score      int       `json:"score"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CO2AvoidedKgPerKWh is the average CO2 avoided by charging from the grid
// instead of burning fuel.
const CO2AvoidedKgPerKWh = 0.25

// EstimateCO2AvoidedKg returns the environmental impact estimate for a
// given delivered energy.
func EstimateCO2AvoidedKg(energyKWh float64) float64 {
	if energyKWh < 0 {
		return 0
	}
	return energyKWh * CO2AvoidedKgPerKWh
}

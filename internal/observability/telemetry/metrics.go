package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	ActiveChargingSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "evsync_active_charging_sessions",
		Help: "Number of charging sessions currently active",
	})

	EnergyDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evsync_energy_delivered_kwh_total",
		Help: "Total energy delivered in kWh",
	})

	ReservationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evsync_reservations_total",
		Help: "Reservation operations by outcome",
	}, []string{"outcome"})

	WalletDebitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evsync_wallet_debits_total",
		Help: "Wallet debit attempts by result",
	}, []string{"result"})

	// Infrastructure metrics
	GeocodingRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evsync_geocoding_requests_total",
		Help: "Geocoding lookups by result",
	}, []string{"result"})
)

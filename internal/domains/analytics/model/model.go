package model

import (
	"math"
	"time"
)

const CacheSummary = "analytics:summary"

// Range is a half-open time interval [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

type StatusCount struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}

type Summary struct {
	RoomsByStatus    map[string]int `json:"rooms_by_status"`
	OccupancyRate    float64        `json:"occupancy_rate"`
	ArrivalsToday    int            `json:"arrivals_today"`
	DeparturesToday  int            `json:"departures_today"`
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	RevenueToday     float64        `json:"revenue_today"`
	RevenueMonth     float64        `json:"revenue_month"`
	AverageRating    float64        `json:"average_rating"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

func ToMap(counts []StatusCount) map[string]int {
	res := make(map[string]int, len(counts))
	for _, count := range counts {
		res[count.Status] += count.Total
	}

	return res
}

// OccupancyRate is occupied rooms over rooms that are not under maintenance.
func OccupancyRate(rooms map[string]int, occupied, maintenance string) float64 {
	total := 0
	for _, count := range rooms {
		total += count
	}

	sellable := total - rooms[maintenance]
	if sellable <= 0 {
		return 0
	}

	rate := float64(rooms[occupied]) / float64(sellable)

	return math.Round(rate*10000) / 10000
}

// Package models contains the data structures shared across the application.
package models

import (
	"time"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/chart"
)

// KundliRecord is a generated set of charts plus the birth metadata it came from.
type KundliRecord struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	BirthDateTime time.Time   `json:"birth_datetime"`
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	UTCOffset     string      `json:"utc_offset"`
	Lagna         chart.Chart `json:"lagna_chart"`
	Navamsa       chart.Chart `json:"navamsa_chart"`
	Moon          chart.Chart `json:"moon_chart"`
	Transit       chart.Chart `json:"transit_chart"`
	CreatedAt     time.Time   `json:"created_at"`
}

// KundliSummary is the listing view of a record.
type KundliSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	BirthDateTime time.Time `json:"birth_datetime"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summary returns the listing view of r.
func (r *KundliRecord) Summary() KundliSummary {
	return KundliSummary{
		ID:            r.ID,
		Name:          r.Name,
		BirthDateTime: r.BirthDateTime,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		CreatedAt:     r.CreatedAt,
	}
}

// DerivedCharts holds the charts computed from a Lagna chart.
type DerivedCharts struct {
	Moon    chart.Chart `json:"moon"`
	Navamsa chart.Chart `json:"navamsa"`
}

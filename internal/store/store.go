// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/models"
)

// DefaultListLimit is the number of records returned when no limit is given.
const DefaultListLimit = 10

// ChartStore persists generated kundli records.
type ChartStore interface {
	SaveKundli(ctx context.Context, record *models.KundliRecord) error
	// GetKundli returns errors.ErrChartNotFound when no record has the ID.
	GetKundli(ctx context.Context, id string) (*models.KundliRecord, error)
	// ListKundlis returns records newest first.
	ListKundlis(ctx context.Context, filter KundliFilter) ([]models.KundliRecord, error)
	DeleteKundli(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}

// KundliFilter represents filters for listing records.
type KundliFilter struct {
	Name  string // case-insensitive substring
	Limit int
}

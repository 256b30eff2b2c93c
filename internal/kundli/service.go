// Package kundli ties the chart engine to its collaborators: the position
// provider that supplies the Lagna chart and the store that keeps the results.
package kundli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/chart"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/ephemeris"
	apperrors "github.com/arvindbhardwaj2003/kundliDesign/internal/errors"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/logging"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/models"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/store"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/validation"
	"github.com/arvindbhardwaj2003/kundliDesign/pkg/utils"
)

// GenerateOptions controls a single generation.
type GenerateOptions struct {
	// DryRun derives the charts without persisting the record.
	DryRun bool
}

// Service generates, stores and retrieves kundlis.
type Service struct {
	provider  ephemeris.Provider
	store     store.ChartStore
	validator *validation.InputValidator
	logger    zerolog.Logger
	retry     utils.RetryConfig
	now       func() time.Time
}

// NewService creates a Service. st may be nil when only Derive and dry runs are needed.
func NewService(provider ephemeris.Provider, st store.ChartStore, validator *validation.InputValidator, logger zerolog.Logger) *Service {
	retry := utils.DefaultRetryConfig()
	retry.Retryable = apperrors.IsTransient

	return &Service{
		provider:  provider,
		store:     st,
		validator: validator,
		logger:    logger,
		retry:     retry,
		now:       time.Now,
	}
}

// Derive validates a Lagna chart and computes its Moon and Navamsa charts.
func (s *Service) Derive(lagna chart.Chart) (models.DerivedCharts, error) {
	if err := s.validator.ValidateLagnaChart(lagna); err != nil {
		return models.DerivedCharts{}, err
	}
	return models.DerivedCharts{
		Moon:    chart.BuildMoon(lagna),
		Navamsa: chart.BuildNavamsa(lagna),
	}, nil
}

// Generate produces a full kundli for birth and, unless opts.DryRun, saves it.
func (s *Service) Generate(ctx context.Context, birth models.BirthData, opts GenerateOptions) (*models.KundliRecord, error) {
	start := s.now()
	logger := logging.WithOperation(s.logger, "generate")

	if err := s.validator.ValidateBirthData(birth); err != nil {
		return nil, err
	}
	born, err := birth.DateTime()
	if err != nil {
		return nil, apperrors.NewValidationError("utcOffset", birth.UTCOffset, err.Error())
	}
	_, offsetSeconds := born.Zone()
	offset := time.Duration(offsetSeconds) * time.Second

	lagna, err := s.provider.LagnaChart(ctx, birth)
	if err != nil {
		return nil, fmt.Errorf("lagna chart from %s provider: %w", s.provider.Name(), err)
	}

	derived, err := s.Derive(lagna)
	if err != nil {
		return nil, fmt.Errorf("deriving charts: %w", err)
	}

	record := &models.KundliRecord{
		ID:            uuid.New().String(),
		Name:          birth.Name,
		BirthDateTime: born.UTC(),
		Latitude:      birth.Latitude,
		Longitude:     birth.Longitude,
		UTCOffset:     models.FormatUTCOffset(offset),
		Lagna:         lagna,
		Navamsa:       derived.Navamsa,
		Moon:          derived.Moon,
		Transit:       lagna.Clone(),
		CreatedAt:     s.now().UTC(),
	}
	logger = logging.WithChartID(logger, record.ID)

	if opts.DryRun {
		logger.Debug().Msg("Dry run, record not saved")
		return record, nil
	}

	if s.store == nil {
		return nil, fmt.Errorf("no chart store configured")
	}
	err = utils.Retry(ctx, s.retry, func() error {
		return s.store.SaveKundli(ctx, record)
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to save kundli")
		return nil, fmt.Errorf("saving kundli: %w", err)
	}

	logging.LogChartGenerated(logger, record.ID, record.Name, s.provider.Name(), s.now().Sub(start))
	return record, nil
}

// GenerateBatch generates one kundli per birth with at most concurrency in
// flight. Results are in input order. The first failure cancels the rest.
func (s *Service) GenerateBatch(ctx context.Context, births []models.BirthData, concurrency int, opts GenerateOptions) ([]*models.KundliRecord, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	records := make([]*models.KundliRecord, len(births))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, birth := range births {
		i, birth := i, birth
		g.Go(func() error {
			record, err := s.Generate(gctx, birth, opts)
			if err != nil {
				return fmt.Errorf("birth %d (%s): %w", i+1, birth.Name, err)
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// Get returns a stored kundli.
func (s *Service) Get(ctx context.Context, id string) (*models.KundliRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no chart store configured")
	}
	return s.store.GetKundli(ctx, id)
}

// Recent returns the newest kundlis, store.DefaultListLimit when limit <= 0.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.KundliRecord, error) {
	return s.List(ctx, store.KundliFilter{Limit: limit})
}

// List returns stored kundlis matching filter, newest first.
func (s *Service) List(ctx context.Context, filter store.KundliFilter) ([]models.KundliRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no chart store configured")
	}
	if filter.Limit <= 0 {
		filter.Limit = store.DefaultListLimit
	}
	return s.store.ListKundlis(ctx, filter)
}

// Delete removes a stored kundli.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return fmt.Errorf("no chart store configured")
	}
	if err := s.store.DeleteKundli(ctx, id); err != nil {
		return err
	}
	logger := logging.WithChartID(s.logger, id)
	logger.Info().Str("event", "chart_deleted").Msg("Kundli deleted")
	return nil
}

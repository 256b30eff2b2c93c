// Package ephemeris supplies Lagna charts: the planetary positions the chart
// engine derives everything else from.
package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/chart"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/config"
	apperrors "github.com/arvindbhardwaj2003/kundliDesign/internal/errors"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/models"
)

// Provider names accepted in configuration.
const (
	ProviderMock = "mock"
	ProviderFile = "file"
)

// Provider produces the Lagna chart for a birth.
type Provider interface {
	LagnaChart(ctx context.Context, birth models.BirthData) (chart.Chart, error)
	Name() string
}

// New returns the provider selected by cfg.
func New(cfg config.EphemerisConfig) (Provider, error) {
	switch cfg.Provider {
	case "", ProviderMock:
		return NewMockProvider(), nil
	case ProviderFile:
		if cfg.ChartFile == "" {
			return nil, apperrors.Wrap(apperrors.ErrConfigInvalid, "file provider needs ephemeris.chart_file")
		}
		return NewFileProvider(cfg.ChartFile), nil
	default:
		return nil, apperrors.Wrapf(apperrors.ErrConfigInvalid, "unknown ephemeris provider %q", cfg.Provider)
	}
}

// MockProvider returns the same fixed chart for every birth. It stands in for a
// real ephemeris until one is wired up.
type MockProvider struct{}

// NewMockProvider creates a MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name implements Provider.
func (p *MockProvider) Name() string { return ProviderMock }

// LagnaChart implements Provider.
func (p *MockProvider) LagnaChart(ctx context.Context, _ models.BirthData) (chart.Chart, error) {
	if err := ctx.Err(); err != nil {
		return chart.Chart{}, err
	}
	return MockLagna(), nil
}

// MockLagna is Aries rising with the fixed sample positions.
func MockLagna() chart.Chart {
	const asc = `>00°45'23"`
	c := chart.WholeSign(chart.Aries)
	c.House(1).Ascendant = asc
	c.Place(1, chart.Ascendant, asc)
	c.Place(2, chart.Mercury, `>05°12'45"`)
	c.Place(4, chart.Moon, `>12°30'10"`)
	c.Place(5, chart.Sun, `>18°22'33"`)
	c.Place(5, chart.Venus, `>20°15'44"`)
	c.Place(7, chart.Mars, `>25°40'12"`)
	c.Place(9, chart.Jupiter, `>08°55'20"`)
	c.Place(11, chart.Saturn, `>15°18'30"`)
	c.Place(12, chart.Rahu, `>22°10'05"`)
	c.Place(12, chart.Ketu, `>22°10'05"`)
	return c
}

// FileProvider reads a Lagna chart from a YAML or JSON file on every call.
type FileProvider struct {
	path string
}

// NewFileProvider creates a FileProvider for path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Name implements Provider.
func (p *FileProvider) Name() string { return ProviderFile }

// LagnaChart implements Provider. The birth data is ignored; the file is the chart.
func (p *FileProvider) LagnaChart(ctx context.Context, _ models.BirthData) (chart.Chart, error) {
	if err := ctx.Err(); err != nil {
		return chart.Chart{}, err
	}
	c, err := LoadChart(p.path)
	if err != nil {
		return chart.Chart{}, fmt.Errorf("%w: %v", apperrors.ErrProviderFailed, err)
	}
	return c, nil
}

// LoadChart reads a chart file. Files ending in .json are decoded as JSON,
// everything else as YAML.
func LoadChart(path string) (chart.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chart.Chart{}, fmt.Errorf("reading chart file: %w", err)
	}
	return DecodeChart(data, filepath.Ext(path))
}

// DecodeChart decodes chart data in the format implied by ext.
func DecodeChart(data []byte, ext string) (chart.Chart, error) {
	var c chart.Chart
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return chart.Chart{}, fmt.Errorf("decoding chart json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return chart.Chart{}, fmt.Errorf("decoding chart yaml: %w", err)
		}
	}
	return c, nil
}

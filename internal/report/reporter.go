// Package report implements the shelter reports: the breed box plot and the
// cat/dog density plot. Each report filters the dataset, aggregates it,
// renders a chart and writes <output dir>/<file name>.png.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/plot/vg"

	"github.com/dbsmedya/shelterstats/internal/chart"
	"github.com/dbsmedya/shelterstats/internal/config"
	"github.com/dbsmedya/shelterstats/internal/logger"
)

// ErrInvalidFileName is returned for file names that are empty, contain a
// path separator or carry an extension.
var ErrInvalidFileName = errors.New("invalid file name")

// Reporter produces report images from a dataset. It holds no state that
// changes between calls.
type Reporter struct {
	cfg    *config.Config
	style  chart.Style
	logger *logger.Logger
}

// NewReporter creates a Reporter. The chart style is derived from cfg.Style.
func NewReporter(cfg *config.Config, log *logger.Logger) (*Reporter, error) {
	if log == nil {
		log = logger.NewDefault()
	}
	style, err := StyleFromConfig(cfg.Style)
	if err != nil {
		return nil, err
	}
	return &Reporter{
		cfg:    cfg,
		style:  style,
		logger: log,
	}, nil
}

// Style returns the chart style every render uses.
func (r *Reporter) Style() chart.Style {
	return r.style
}

// OutputPath returns <output dir>/<fileName>.png after validating fileName.
func (r *Reporter) OutputPath(fileName string) (string, error) {
	if fileName == "" || fileName == "." || fileName == ".." ||
		strings.ContainsAny(fileName, `/\`) || filepath.Ext(fileName) != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, fileName)
	}
	return filepath.Join(r.cfg.Output.Dir, fileName+".png"), nil
}

func (r *Reporter) runLogger(report string) *logger.Logger {
	return r.logger.WithReport(report).WithRun(uuid.NewString())
}

// StyleFromConfig converts the configured sizes into a chart style.
func StyleFromConfig(sc config.StyleConfig) (chart.Style, error) {
	s := chart.DefaultStyle()

	setPoints := func(dst *vg.Length, v float64) {
		if v > 0 {
			*dst = vg.Points(v)
		}
	}
	setPoints(&s.TitleSize, sc.TitleSize)
	setPoints(&s.LabelSize, sc.LabelSize)
	setPoints(&s.TickLabelSize, sc.TickLabelSize)
	setPoints(&s.LegendSize, sc.LegendSize)
	setPoints(&s.AnnotationSize, sc.AnnotationSize)
	setPoints(&s.TickLength, sc.TickLength)
	setPoints(&s.BoxWidth, sc.BoxWidth)

	if sc.WidthInches > 0 {
		s.Width = vg.Length(sc.WidthInches) * vg.Inch
	}
	if sc.HeightInches > 0 {
		s.Height = vg.Length(sc.HeightInches) * vg.Inch
	}
	if sc.DPI > 0 {
		s.DPI = sc.DPI
	}
	if sc.Background != "" {
		bg, err := chart.ParseHexColor(sc.Background)
		if err != nil {
			return chart.Style{}, fmt.Errorf("style.background: %w", err)
		}
		s.Background = bg
	}
	return s, nil
}

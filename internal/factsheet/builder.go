package factsheet

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"factsheet/internal/catalog"
	"factsheet/internal/format"
	"factsheet/internal/logger"
	"factsheet/internal/normalize"
	"factsheet/internal/sheet"
)

const defaultWorkers = 4

// Builder turns a sheet book into chart payloads. Charts are independent, so
// they are built concurrently; output order follows the catalogue.
type Builder struct {
	charts  []catalog.Chart
	opts    normalize.Options
	workers int
	now     func() time.Time
}

func NewBuilder(charts []catalog.Chart, opts normalize.Options, workers int) *Builder {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Builder{charts: charts, opts: opts, workers: workers, now: time.Now}
}

// Charts returns the catalogue the builder was created with.
func (b *Builder) Charts() []catalog.Chart { return b.charts }

func (b *Builder) Build(ctx context.Context, book sheet.Book) (Factsheet, error) {
	out := make([]ChartPayload, len(b.charts))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(b.workers)
	for i, chart := range b.charts {
		i, chart := i, chart
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			payload, err := b.BuildChart(book, chart)
			if err != nil {
				return fmt.Errorf("chart %s: %w", chart.ID, err)
			}
			out[i] = payload
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Factsheet{}, err
	}
	return Factsheet{Charts: out, Fallback: book.Fallback, GeneratedAt: b.now().UTC()}, nil
}

// BuildChart normalizes the chart's sheet. A missing sheet is logged and
// treated as empty.
func (b *Builder) BuildChart(book sheet.Book, chart catalog.Chart) (ChartPayload, error) {
	tagged, found := book.Sheet(chart.Sheet)
	if !found {
		logger.Warnf("sheet %q missing for chart %s; treating as empty", chart.Sheet, chart.ID)
	} else if tagged.Shape != chart.Shape {
		return ChartPayload{}, fmt.Errorf("sheet %q loaded as %s, chart expects %s", chart.Sheet, tagged.Shape, chart.Shape)
	}
	n, err := normalize.For(chart.Shape, b.params(chart))
	if err != nil {
		return ChartPayload{}, err
	}
	res := normalize.Run(n, tagged.Sheet)
	style := format.Style{Prefix: chart.Prefix, Unit: chart.Unit, Grouped: chart.Grouped}
	payload := ChartPayload{
		ID:              chart.ID,
		Title:           chart.Title,
		Sheet:           chart.Sheet,
		Shape:           chart.Shape.String(),
		Kind:            chart.Kind,
		DetailedKind:    chart.DetailedKind,
		Prefix:          chart.Prefix,
		Unit:            chart.Unit,
		YearAxis:        res.Axis,
		Focused:         res.Focused,
		Detailed:        res.Detailed,
		Highlight:       res.Highlight,
		HighlightSeries: b.highlightSeries(chart),
		HighlightLabel:  style.Value(res.Highlight.Value),
		DetailSubtitle:  chart.DetailSubtitle(),
		Estimate:        style.Estimate(res.Highlight.Year, res.Highlight.Value, res.Highlight.Found),
		SheetFound:      found,
	}
	logger.Debugf("chart %s: %d years, %d focused series, highlight=%q", chart.ID, len(res.Axis), len(res.Focused.Series), res.Highlight.Year)
	return payload, nil
}

func (b *Builder) params(chart catalog.Chart) normalize.Params {
	priority := chart.Priority
	if len(priority) == 0 {
		priority = b.opts.PriorityYears
	}
	p := normalize.Params{
		Focus:          b.opts.FocusKey,
		Compare:        b.opts.Countries,
		Fallback:       b.opts.Fallback(chart.Policy),
		Priority:       priority,
		Fields:         chart.Fields,
		HighlightField: chart.HighlightField,
		Anchor:         chart.Anchor,
		Categories:     chart.Categories,
		HighlightKey:   chart.HighlightKey,
	}
	if chart.Snapshot {
		p.SnapshotName = chart.Title
	}
	return p
}

func (b *Builder) highlightSeries(chart catalog.Chart) string {
	switch chart.Shape {
	case sheet.ShapeSubfieldKeyed:
		if chart.HighlightField != "" {
			return chart.HighlightField
		}
		if len(chart.Fields) > 0 {
			return chart.Fields[0]
		}
		return ""
	case sheet.ShapeCategoryKeyed:
		if chart.HighlightKey != "" {
			return chart.HighlightKey
		}
		return chart.Anchor
	default:
		return b.opts.FocusKey
	}
}

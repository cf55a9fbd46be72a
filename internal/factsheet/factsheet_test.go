package factsheet

import (
	"context"
	"errors"
	"testing"

	"factsheet/internal/catalog"
	"factsheet/internal/format"
	"factsheet/internal/normalize"
	"factsheet/internal/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "sheets": {
    "Nominal GDP": {
      "India": {"2023": 3000, "2024": 3300, "2025": 4187.4},
      "China": {"2024": 18000},
      "United States": {"2025": 30000}
    },
    "Real GDP Growth (%)": {"India": {"2024": 6.5}},
    "Population": {
      "India": {"2020": 1380, "2024": 1440, "2025": 1450},
      "China": {"2024": 1410}
    },
    "Merchandise Trade Statistics": {
      "2023-24": {"Exports": 437, "Imports": 678, "Surplus/Deficit": -241},
      "2024-25": {"Exports": 437, "Imports": 720, "Surplus/Deficit": -283}
    },
    "Share of A,I,S in GDP": {
      "Agriculture": {"2023": 17, "2024": 16},
      "Industry": {"2023": 28, "2024": 28},
      "Services": {"2023": 55, "2024": 56}
    },
    "Annual Returns of Major Indices": {
      "SENSEX": {"2023": 72240, "2024": 78139},
      "NIFTY 50": {"2023": 21731, "2024": 23645}
    }
  }
}`

func sampleBook(t *testing.T) sheet.Book {
	t.Helper()
	book, err := sheet.Decode([]byte(samplePayload), catalog.Shapes(catalog.Default()))
	require.NoError(t, err)
	return book
}

func newTestBuilder() *Builder {
	return NewBuilder(catalog.Default(), normalize.DefaultOptions(), 3)
}

func TestBuildAllCharts(t *testing.T) {
	fs, err := newTestBuilder().Build(context.Background(), sampleBook(t))
	require.NoError(t, err)
	require.Len(t, fs.Charts, 11)
	assert.False(t, fs.Fallback)

	for i, c := range catalog.Default() {
		assert.Equal(t, c.ID, fs.Charts[i].ID, "order follows catalogue")
		assert.True(t, fs.Charts[i].Focused.Aligned(), c.ID)
		assert.True(t, fs.Charts[i].Detailed.Aligned(), c.ID)
	}

	gdp, ok := fs.Chart("nominal-gdp")
	require.True(t, ok)
	assert.Equal(t, normalize.YearAxis{"2023", "2024", "2025"}, gdp.YearAxis)
	assert.Equal(t, "2025", gdp.Highlight.Year)
	assert.Equal(t, "$4,187 Bn 2025 Estimate", gdp.Estimate)
	assert.Equal(t, "India", gdp.HighlightSeries)
	assert.Len(t, gdp.Detailed.Series, 5)
	assert.Equal(t, sheet.Num(18000), gdp.Detailed.Series[1].Data[1])

	growth, _ := fs.Chart("real-gdp-growth")
	assert.Equal(t, normalize.YearAxis{"2021", "2024"}, growth.YearAxis)
	assert.Equal(t, "6.50% 2024 Estimate", growth.Estimate)

	pop, _ := fs.Chart("population")
	assert.Equal(t, []string{"India", "China", "United States", "Brazil", "Japan"}, pop.Detailed.Axis)
	assert.Equal(t, catalog.KindBar, pop.DetailedKind)

	trade, _ := fs.Chart("merchandise-trade")
	assert.Equal(t, normalize.YearAxis{"2023-24", "2024-25"}, trade.YearAxis)
	assert.Equal(t, "2024-25", trade.Highlight.Year)
	assert.Equal(t, "437.00B 2024-25 Estimate", trade.Estimate)
	assert.Equal(t, "Exports", trade.HighlightSeries)
	assert.Equal(t, "Exports, Imports, Surplus/Deficit", trade.DetailSubtitle)
	assert.Equal(t, "All countries", gdp.DetailSubtitle)

	share, _ := fs.Chart("sector-share")
	assert.Equal(t, "56.00% 2024 Estimate", share.Estimate)

	indices, _ := fs.Chart("annual-returns")
	require.Len(t, indices.Focused.Series, 2)
	assert.Equal(t, "NIFTY 50", indices.Focused.Series[1].Name)

	bonds, _ := fs.Chart("government-bond")
	assert.False(t, bonds.SheetFound)
	assert.Equal(t, format.DataNotAvailable, bonds.Estimate)
	assert.Equal(t, format.NotAvailable, bonds.HighlightLabel)
	assert.Equal(t, normalize.YearAxis{"2021", "2022"}, bonds.YearAxis)
}

func TestBuildFallbackBook(t *testing.T) {
	charts := catalog.Default()
	book := sheet.Empty(catalog.SheetNames(charts), catalog.Shapes(charts))
	fs, err := newTestBuilder().Build(context.Background(), book)
	require.NoError(t, err)
	assert.True(t, fs.Fallback)
	for _, c := range fs.Charts {
		assert.True(t, c.SheetFound, c.ID)
		assert.False(t, c.Highlight.Found, c.ID)
		assert.Equal(t, format.DataNotAvailable, c.Estimate, c.ID)
		assert.True(t, c.Focused.Empty(), c.ID)
	}
	gdp, _ := fs.Chart("nominal-gdp")
	assert.Equal(t, normalize.YearAxis{"2000", "2005"}, gdp.YearAxis)
	trade, _ := fs.Chart("merchandise-trade")
	assert.Empty(t, trade.YearAxis)
}

func TestBuildRejectsShapeMismatch(t *testing.T) {
	book := sheet.NewBook(sheet.Tagged{Name: catalog.SheetMerchandise, Shape: sheet.ShapeCountryKeyed})
	chart, err := catalog.Find(catalog.Default(), "merchandise-trade")
	require.NoError(t, err)
	_, err = newTestBuilder().BuildChart(book, chart)
	assert.Error(t, err)
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestBuilder().Build(ctx, sampleBook(t))
	assert.ErrorIs(t, err, context.Canceled)
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) LoadBook(ctx context.Context) FetchResult {
	args := m.Called(ctx)
	return args.Get(0).(FetchResult)
}

func TestServiceLoad(t *testing.T) {
	src := new(mockSource)
	charts := catalog.Default()
	fallback := sheet.Empty(catalog.SheetNames(charts), catalog.Shapes(charts))
	src.On("LoadBook", mock.Anything).Return(FetchResult{Book: fallback, Err: errors.New("status 503")}).Once()
	src.On("LoadBook", mock.Anything).Return(FetchResult{Book: sampleBook(t)})

	svc, err := NewService(src, newTestBuilder())
	require.NoError(t, err)

	fs, err := svc.Load(context.Background())
	require.NoError(t, err, "fetch failure is not fatal")
	assert.True(t, fs.Fallback)

	payload, err := svc.Chart(context.Background(), "nominal-gdp")
	require.NoError(t, err)
	assert.Equal(t, "2025", payload.Highlight.Year)

	_, err = svc.Chart(context.Background(), "nope")
	assert.ErrorIs(t, err, catalog.ErrUnknownChart)

	src.AssertNumberOfCalls(t, "LoadBook", 2)
}

func TestServiceSetOptions(t *testing.T) {
	src := new(mockSource)
	src.On("LoadBook", mock.Anything).Return(FetchResult{Book: sampleBook(t)})
	svc, err := NewService(src, newTestBuilder())
	require.NoError(t, err)

	opts := normalize.DefaultOptions()
	opts.PriorityYears = []string{"2024", "2025"}
	svc.SetOptions(opts, 2)

	payload, err := svc.Chart(context.Background(), "nominal-gdp")
	require.NoError(t, err)
	assert.Equal(t, "2024", payload.Highlight.Year)
	assert.Equal(t, "$3,300 Bn 2024 Estimate", payload.Estimate)
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(nil, newTestBuilder())
	assert.Error(t, err)
	_, err = NewService(new(mockSource), nil)
	assert.Error(t, err)
}

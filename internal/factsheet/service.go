package factsheet

import (
	"context"
	"errors"
	"sync"

	"factsheet/internal/catalog"
	"factsheet/internal/logger"
	"factsheet/internal/normalize"
	"factsheet/internal/sheet"
)

// FetchResult is the outcome of one page-load fetch. Book is always usable:
// on failure it is the empty fallback and Err says why.
type FetchResult struct {
	Book sheet.Book
	Err  error
}

// BookSource fetches the raw sheets.
type BookSource interface {
	LoadBook(ctx context.Context) FetchResult
}

// Service runs fetch → normalize for each request. Options can be swapped at
// runtime (config reload) without disturbing builds in flight.
type Service struct {
	source BookSource

	mu      sync.RWMutex
	builder *Builder
}

func NewService(source BookSource, builder *Builder) (*Service, error) {
	if source == nil {
		return nil, errors.New("factsheet: nil book source")
	}
	if builder == nil {
		return nil, errors.New("factsheet: nil builder")
	}
	return &Service{source: source, builder: builder}, nil
}

// Load performs one fetch and builds every chart.
func (s *Service) Load(ctx context.Context) (Factsheet, error) {
	res := s.source.LoadBook(ctx)
	if res.Err != nil {
		logger.Warnf("factsheet fetch failed, rendering empty charts: %v", res.Err)
	}
	return s.currentBuilder().Build(ctx, res.Book)
}

// Chart loads and returns a single chart payload.
func (s *Service) Chart(ctx context.Context, id string) (ChartPayload, error) {
	if _, err := catalog.Find(s.currentBuilder().Charts(), id); err != nil {
		return ChartPayload{}, err
	}
	fs, err := s.Load(ctx)
	if err != nil {
		return ChartPayload{}, err
	}
	payload, _ := fs.Chart(id)
	return payload, nil
}

// SetOptions replaces the normalization options for subsequent loads.
func (s *Service) SetOptions(opts normalize.Options, workers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder = NewBuilder(s.builder.Charts(), opts, workers)
	logger.Infof("normalize options updated: focus=%s priority=%v", opts.FocusKey, opts.PriorityYears)
}

func (s *Service) currentBuilder() *Builder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builder
}

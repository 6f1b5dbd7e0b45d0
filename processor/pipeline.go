package processor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"go-landwatch/analysis"
	"go-landwatch/cache"
	"go-landwatch/db"
	"go-landwatch/federalregister"
	"go-landwatch/geocode"
	"go-landwatch/nlp"
	"go-landwatch/observability"
	"go-landwatch/types"
)

const (
	ModeRecent      = "recent"
	ModeSignificant = "significant"
	ModeTopImpact   = "top_impact"

	DefaultQuery          = "public land transfer"
	DefaultTopImpactQuery = "land disposal"

	pageSize       = 5
	topImpactFetch = 20
	topImpactKeep  = 10
)

// ErrUpstream is returned when the Federal Register could not be queried.
var ErrUpstream = errors.New("federal register unavailable")

// Registry is the part of the Federal Register client the pipeline needs.
type Registry interface {
	SearchDocuments(ctx context.Context, p federalregister.SearchParams) (*types.DocumentsResponse, error)
}

// SearchRequest is one /api/search call. Fresh skips the cache lookup but
// still stores the result.
type SearchRequest struct {
	Query string
	Mode  string
	Page  int
	Fresh bool
}

// Deps wires the pipeline. Locator, Geocoder, Store and Cache may be nil.
type Deps struct {
	Registry Registry
	Analyzer analysis.Analyzer
	Locator  nlp.Locator
	Geocoder geocode.Geocoder
	Store    db.Store
	Cache    cache.ResponseCache
	Metrics  *observability.Metrics
}

// Pipeline turns a search query into analysed, geocoded policy events.
type Pipeline struct {
	registry Registry
	analyzer analysis.Analyzer
	locator  nlp.Locator
	geocoder geocode.Geocoder
	store    db.Store
	cache    cache.ResponseCache
	metrics  *observability.Metrics
}

func NewPipeline(d Deps) *Pipeline {
	p := &Pipeline{
		registry: d.Registry,
		analyzer: d.Analyzer,
		locator:  d.Locator,
		geocoder: d.Geocoder,
		store:    d.Store,
		cache:    d.Cache,
		metrics:  d.Metrics,
	}
	if p.store == nil {
		p.store = db.NopStore{}
	}
	if p.metrics == nil {
		p.metrics = observability.NewMetrics(nil)
	}
	return p
}

// NormalizeMode maps unknown modes to recent.
func NormalizeMode(mode string) string {
	switch m := strings.ToLower(strings.TrimSpace(mode)); m {
	case ModeSignificant, ModeTopImpact:
		return m
	}
	return ModeRecent
}

func (r SearchRequest) normalize() SearchRequest {
	r.Mode = NormalizeMode(r.Mode)
	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		r.Query = DefaultQuery
		if r.Mode == ModeTopImpact {
			r.Query = DefaultTopImpactQuery
		}
	}
	if r.Page < 1 || r.Mode == ModeTopImpact {
		r.Page = 1
	}
	return r
}

// CacheSize reports the number of cached responses, 0 without a cache.
func (p *Pipeline) CacheSize(ctx context.Context) int {
	if p.cache == nil {
		return 0
	}
	n, err := p.cache.Len(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cache size")
		return 0
	}
	return n
}

// Search returns the events for one page of results in upstream order, or the
// top impact events for ModeTopImpact.
func (p *Pipeline) Search(ctx context.Context, req SearchRequest) ([]types.PolicyEvent, error) {
	req = req.normalize()
	start := time.Now()
	defer func() {
		p.metrics.SearchDuration.WithLabelValues(req.Mode).Observe(time.Since(start).Seconds())
	}()

	key := cache.Key(req.Mode, req.Page, req.Query)
	if p.cache != nil && !req.Fresh {
		events, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		}
		if ok {
			p.metrics.CacheLookups.WithLabelValues("hit").Inc()
			p.metrics.Searches.WithLabelValues(req.Mode, "cached").Inc()
			return events, nil
		}
		p.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	params := federalregister.SearchParams{
		Query:       req.Query,
		PerPage:     pageSize,
		Page:        req.Page,
		Significant: req.Mode == ModeSignificant,
	}
	if req.Mode == ModeTopImpact {
		params.PerPage = topImpactFetch
	}

	resp, err := p.registry.SearchDocuments(ctx, params)
	if err != nil {
		p.metrics.Searches.WithLabelValues(req.Mode, "error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	events := p.processAll(ctx, resp.Results)
	if req.Mode == ModeTopImpact {
		events = TopImpact(events, topImpactKeep)
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, events); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache store failed")
		}
	}
	p.metrics.Searches.WithLabelValues(req.Mode, "ok").Inc()
	log.Info().Str("mode", req.Mode).Str("query", req.Query).Int("page", req.Page).Int("events", len(events)).Msg("search complete")
	return events, nil
}

// processAll analyses every document concurrently and keeps upstream order.
func (p *Pipeline) processAll(ctx context.Context, docs []types.Document) []types.PolicyEvent {
	events := make([]types.PolicyEvent, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc types.Document) {
			defer wg.Done()
			events[i] = p.processDocument(ctx, doc)
		}(i, doc)
	}
	wg.Wait()

	return events
}

// TopImpact sorts high > medium > low > anything else, keeping upstream order
// within a level, and returns at most n events.
func TopImpact(events []types.PolicyEvent, n int) []types.PolicyEvent {
	sorted := make([]types.PolicyEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return impactRank(sorted[i]) > impactRank(sorted[j])
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func impactRank(e types.PolicyEvent) int {
	return types.Impact(strings.ToLower(strings.TrimSpace(e.Impact))).Rank()
}

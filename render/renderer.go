package render

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go-landwatch/types"
)

const DefaultMode = "recent"

// Renderer turns search results into sidebar entries and map markers.
type Renderer struct {
	client  SearchClient
	mapView MapWidget
	sidebar Sidebar
	styles  Styles

	mu         sync.Mutex
	generation uint64
	state      *State
}

func New(client SearchClient, mapView MapWidget, sidebar Sidebar, styles Styles) *Renderer {
	return &Renderer{
		client:  client,
		mapView: mapView,
		sidebar: sidebar,
		styles:  styles,
		state:   &State{},
	}
}

// State returns the state of the most recent search.
func (r *Renderer) State() *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Search runs one search and renders its outcome. Failures end up as sidebar
// messages, never as errors or panics.
func (r *Renderer) Search(ctx context.Context, query, mode string) {
	if mode == "" {
		mode = DefaultMode
	}

	var state *State
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("query", query).Msg("render: recovered from panic")
			r.mu.Lock()
			defer r.mu.Unlock()
			if state != nil && state.Generation != r.generation {
				return
			}
			r.sidebar.ShowMessage(MsgLoadError)
		}
	}()

	state = r.begin(query, mode)

	events, err := r.client.Search(ctx, query, mode)
	r.finish(state, events, err)
}

// begin drops everything the previous search drew and installs a fresh state.
func (r *Renderer) begin(query, mode string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.state.Markers {
		r.mapView.RemoveMarker(m)
	}
	r.sidebar.Clear()

	r.generation++
	r.state = &State{
		ID:         uuid.NewString(),
		Generation: r.generation,
		Query:      query,
		Mode:       mode,
	}
	r.sidebar.ShowMessage(MsgLoading)
	return r.state
}

func (r *Renderer) finish(state *State, events []types.PolicyEvent, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state.Generation != r.generation {
		log.Warn().
			Str("query", state.Query).
			Uint64("generation", state.Generation).
			Uint64("current", r.generation).
			Msg("render: dropping stale search response")
		return
	}

	switch {
	case err == nil:
		r.populate(state, events)
	case errors.Is(err, ErrTransport):
		log.Error().Err(err).Str("query", state.Query).Str("mode", state.Mode).Msg("render: search request failed")
		r.sidebar.ShowMessage(MsgConnection)
	default:
		log.Warn().Err(err).Str("query", state.Query).Str("mode", state.Mode).Msg("render: bad search response")
		r.sidebar.ShowMessage(MsgLoadError)
	}
}

func (r *Renderer) populate(state *State, events []types.PolicyEvent) {
	r.sidebar.Clear()

	for i, ev := range events {
		entry, markers := r.build(i, ev)

		state.Entries = append(state.Entries, entry)
		r.sidebar.Append(entry)

		for _, m := range markers {
			r.mapView.AddMarker(m)
			state.Markers = append(state.Markers, m)
		}
	}

	log.Debug().
		Str("query", state.Query).
		Int("entries", len(state.Entries)).
		Int("markers", len(state.Markers)).
		Msg("render: search rendered")
}

// build creates the sidebar entry and the markers of one event and wires the
// entry's click action to the first marker.
func (r *Renderer) build(index int, ev types.PolicyEvent) (*Entry, []*Marker) {
	impact := types.NormalizeImpact(ev.Impact)
	category := types.NormalizeCategory(ev.Category)
	effect := types.NormalizeEffect(ev.EnvironmentEffect)
	effectLabel, effectClass := effectBadge(effect)

	entry := &Entry{
		Index:           index,
		Category:        category,
		CategoryLabel:   category.Label(),
		Effect:          effect,
		EffectLabel:     effectLabel,
		EffectClass:     effectClass,
		Title:           ev.Title,
		PublicationDate: ev.PublicationDate,
		Impact:          impact,
		ImpactLabel:     impactLabel(impact),
	}
	entry.HTML = execute(entryTemplate, entry)

	popup := execute(popupTemplate, popupData{
		Impact:      impact,
		ImpactLabel: entry.ImpactLabel,
		EffectClass: effectClass,
		EffectLabel: effectLabel,
		Title:       ev.Title,
		Summary:     ev.Summary,
		URL:         ev.FederalRegisterURL,
	})

	markers := make([]*Marker, 0, len(ev.Coordinates))
	for j, c := range ev.Coordinates {
		markers = append(markers, &Marker{
			ID:          fmt.Sprintf("m%d-%d", index, j),
			Entry:       index,
			Lat:         c.Lat,
			Lng:         c.Lng,
			Label:       c.Label,
			Radius:      r.styles.MarkerRadius(impact),
			FillColor:   r.styles.MarkerColor(category),
			Color:       r.styles.StrokeColor,
			Weight:      r.styles.StrokeWeight,
			FillOpacity: r.styles.MarkerOpacity(impact),
			Popup:       popup,
		})
	}

	if len(markers) > 0 {
		target := markers[0]
		entry.Target = target
		entry.Focus = Focus{Lat: target.Lat, Lng: target.Lng, Zoom: r.styles.FocusZoom, MarkerID: target.ID}
		entry.onClick = func() {
			r.mapView.SetView(target.Position(), r.styles.FocusZoom)
			r.mapView.OpenPopup(target)
		}
	} else {
		center := r.styles.DefaultCenter
		entry.Focus = Focus{Lat: center.Lat, Lng: center.Lng, Zoom: r.styles.DefaultZoom}
		entry.onClick = func() {
			r.mapView.SetView(center, r.styles.DefaultZoom)
		}
	}

	return entry, markers
}

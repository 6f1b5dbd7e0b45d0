package render

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-landwatch/types"
)

type fakeClient struct {
	mu     sync.Mutex
	events []types.PolicyEvent
	err    error
	during func()
	calls  []string
}

func (f *fakeClient) Search(_ context.Context, query, mode string) ([]types.PolicyEvent, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query+"|"+mode)
	during := f.during
	f.mu.Unlock()
	if during != nil {
		during()
	}
	return f.events, f.err
}

func newTestRenderer(client SearchClient) (*Renderer, *Scene) {
	styles := DefaultStyles()
	scene := NewScene(styles)
	return New(client, scene, scene, styles), scene
}

func coords(n int) []types.Coordinate {
	out := make([]types.Coordinate, n)
	for i := range out {
		out[i] = types.Coordinate{Lat: 30 + float64(i), Lng: -110 + float64(i), Label: fmt.Sprintf("loc%d", i)}
	}
	return out
}

func TestSearch_TimberExample(t *testing.T) {
	client := &fakeClient{events: []types.PolicyEvent{{
		Title:           "Sale A",
		Category:        "logging",
		Impact:          "high",
		Coordinates:     []types.Coordinate{{Lat: 40, Lng: -100}},
		PublicationDate: "2024-01-01",
		Summary:         "...",
	}}}
	r, scene := newTestRenderer(client)

	r.Search(context.Background(), "timber", "recent")

	assert.Equal(t, []string{"timber|recent"}, client.calls)

	entries := scene.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, types.Logging, entries[0].Category)
	assert.Equal(t, "logging", entries[0].CategoryLabel)
	assert.Equal(t, "HIGH IMPACT", entries[0].ImpactLabel)
	assert.Contains(t, string(entries[0].HTML), "Sale A")
	assert.Contains(t, string(entries[0].HTML), "2024-01-01")
	assert.Empty(t, scene.Message())

	markers := scene.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, 15, markers[0].Radius)
	assert.Equal(t, "green", markers[0].FillColor)
	assert.Equal(t, 0.9, markers[0].FillOpacity)
	assert.Equal(t, "#fff", markers[0].Color)
	assert.Equal(t, 2, markers[0].Weight)
	assert.Equal(t, 40.0, markers[0].Lat)
	assert.Equal(t, -100.0, markers[0].Lng)
}

func TestSearch_DefaultMode(t *testing.T) {
	client := &fakeClient{}
	r, _ := newTestRenderer(client)

	r.Search(context.Background(), "", "")

	assert.Equal(t, []string{"|recent"}, client.calls)
	assert.Equal(t, "recent", r.State().Mode)
}

func TestSearch_ShowsLoadingWhileWaiting(t *testing.T) {
	client := &fakeClient{}
	r, scene := newTestRenderer(client)

	var during string
	client.during = func() { during = scene.Message() }

	r.Search(context.Background(), "mining", "recent")

	assert.Equal(t, MsgLoading, during)
	assert.Empty(t, scene.Message())
}

func TestSearch_EventWithoutCoordinates(t *testing.T) {
	client := &fakeClient{events: []types.PolicyEvent{{Title: "Nowhere", Impact: "medium"}}}
	r, scene := newTestRenderer(client)
	r.Search(context.Background(), "q", "recent")

	assert.Empty(t, scene.Markers())
	entries := scene.Entries()
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Target)

	scene.SetView(types.Coordinate{Lat: 1, Lng: 2}, 9)
	entries[0].Click()

	center, zoom := scene.View()
	assert.Equal(t, types.USCenter, center)
	assert.Equal(t, 4, zoom)
	assert.Empty(t, scene.OpenPopupID())
}

func TestSearch_MarkerPerCoordinate(t *testing.T) {
	client := &fakeClient{events: []types.PolicyEvent{
		{Title: "Multi", Impact: "low", Category: "mining", Coordinates: coords(3)},
		{Title: "Single", Impact: "medium", Category: "land_transfer", Coordinates: coords(1)},
	}}
	r, scene := newTestRenderer(client)
	r.Search(context.Background(), "q", "recent")

	entries := scene.Entries()
	require.Len(t, entries, 2)
	markers := scene.Markers()
	require.Len(t, markers, 4)

	var multi []*Marker
	for _, m := range markers {
		if m.Entry == 0 {
			multi = append(multi, m)
		}
	}
	require.Len(t, multi, 3)
	assert.Same(t, multi[0], entries[0].Target)
	assert.Equal(t, multi[0].ID, entries[0].Focus.MarkerID)

	entries[0].Click()
	center, zoom := scene.View()
	assert.Equal(t, multi[0].Lat, center.Lat)
	assert.Equal(t, multi[0].Lng, center.Lng)
	assert.Equal(t, 7, zoom)
	assert.Equal(t, multi[0].ID, scene.OpenPopupID())

	for _, m := range multi {
		assert.Equal(t, 6, m.Radius)
		assert.Equal(t, "orange", m.FillColor)
		assert.Equal(t, 0.6, m.FillOpacity)
	}
	assert.Equal(t, "land transfer", entries[1].CategoryLabel)
}

func TestSearch_UnknownImpactUsesDefaultRadius(t *testing.T) {
	for _, impact := range []string{"unknown", "critical", "HIGHEST"} {
		t.Run(impact, func(t *testing.T) {
			client := &fakeClient{events: []types.PolicyEvent{{Title: "x", Impact: impact, Coordinates: coords(1)}}}
			r, scene := newTestRenderer(client)
			r.Search(context.Background(), "q", "recent")

			markers := scene.Markers()
			require.Len(t, markers, 1)
			assert.Equal(t, 8, markers[0].Radius)
			assert.Equal(t, 0.6, markers[0].FillOpacity)
		})
	}
}

func TestSearch_MissingImpactFallsBackToLow(t *testing.T) {
	client := &fakeClient{events: []types.PolicyEvent{{Title: "x", Coordinates: coords(1)}}}
	r, scene := newTestRenderer(client)
	r.Search(context.Background(), "q", "recent")

	require.Len(t, scene.Markers(), 1)
	assert.Equal(t, 6, scene.Markers()[0].Radius)
	assert.Equal(t, "LOW IMPACT", scene.Entries()[0].ImpactLabel)
	assert.Equal(t, types.OtherCategory, scene.Entries()[0].Category)
}

func TestSearch_UnknownCategoryUsesDefaultColor(t *testing.T) {
	for _, category := range []string{"error", "Water_Rights", "grazing"} {
		t.Run(category, func(t *testing.T) {
			client := &fakeClient{events: []types.PolicyEvent{{Title: "x", Category: category, Impact: "High", Coordinates: coords(2)}}}
			r, scene := newTestRenderer(client)
			r.Search(context.Background(), "q", "recent")

			for _, m := range scene.Markers() {
				assert.Equal(t, "blue", m.FillColor)
			}
			entries := scene.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, strings.ReplaceAll(strings.ToLower(category), "_", " "), entries[0].CategoryLabel)
			assert.NotEmpty(t, entries[0].HTML)
		})
	}
}

func TestSearch_EnvironmentEffectBadge(t *testing.T) {
	client := &fakeClient{events: []types.PolicyEvent{
		{Title: "a", EnvironmentEffect: "Beneficial"},
		{Title: "b", EnvironmentEffect: "detrimental"},
		{Title: "c"},
	}}
	r, scene := newTestRenderer(client)
	r.Search(context.Background(), "q", "recent")

	entries := scene.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "env-beneficial", entries[0].EffectClass)
	assert.Equal(t, "env-detrimental", entries[1].EffectClass)
	assert.Equal(t, "env-neutral", entries[2].EffectClass)
	assert.Equal(t, types.Neutral, entries[2].Effect)
}

func TestSearch_PopupContent(t *testing.T) {
	client := &fakeClient{events: []types.PolicyEvent{
		{Title: "<b>Lease</b>", Summary: "Drilling & more", Impact: "high", FederalRegisterURL: "https://www.federalregister.gov/d/2024-1", Coordinates: coords(1)},
		{Title: "No link", Coordinates: coords(1)},
	}}
	r, scene := newTestRenderer(client)
	r.Search(context.Background(), "q", "recent")

	markers := scene.Markers()
	require.Len(t, markers, 2)

	popup := string(markers[0].Popup)
	assert.Contains(t, popup, "HIGH IMPACT")
	assert.Contains(t, popup, "&lt;b&gt;Lease&lt;/b&gt;")
	assert.Contains(t, popup, "Drilling &amp; more")
	assert.Contains(t, popup, `href="https://www.federalregister.gov/d/2024-1"`)
	assert.Contains(t, popup, "View Document")

	assert.NotContains(t, string(markers[1].Popup), "View Document")
	assert.NotContains(t, string(scene.Entries()[0].HTML), "<b>")
}

func TestSearch_BadResponse(t *testing.T) {
	client := &fakeClient{events: []types.PolicyEvent{{Title: "old", Coordinates: coords(2)}}}
	r, scene := newTestRenderer(client)
	r.Search(context.Background(), "q", "recent")
	require.Len(t, scene.Markers(), 2)

	client.events = nil
	client.err = fmt.Errorf("%w: status 500", ErrBadResponse)
	r.Search(context.Background(), "q", "recent")

	assert.Equal(t, MsgLoadError, scene.Message())
	assert.Empty(t, scene.Entries())
	assert.Empty(t, scene.Markers())
	assert.Empty(t, r.State().Markers)
}

func TestSearch_TransportError(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("%w: dial tcp: refused", ErrTransport)}
	r, scene := newTestRenderer(client)
	r.Search(context.Background(), "q", "recent")

	assert.Equal(t, MsgConnection, scene.Message())
	assert.Empty(t, scene.Markers())
}

func TestSearch_ReplacesPreviousMarkers(t *testing.T) {
	client := &fakeClient{events: []types.PolicyEvent{
		{Title: "a", Coordinates: coords(3)},
		{Title: "b", Coordinates: coords(2)},
	}}
	r, scene := newTestRenderer(client)
	r.Search(context.Background(), "first", "recent")
	require.Len(t, scene.Markers(), 5)
	first := r.State()

	client.events = []types.PolicyEvent{{Title: "c", Coordinates: coords(1)}}
	r.Search(context.Background(), "second", "recent")

	assert.Len(t, scene.Markers(), 1)
	assert.Len(t, scene.Entries(), 1)
	assert.NotSame(t, first, r.State())
	assert.NotEqual(t, first.ID, r.State().ID)
	assert.Len(t, first.Markers, 5)
}

type blockingClient struct {
	started chan struct{}
	release chan struct{}
	slow    []types.PolicyEvent
	fast    []types.PolicyEvent
}

func (b *blockingClient) Search(_ context.Context, query, _ string) ([]types.PolicyEvent, error) {
	if query == "slow" {
		close(b.started)
		<-b.release
		return b.slow, nil
	}
	return b.fast, nil
}

func TestSearch_StaleResponseIsDropped(t *testing.T) {
	client := &blockingClient{
		started: make(chan struct{}),
		release: make(chan struct{}),
		slow:    []types.PolicyEvent{{Title: "slow", Coordinates: coords(4)}},
		fast:    []types.PolicyEvent{{Title: "fast", Coordinates: coords(1)}},
	}
	r, scene := newTestRenderer(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Search(context.Background(), "slow", "recent")
	}()

	<-client.started
	r.Search(context.Background(), "fast", "recent")
	close(client.release)
	wg.Wait()

	entries := scene.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "fast", entries[0].Title)
	assert.Len(t, scene.Markers(), 1)
	assert.Equal(t, "fast", r.State().Query)
}

type panickingSidebar struct {
	*Scene
}

func (p panickingSidebar) Append(*Entry) {
	panic("boom")
}

func TestSearch_RecoversFromPanics(t *testing.T) {
	styles := DefaultStyles()
	scene := NewScene(styles)
	client := &fakeClient{events: []types.PolicyEvent{{Title: "x"}}}
	r := New(client, scene, panickingSidebar{scene}, styles)

	assert.NotPanics(t, func() {
		r.Search(context.Background(), "q", "recent")
	})
	assert.Equal(t, MsgLoadError, scene.Message())
}

type panickingClient struct {
	started chan struct{}
	release chan struct{}
	fast    []types.PolicyEvent
}

func (p *panickingClient) Search(_ context.Context, query, _ string) ([]types.PolicyEvent, error) {
	if query == "slow" {
		close(p.started)
		<-p.release
		panic("decoder exploded")
	}
	return p.fast, nil
}

func TestSearch_StalePanicKeepsNewerResults(t *testing.T) {
	client := &panickingClient{
		started: make(chan struct{}),
		release: make(chan struct{}),
		fast:    []types.PolicyEvent{{Title: "fast", Coordinates: coords(1)}},
	}
	r, scene := newTestRenderer(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.Search(context.Background(), "slow", "recent")
	}()

	<-client.started
	r.Search(context.Background(), "fast", "recent")
	close(client.release)
	wg.Wait()

	assert.Empty(t, scene.Message())
	entries := scene.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "fast", entries[0].Title)
}

package render

import (
	"sync"

	"go-landwatch/types"
)

// Scene is an in-memory map and sidebar. The page handler renders it to HTML
// and the JSON API serves its snapshot.
type Scene struct {
	mu sync.Mutex

	markers   []*Marker
	center    types.Coordinate
	zoom      int
	openPopup string

	message string
	entries []*Entry
}

// SceneSnapshot is a point-in-time copy of a Scene.
type SceneSnapshot struct {
	Center    types.Coordinate `json:"center"`
	Zoom      int              `json:"zoom"`
	OpenPopup string           `json:"open_popup,omitempty"`
	Message   string           `json:"message,omitempty"`
	Entries   []*Entry         `json:"entries"`
	Markers   []*Marker        `json:"markers"`
}

func NewScene(styles Styles) *Scene {
	return &Scene{
		center: styles.DefaultCenter,
		zoom:   styles.DefaultZoom,
	}
}

func (s *Scene) AddMarker(m *Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = append(s.markers, m)
}

func (s *Scene) RemoveMarker(m *Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.markers {
		if existing == m {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			break
		}
	}
	if s.openPopup == m.ID {
		s.openPopup = ""
	}
}

func (s *Scene) SetView(center types.Coordinate, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = center
	s.zoom = zoom
}

func (s *Scene) OpenPopup(m *Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openPopup = m.ID
}

func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = ""
	s.entries = nil
}

func (s *Scene) ShowMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
	s.entries = nil
}

func (s *Scene) Append(e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *Scene) Markers() []*Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Marker(nil), s.markers...)
}

func (s *Scene) Entries() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Entry(nil), s.entries...)
}

func (s *Scene) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Scene) View() (types.Coordinate, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center, s.zoom
}

func (s *Scene) OpenPopupID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openPopup
}

func (s *Scene) Snapshot() SceneSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := SceneSnapshot{
		Center:    s.center,
		Zoom:      s.zoom,
		OpenPopup: s.openPopup,
		Message:   s.message,
		Entries:   append([]*Entry{}, s.entries...),
		Markers:   append([]*Marker{}, s.markers...),
	}
	return snap
}

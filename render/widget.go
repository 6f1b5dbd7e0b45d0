package render

import "go-landwatch/types"

// MapWidget is the map surface markers are drawn on.
type MapWidget interface {
	AddMarker(m *Marker)
	RemoveMarker(m *Marker)
	SetView(center types.Coordinate, zoom int)
	OpenPopup(m *Marker)
}

// Sidebar is the result list next to the map.
type Sidebar interface {
	// Clear removes every entry and message.
	Clear()
	// ShowMessage replaces the sidebar content with a single message.
	ShowMessage(msg string)
	Append(e *Entry)
}

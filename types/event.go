package types

// Coordinate is one geocoded point of a policy event.
type Coordinate struct {
	Lat   float64 `json:"lat" firestore:"lat"`
	Lng   float64 `json:"lng" firestore:"lng"`
	Label string  `json:"label,omitempty" firestore:"label"`
}

// PolicyEvent is a single analysed Federal Register document as served by /api/search.
type PolicyEvent struct {
	DocumentNumber     string       `json:"document_number" firestore:"documentNumber"`
	Title              string       `json:"title" firestore:"title"`
	Summary            string       `json:"summary" firestore:"summary"`
	Category           string       `json:"category" firestore:"category"`
	Impact             string       `json:"impact" firestore:"impact"`
	ImpactScore        int          `json:"impact_score" firestore:"impactScore"`
	EnvironmentEffect  string       `json:"environment_effect,omitempty" firestore:"environmentEffect"`
	PublicationDate    string       `json:"publication_date" firestore:"publicationDate"`
	Locations          []string     `json:"locations" firestore:"locations"`
	Coordinates        []Coordinate `json:"coordinates" firestore:"coordinates"`
	FederalRegisterURL string       `json:"federal_register_url,omitempty" firestore:"federalRegisterUrl"`
}

// Bounds is a lat/lng bounding box.
type Bounds struct {
	South float64 `json:"south" yaml:"south"`
	West  float64 `json:"west" yaml:"west"`
	North float64 `json:"north" yaml:"north"`
	East  float64 `json:"east" yaml:"east"`
}

// USCenter is the geographic center of the contiguous United States.
var USCenter = Coordinate{Lat: 39.8283, Lng: -98.5795}

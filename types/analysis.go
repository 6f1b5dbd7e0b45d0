package types

// Analysis is the structured data extracted from a document title and abstract.
type Analysis struct {
	Locations         []string `json:"locations"`
	Category          string   `json:"category"`
	Summary           string   `json:"summary"`
	ImpactLevel       string   `json:"impact_level"`
	ImpactScore       int      `json:"impact_score"`
	EnvironmentEffect string   `json:"environment_effect"`
}

// Entity represents a named entity detected in the text.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

package types

import "strings"

type Category string

const (
	Mining               Category = "mining"
	Logging              Category = "logging"
	LandTransfer         Category = "land_transfer"
	ConservationRollback Category = "conservation_rollback"
	OtherCategory        Category = "other"
)

type Impact string

const (
	High   Impact = "high"
	Medium Impact = "medium"
	Low    Impact = "low"
)

type EnvironmentEffect string

const (
	Beneficial  EnvironmentEffect = "beneficial"
	Detrimental EnvironmentEffect = "detrimental"
	Neutral     EnvironmentEffect = "neutral"
)

// NormalizeCategory lowercases a raw category. Empty input becomes "other";
// unrecognized values are kept so they can still be displayed.
func NormalizeCategory(raw string) Category {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return OtherCategory
	}
	return Category(v)
}

func (c Category) Known() bool {
	switch c {
	case Mining, Logging, LandTransfer, ConservationRollback, OtherCategory:
		return true
	}
	return false
}

// Label is the human readable form, e.g. "land transfer".
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// NormalizeImpact lowercases a raw impact level, defaulting empty input to low.
func NormalizeImpact(raw string) Impact {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Low
	}
	return Impact(v)
}

func (i Impact) Known() bool {
	switch i {
	case High, Medium, Low:
		return true
	}
	return false
}

// Rank orders impacts for sorting: high > medium > low > anything else.
func (i Impact) Rank() int {
	switch i {
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

// NormalizeEffect maps anything that is not beneficial or detrimental to neutral.
func NormalizeEffect(raw string) EnvironmentEffect {
	switch v := EnvironmentEffect(strings.ToLower(strings.TrimSpace(raw))); v {
	case Beneficial, Detrimental:
		return v
	}
	return Neutral
}

package processor

import (
	"context"

	"github.com/rs/zerolog/log"

	"go-landwatch/geocode"
	"go-landwatch/types"
)

// resolveLocations geocodes each location name, checking the store first.
// Names that cannot be geocoded are skipped, so the result may be shorter than
// the input. It is never nil.
func (p *Pipeline) resolveLocations(ctx context.Context, locations []string) []types.Coordinate {
	coords := make([]types.Coordinate, 0, len(locations))
	for _, name := range locations {
		coord, ok := p.resolveLocation(ctx, name)
		if ok {
			coords = append(coords, coord)
		}
	}
	return coords
}

func (p *Pipeline) resolveLocation(ctx context.Context, name string) (types.Coordinate, bool) {
	if coord, ok := geocode.Nationwide(name); ok {
		p.metrics.Geocodes.WithLabelValues("nationwide").Inc()
		return coord, true
	}

	stored, ok, err := p.store.GetLocation(ctx, name)
	if err != nil {
		log.Warn().Err(err).Str("location", name).Msg("stored location lookup failed")
	} else if ok {
		p.metrics.Geocodes.WithLabelValues("stored").Inc()
		stored.Label = name
		return stored, true
	}

	if p.geocoder == nil {
		return types.Coordinate{}, false
	}

	coord, ok, err := p.geocoder.Geocode(ctx, name)
	if err != nil {
		log.Warn().Err(err).Str("location", name).Msg("geocoding failed")
		p.metrics.Geocodes.WithLabelValues("error").Inc()
		return types.Coordinate{}, false
	}
	if !ok {
		p.metrics.Geocodes.WithLabelValues("miss").Inc()
		return types.Coordinate{}, false
	}
	p.metrics.Geocodes.WithLabelValues("hit").Inc()

	if err := p.store.SaveLocation(ctx, name, coord); err != nil {
		log.Warn().Err(err).Str("location", name).Msg("saving location failed")
	}
	coord.Label = name
	return coord, true
}

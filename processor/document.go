package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"go-landwatch/analysis"
	"go-landwatch/types"
)

// processDocument reuses a stored event when there is one, otherwise analyses,
// geocodes and stores the document. It never fails: analysis errors become the
// fallback analysis so the document is still listed.
func (p *Pipeline) processDocument(ctx context.Context, doc types.Document) types.PolicyEvent {
	var logBuilder strings.Builder
	addLog := func(format string, args ...interface{}) {
		logBuilder.WriteString(fmt.Sprintf(format, args...))
		logBuilder.WriteString("\n")
	}
	defer func() { log.Debug().Str("document", doc.DocumentNumber).Msg(logBuilder.String()) }()

	if doc.DocumentNumber != "" {
		stored, ok, err := p.store.GetEvent(ctx, doc.DocumentNumber)
		if err != nil {
			addLog("Error fetching stored event: %v", err)
		} else if ok {
			addLog("Reusing stored event")
			p.metrics.Analyses.WithLabelValues("store").Inc()
			return stored
		}
	}

	result, err := p.analyzer.Analyze(ctx, doc.Title, doc.Abstract)
	analyzed := err == nil
	if err != nil {
		log.Warn().Err(err).Str("document", doc.DocumentNumber).Msg("analysis failed, using fallback")
		addLog("Analysis failed: %v", err)
		result = analysis.Fallback()
		p.metrics.Analyses.WithLabelValues("fallback").Inc()
	} else {
		p.metrics.Analyses.WithLabelValues("model").Inc()
	}
	addLog("Category %s, impact %s (%d), %d locations", result.Category, result.ImpactLevel, result.ImpactScore, len(result.Locations))

	locations := result.Locations
	if len(locations) == 0 && analyzed && p.locator != nil {
		found, err := p.locator.ExtractLocations(ctx, doc.Title+". "+doc.Abstract)
		if err != nil {
			addLog("Entity location fallback failed: %v", err)
		} else {
			addLog("Entity location fallback found %d locations", len(found))
			locations = found
		}
	}
	if locations == nil {
		locations = []string{}
	}

	event := types.PolicyEvent{
		DocumentNumber:     doc.DocumentNumber,
		Title:              doc.Title,
		Summary:            result.Summary,
		Category:           result.Category,
		Impact:             result.ImpactLevel,
		ImpactScore:        result.ImpactScore,
		EnvironmentEffect:  result.EnvironmentEffect,
		PublicationDate:    doc.PublicationDate,
		Locations:          locations,
		Coordinates:        p.resolveLocations(ctx, locations),
		FederalRegisterURL: doc.HTMLURL,
	}
	addLog("Geocoded %d of %d locations", len(event.Coordinates), len(locations))

	// failed analyses are retried on the next search
	if analyzed && doc.DocumentNumber != "" {
		if err := p.store.SaveEvent(ctx, event); err != nil {
			addLog("Error saving event: %v", err)
		}
	}
	return event
}

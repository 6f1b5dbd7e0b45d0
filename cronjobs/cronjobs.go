package cronjobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"go-landwatch/config"
	"go-landwatch/processor"
	"go-landwatch/types"
)

const warmTimeout = 5 * time.Minute

// Searcher is the part of the pipeline the warmer drives.
type Searcher interface {
	Search(ctx context.Context, req processor.SearchRequest) ([]types.PolicyEvent, error)
}

// WarmCache runs a fresh search for every query and mode so the next visitor
// is served from cache. It returns the number of searches that failed.
func WarmCache(ctx context.Context, s Searcher, queries, modes []string) int {
	failed := 0
	for _, q := range queries {
		for _, m := range modes {
			events, err := s.Search(ctx, processor.SearchRequest{Query: q, Mode: m, Page: 1, Fresh: true})
			if err != nil {
				log.Error().Err(err).Str("query", q).Str("mode", m).Msg("CronJob: cache warm failed")
				failed++
				continue
			}
			log.Info().Str("query", q).Str("mode", m).Int("events", len(events)).Msg("CronJob: cache warmed")
		}
	}
	return failed
}

// InitCronJobs schedules the cache warmer and starts the scheduler. The caller
// stops it on shutdown.
func InitCronJobs(s Searcher, cfg config.Cron) (*cron.Cron, error) {
	log.Info().Str("schedule", cfg.Schedule).Msg("Starting Cron Jobs")
	c := cron.New()

	_, err := c.AddFunc(cfg.Schedule, func() {
		log.Info().Msg("CronJob: Cache Warm Running")
		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()
		WarmCache(ctx, s, cfg.WarmQueries, cfg.WarmModes)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule cache warm %q: %w", cfg.Schedule, err)
	}

	c.Start()
	return c, nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"go-landwatch/analysis"
	"go-landwatch/boundary"
	"go-landwatch/cache"
	"go-landwatch/config"
	"go-landwatch/cronjobs"
	"go-landwatch/db"
	"go-landwatch/federalregister"
	"go-landwatch/geocode"
	"go-landwatch/nlp"
	"go-landwatch/observability"
	"go-landwatch/processor"
	"go-landwatch/render"
	"go-landwatch/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search API and the map page",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Log.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, every document will use the fallback analysis")
	}
	analyzer := analysis.NewOpenAIAnalyzer(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)

	var geocoder geocode.Geocoder
	if g, err := geocode.NewGoogleGeocoder(cfg.Google.MapsAPIKey); err != nil {
		log.Warn().Err(err).Msg("geocoding disabled")
	} else {
		geocoder = g
	}

	var locator nlp.Locator
	if cfg.Google.LanguageCredentials != "" {
		l, err := nlp.NewCloudLocator(ctx, cfg.Google.LanguageCredentials)
		if err != nil {
			log.Warn().Err(err).Msg("entity location fallback disabled")
		} else {
			defer l.Close()
			locator = l
		}
	}

	var store db.Store = db.NopStore{}
	if cfg.Google.FirebaseCredentials != "" {
		fs, err := db.NewFirestoreStore(ctx, cfg.Google.FirebaseCredentials)
		if err != nil {
			log.Warn().Err(err).Msg("firestore disabled, documents will be analysed on every cache miss")
		} else {
			defer fs.Close()
			store = fs
		}
	}

	responseCache := newResponseCache(ctx, cfg.Cache)

	pipeline := processor.NewPipeline(processor.Deps{
		Registry: federalregister.NewClient(cfg.FederalRegister.BaseURL, cfg.FederalRegister.Timeout, cfg.FederalRegister.Agencies),
		Analyzer: analyzer,
		Locator:  locator,
		Geocoder: geocoder,
		Store:    store,
		Cache:    responseCache,
		Metrics:  metrics,
	})

	if cfg.Cron.Enabled {
		c, err := cronjobs.InitCronJobs(pipeline, cfg.Cron)
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	overlay, err := boundary.Load(cfg.Server.BoundaryFile, cfg.Styles)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.Server.BoundaryFile).Msg("boundary overlay not loaded")
	} else {
		log.Info().Int("polygons", overlay.Len()).Msg("boundary overlay loaded")
	}

	router := routes.SetupRouter(routes.Deps{
		Searcher:     pipeline,
		Analyzer:     analyzer,
		Geocoder:     geocoder,
		Overlay:      overlay,
		Styles:       cfg.Styles,
		RenderClient: render.NewHTTPSearchClient(cfg.Server.SearchEndpoint, cfg.Server.SearchTimeout),
		Gatherer:     reg,
		StaticDir:    cfg.Server.StaticDir,
	})

	server := &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.ListenAddress).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newResponseCache(ctx context.Context, cfg config.Cache) cache.ResponseCache {
	if cfg.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
		if err == nil {
			log.Info().Str("addr", cfg.RedisAddr).Msg("using redis response cache")
			return rc
		}
		log.Warn().Err(err).Msg("falling back to memory response cache")
	}
	return cache.NewMemoryCache(cfg.TTL)
}

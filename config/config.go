package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-landwatch/render"
)

type Server struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`

	// SearchEndpoint is where the page renderer sends its /api/search requests.
	SearchEndpoint string        `yaml:"search_endpoint"`
	SearchTimeout  time.Duration `yaml:"search_timeout"`
	StaticDir      string        `yaml:"static_dir"`
	BoundaryFile   string        `yaml:"boundary_file"`
}

type FederalRegister struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Agencies []string      `yaml:"agencies"`
}

type OpenAI struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type Google struct {
	MapsAPIKey string `yaml:"maps_api_key"`

	// FirebaseCredentials and LanguageCredentials are base64 encoded service account JSON.
	FirebaseCredentials string `yaml:"firebase_credentials"`
	LanguageCredentials string `yaml:"language_credentials"`
}

type Cache struct {
	Backend       string        `yaml:"backend"` // memory or redis
	TTL           time.Duration `yaml:"ttl"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

type Cron struct {
	Enabled     bool     `yaml:"enabled"`
	Schedule    string   `yaml:"schedule"`
	WarmQueries []string `yaml:"warm_queries"`
	WarmModes   []string `yaml:"warm_modes"`
}

type Log struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// Config holds all runtime configuration.
type Config struct {
	Server          Server          `yaml:"server"`
	FederalRegister FederalRegister `yaml:"federal_register"`
	OpenAI          OpenAI          `yaml:"openai"`
	Google          Google          `yaml:"google"`
	Cache           Cache           `yaml:"cache"`
	Cron            Cron            `yaml:"cron"`
	Log             Log             `yaml:"log"`
	Styles          render.Styles   `yaml:"styles"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Server: Server{
			ListenAddress:  ":8000",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   90 * time.Second,
			SearchEndpoint: "http://127.0.0.1:8000",
			SearchTimeout:  90 * time.Second,
			StaticDir:      "static",
			BoundaryFile:   "static/nps_boundary.json",
		},
		FederalRegister: FederalRegister{
			BaseURL: "https://www.federalregister.gov/api/v1",
			Timeout: 30 * time.Second,
			Agencies: []string{
				"land-management-bureau",
				"forest-service",
				"environmental-protection-agency",
				"national-park-service",
				"fish-and-wildlife-service",
			},
		},
		OpenAI: OpenAI{
			Model: "gpt-4o-mini",
		},
		Cache: Cache{
			Backend:   "memory",
			TTL:       time.Hour,
			RedisAddr: "localhost:6379",
		},
		Cron: Cron{
			Enabled:     true,
			Schedule:    "0 * * * *",
			WarmQueries: []string{"public land transfer"},
			WarmModes:   []string{"recent", "top_impact"},
		},
		Log: Log{
			Level: "info",
			Env:   "development",
		},
		Styles: render.DefaultStyles(),
	}
}

// Load builds the configuration: defaults, then the optional YAML file at path,
// then .env, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(b, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
		cfg = merge(cfg, fileCfg)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func merge(base, file Config) Config {
	out := base
	setString(&out.Server.ListenAddress, file.Server.ListenAddress)
	setDuration(&out.Server.ReadTimeout, file.Server.ReadTimeout)
	setDuration(&out.Server.WriteTimeout, file.Server.WriteTimeout)
	setString(&out.Server.SearchEndpoint, file.Server.SearchEndpoint)
	setDuration(&out.Server.SearchTimeout, file.Server.SearchTimeout)
	setString(&out.Server.StaticDir, file.Server.StaticDir)
	setString(&out.Server.BoundaryFile, file.Server.BoundaryFile)

	setString(&out.FederalRegister.BaseURL, file.FederalRegister.BaseURL)
	setDuration(&out.FederalRegister.Timeout, file.FederalRegister.Timeout)
	if len(file.FederalRegister.Agencies) > 0 {
		out.FederalRegister.Agencies = file.FederalRegister.Agencies
	}

	setString(&out.OpenAI.APIKey, file.OpenAI.APIKey)
	setString(&out.OpenAI.Model, file.OpenAI.Model)
	setString(&out.OpenAI.BaseURL, file.OpenAI.BaseURL)

	setString(&out.Google.MapsAPIKey, file.Google.MapsAPIKey)
	setString(&out.Google.FirebaseCredentials, file.Google.FirebaseCredentials)
	setString(&out.Google.LanguageCredentials, file.Google.LanguageCredentials)

	setString(&out.Cache.Backend, file.Cache.Backend)
	setDuration(&out.Cache.TTL, file.Cache.TTL)
	setString(&out.Cache.RedisAddr, file.Cache.RedisAddr)
	setString(&out.Cache.RedisPassword, file.Cache.RedisPassword)
	if file.Cache.RedisDB != 0 {
		out.Cache.RedisDB = file.Cache.RedisDB
	}

	// enabled is a plain bool, so a file that sets a schedule owns the flag too
	if file.Cron.Schedule != "" {
		out.Cron.Schedule = file.Cron.Schedule
		out.Cron.Enabled = file.Cron.Enabled
	}
	if len(file.Cron.WarmQueries) > 0 {
		out.Cron.WarmQueries = file.Cron.WarmQueries
	}
	if len(file.Cron.WarmModes) > 0 {
		out.Cron.WarmModes = file.Cron.WarmModes
	}

	setString(&out.Log.Level, file.Log.Level)
	setString(&out.Log.Env, file.Log.Env)

	out.Styles = base.Styles.Merge(file.Styles)
	return out
}

func applyEnv(cfg *Config) {
	setString(&cfg.OpenAI.APIKey, os.Getenv("OPENAI_API_KEY"))
	setString(&cfg.Google.MapsAPIKey, os.Getenv("MAPS_CREDENTIALS"))
	setString(&cfg.Google.FirebaseCredentials, os.Getenv("FIREBASE_CREDENTIALS"))
	setString(&cfg.Google.LanguageCredentials, os.Getenv("NATURAL_LANGUAGE_CREDENTIALS"))
	setString(&cfg.Cache.RedisAddr, os.Getenv("REDIS_ADDR"))
	setString(&cfg.Cache.RedisPassword, os.Getenv("REDIS_PASSWORD"))

	setString(&cfg.Server.ListenAddress, os.Getenv("LANDWATCH_LISTEN_ADDRESS"))
	setString(&cfg.Server.SearchEndpoint, os.Getenv("LANDWATCH_SEARCH_ENDPOINT"))
	setString(&cfg.Server.BoundaryFile, os.Getenv("LANDWATCH_BOUNDARY_FILE"))
	setString(&cfg.Cache.Backend, os.Getenv("LANDWATCH_CACHE_BACKEND"))
	setString(&cfg.Log.Level, os.Getenv("LANDWATCH_LOG_LEVEL"))
	setString(&cfg.Log.Env, os.Getenv("LANDWATCH_ENV"))

	if v := os.Getenv("LANDWATCH_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = d
		}
	}
	if v := os.Getenv("LANDWATCH_CRON_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cron.Enabled = b
		}
	}
	if v := os.Getenv("LANDWATCH_WARM_QUERIES"); v != "" {
		cfg.Cron.WarmQueries = splitList(v)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/greenbasket/grocer-cli/internal/catalog"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig          `yaml:"store" mapstructure:"store"`
	Server    ServerConfig         `yaml:"server" mapstructure:"server"`
	Log       LogConfig            `yaml:"log" mapstructure:"log"`
	Anthropic AnthropicConfig      `yaml:"anthropic" mapstructure:"anthropic"`
	Retrieval RetrievalConfig      `yaml:"retrieval" mapstructure:"retrieval"`
	StorePlan StorePlanConfig      `yaml:"store_plan" mapstructure:"store_plan"`
	Scoring   ScoringConfig        `yaml:"scoring" mapstructure:"scoring"`
	Sanity    []catalog.PriceBound `yaml:"sanity" mapstructure:"sanity"`
	Brands    map[string]string    `yaml:"brands" mapstructure:"brands"`
	Stores    []StoreInfo          `yaml:"stores" mapstructure:"stores"`
	Sync      SyncConfig           `yaml:"sync" mapstructure:"sync"`
	Data      DataConfig           `yaml:"data" mapstructure:"data"`
}

// StoreConfig configures the inventory database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP serving mode.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AnthropicConfig holds the optional LLM extraction settings. Without a key
// the plan command requires explicit --ingredients.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// RetrievalConfig bounds candidate retrieval.
type RetrievalConfig struct {
	MaxCandidates int `yaml:"max_candidates" mapstructure:"max_candidates"`
}

// StorePlanConfig tunes primary-store selection and the 1-item rule.
type StorePlanConfig struct {
	// SpecialtyMinItems is the minimum count of specialty-only ingredients
	// before a specialty store is opened at all.
	SpecialtyMinItems int `yaml:"specialty_min_items" mapstructure:"specialty_min_items"`
	// PrivateLabelShare is the sampled private-label fraction above which a
	// primary store is penalized.
	PrivateLabelShare   float64 `yaml:"private_label_share" mapstructure:"private_label_share"`
	PremiumProteinBonus int     `yaml:"premium_protein_bonus" mapstructure:"premium_protein_bonus"`
	PrivateLabelPenalty int     `yaml:"private_label_penalty" mapstructure:"private_label_penalty"`
}

// ScoringConfig holds every tunable of the component scorer. Values are
// signed contributions to the 0-100 total.
type ScoringConfig struct {
	Base int `yaml:"base" mapstructure:"base"`

	EWGDirtyOrganic      int `yaml:"ewg_dirty_organic" mapstructure:"ewg_dirty_organic"`
	EWGDirtyConventional int `yaml:"ewg_dirty_conventional" mapstructure:"ewg_dirty_conventional"`
	EWGMiddleOrganic     int `yaml:"ewg_middle_organic" mapstructure:"ewg_middle_organic"`
	EWGCleanOrganic      int `yaml:"ewg_clean_organic" mapstructure:"ewg_clean_organic"`
	EWGNonProduceOrganic int `yaml:"ewg_non_produce_organic" mapstructure:"ewg_non_produce_organic"`

	FormPerfect    int `yaml:"form_perfect" mapstructure:"form_perfect"`
	FormAcceptable int `yaml:"form_acceptable" mapstructure:"form_acceptable"`
	FormNeutral    int `yaml:"form_neutral" mapstructure:"form_neutral"`
	FormMinor      int `yaml:"form_minor" mapstructure:"form_minor"`

	SlowDeliveryPenalty int `yaml:"slow_delivery_penalty" mapstructure:"slow_delivery_penalty"`

	UnitQuartileBonus int `yaml:"unit_quartile_bonus" mapstructure:"unit_quartile_bonus"`
	UnitMedianBonus   int `yaml:"unit_median_bonus" mapstructure:"unit_median_bonus"`

	OutlierPenalty  int     `yaml:"outlier_penalty" mapstructure:"outlier_penalty"`
	OutlierMultiple float64 `yaml:"outlier_multiple" mapstructure:"outlier_multiple"`

	// CheaperRatio is the strict price ceiling (as a fraction of the winner's
	// price) for attaching a cheaper alternative.
	CheaperRatio float64 `yaml:"cheaper_ratio" mapstructure:"cheaper_ratio"`

	// TradeoffMinRatio and TradeoffMinDollar gate the secondary cost-tradeoff
	// sentence: the winner must cost at least MinRatio times the runner-up
	// and at least MinDollar more before the sentence is surfaced.
	TradeoffMinRatio  float64 `yaml:"tradeoff_min_ratio" mapstructure:"tradeoff_min_ratio"`
	TradeoffMinDollar float64 `yaml:"tradeoff_min_dollar" mapstructure:"tradeoff_min_dollar"`
}

// Store delivery estimates.
const (
	DeliverySameDay = "same_day"
	DeliveryTwoDay  = "two_day"
	DeliverySlow    = "slow"
)

// Store tiers.
const (
	TierPrimary   = "primary"
	TierSpecialty = "specialty"
)

// StoreInfo is the static metadata for one store.
type StoreInfo struct {
	ID       string `yaml:"id" mapstructure:"id"`
	Name     string `yaml:"name" mapstructure:"name"`
	Tier     string `yaml:"tier" mapstructure:"tier"`
	Delivery string `yaml:"delivery" mapstructure:"delivery"`
}

// SyncConfig configures inventory catalog sync.
type SyncConfig struct {
	// Feeds maps store ID to its catalog feed URL.
	Feeds       map[string]string `yaml:"feeds" mapstructure:"feeds"`
	RatePerSec  float64           `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst       int               `yaml:"burst" mapstructure:"burst"`
	TimeoutSecs int               `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// DataConfig points at optional reference-data overrides.
type DataConfig struct {
	EWGFile  string `yaml:"ewg_file" mapstructure:"ewg_file"`
	SeedFile string `yaml:"seed_file" mapstructure:"seed_file"`
}

// DefaultStores returns the built-in store roster, used when the config file
// does not define one.
func DefaultStores() []StoreInfo {
	return []StoreInfo{
		{ID: "greenfields", Name: "Greenfields Market", Tier: TierPrimary, Delivery: DeliverySameDay},
		{ID: "harvest-market", Name: "Harvest Market", Tier: TierPrimary, Delivery: DeliveryTwoDay},
		{ID: "spice-bazaar", Name: "Spice Bazaar", Tier: TierSpecialty, Delivery: DeliverySlow},
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GROCER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "grocer.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("retrieval.max_candidates", 6)
	v.SetDefault("store_plan.specialty_min_items", 3)
	v.SetDefault("store_plan.private_label_share", 0.7)
	v.SetDefault("store_plan.premium_protein_bonus", 3)
	v.SetDefault("store_plan.private_label_penalty", 2)
	v.SetDefault("scoring.base", 50)
	v.SetDefault("scoring.ewg_dirty_organic", 18)
	v.SetDefault("scoring.ewg_dirty_conventional", -12)
	v.SetDefault("scoring.ewg_middle_organic", 8)
	v.SetDefault("scoring.ewg_clean_organic", 2)
	v.SetDefault("scoring.ewg_non_produce_organic", 2)
	v.SetDefault("scoring.form_perfect", 14)
	v.SetDefault("scoring.form_acceptable", 10)
	v.SetDefault("scoring.form_neutral", 6)
	v.SetDefault("scoring.form_minor", 2)
	v.SetDefault("scoring.slow_delivery_penalty", 10)
	v.SetDefault("scoring.unit_quartile_bonus", 8)
	v.SetDefault("scoring.unit_median_bonus", 4)
	v.SetDefault("scoring.outlier_penalty", 20)
	v.SetDefault("scoring.outlier_multiple", 2.0)
	v.SetDefault("scoring.cheaper_ratio", 0.9)
	v.SetDefault("scoring.tradeoff_min_ratio", 1.10)
	v.SetDefault("scoring.tradeoff_min_dollar", 0.50)
	v.SetDefault("brands", map[string]string{
		"greenfields everyday": "greenfields",
		"harvest select":       "harvest-market",
		"bazaar basics":        "spice-bazaar",
	})
	v.SetDefault("sync.rate_per_sec", 2.0)
	v.SetDefault("sync.burst", 1)
	v.SetDefault("sync.timeout_secs", 30)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if len(cfg.Stores) == 0 {
		cfg.Stores = DefaultStores()
	}

	return &cfg, nil
}

// Validate checks the configuration needed by a given subsystem.
func (c *Config) Validate(section string) error {
	switch section {
	case "store":
		if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
			return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
		}
		if c.Store.DatabaseURL == "" {
			return eris.New("config: store.database_url is required")
		}
	case "extract":
		if c.Anthropic.Key == "" {
			return eris.New("config: anthropic.key is required for prompt extraction")
		}
	case "sync":
		if len(c.Sync.Feeds) == 0 {
			return eris.New("config: sync.feeds is empty")
		}
	}
	return nil
}

// StoreByID returns the metadata for a store, or false if unknown.
func (c *Config) StoreByID(id string) (StoreInfo, bool) {
	for _, s := range c.Stores {
		if s.ID == id {
			return s, true
		}
	}
	return StoreInfo{}, false
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/arthsutra/bazaar-harvester/internal/relevance"
)

const (
	defaultStartDate  = "2023-04-28"
	defaultEndDate    = "2025-10-28"
	defaultOutputFile = "historical_news_hdfc_bank_filtered.csv"

	defaultCompanyQuery = `("HDFC Bank" OR "HDFC Bank Ltd" OR "HDFC Bank Limited" ` +
		`OR "HDFC Bank results" OR "HDFC Bank profit" OR "HDFC Bank shares" ` +
		`OR "HDFC Bank stock" OR "HDFC Bank RBI" OR "HDFC Bank loans" ` +
		`OR "HDFC Bank financial services")`

	defaultSectorQuery = `("Indian banking sector" OR "Indian banks" OR "Reserve Bank of India" ` +
		`OR "RBI Bank of India" OR "State Bank of India" OR "SBI Bank" ` +
		`OR "ICICI Bank" OR "Axis Bank" OR "Kotak Mahindra Bank" ` +
		`OR "Yes Bank" OR "Bank of Baroda" OR "Punjab National Bank")`

	dateLayout = "2006-01-02"
)

// GDELT holds the upstream API settings.
type GDELT struct {
	BaseURL    string
	MaxRecords int
	Timeout    time.Duration
}

// Enrich controls the optional page-metadata enrichment stage.
type Enrich struct {
	Enabled   bool
	Delay     time.Duration
	UserAgent string
}

// Archive controls the optional cross-run exported-article store. Empty path
// disables it.
type Archive struct {
	Path string
}

// Config is the immutable run configuration handed to the orchestrator. It
// carries everything the original batch job hard-coded: date range, queries,
// keyword list, per-category limits, pacing delay, and the output file.
type Config struct {
	StartDate time.Time
	EndDate   time.Time

	CompanyQuery string
	SectorQuery  string
	Keywords     []string

	CompanyLimit int
	SectorLimit  int

	RequestDelay time.Duration
	OutputFile   string

	GDELT   GDELT
	Enrich  Enrich
	Archive Archive

	PublishersFile string
	LogLevel       string
}

// Load reads configuration from an optional YAML file plus HARVESTER_-prefixed
// environment overrides, fills defaults, and validates the result. An empty
// path skips the file and uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HARVESTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	start, err := time.Parse(dateLayout, v.GetString("start_date"))
	if err != nil {
		return nil, fmt.Errorf("parse start_date: %w", err)
	}
	end, err := time.Parse(dateLayout, v.GetString("end_date"))
	if err != nil {
		return nil, fmt.Errorf("parse end_date: %w", err)
	}

	cfg := &Config{
		StartDate:    start,
		EndDate:      end,
		CompanyQuery: v.GetString("company_query"),
		SectorQuery:  v.GetString("sector_query"),
		Keywords:     v.GetStringSlice("keywords"),
		CompanyLimit: v.GetInt("company_limit"),
		SectorLimit:  v.GetInt("sector_limit"),
		RequestDelay: v.GetDuration("request_delay"),
		OutputFile:   v.GetString("output_file"),
		GDELT: GDELT{
			BaseURL:    v.GetString("gdelt.base_url"),
			MaxRecords: v.GetInt("gdelt.max_records"),
			Timeout:    v.GetDuration("gdelt.timeout"),
		},
		Enrich: Enrich{
			Enabled:   v.GetBool("enrich.enabled"),
			Delay:     v.GetDuration("enrich.delay"),
			UserAgent: v.GetString("enrich.user_agent"),
		},
		Archive: Archive{
			Path: v.GetString("archive.path"),
		},
		PublishersFile: v.GetString("publishers_file"),
		LogLevel:       v.GetString("log_level"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("start_date", defaultStartDate)
	v.SetDefault("end_date", defaultEndDate)
	v.SetDefault("company_query", defaultCompanyQuery)
	v.SetDefault("sector_query", defaultSectorQuery)
	v.SetDefault("keywords", relevance.DefaultKeywords())
	v.SetDefault("company_limit", 15)
	v.SetDefault("sector_limit", 30)
	v.SetDefault("request_delay", 15*time.Second)
	v.SetDefault("output_file", defaultOutputFile)
	v.SetDefault("gdelt.base_url", "")
	v.SetDefault("gdelt.max_records", 250)
	v.SetDefault("gdelt.timeout", 20*time.Second)
	v.SetDefault("enrich.enabled", false)
	v.SetDefault("enrich.delay", time.Second)
	v.SetDefault("enrich.user_agent", "bazaar-harvester/1.0")
	v.SetDefault("archive.path", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("log_level", "info")
}

func (c *Config) validate() error {
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("end_date %s is before start_date %s",
			c.EndDate.Format(dateLayout), c.StartDate.Format(dateLayout))
	}
	if strings.TrimSpace(c.CompanyQuery) == "" {
		return errors.New("company_query is empty")
	}
	if strings.TrimSpace(c.SectorQuery) == "" {
		return errors.New("sector_query is empty")
	}
	if len(c.Keywords) == 0 {
		return errors.New("keyword list is empty")
	}
	if c.CompanyLimit <= 0 || c.SectorLimit <= 0 {
		return fmt.Errorf("category limits must be positive, got company %d sector %d",
			c.CompanyLimit, c.SectorLimit)
	}
	if c.RequestDelay < 0 {
		return errors.New("request_delay must not be negative")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return errors.New("output_file is empty")
	}
	if c.GDELT.MaxRecords <= 0 {
		return errors.New("gdelt.max_records must be positive")
	}
	if c.GDELT.Timeout <= 0 {
		return errors.New("gdelt.timeout must be positive")
	}
	return nil
}

// Package settings holds the configuration shared by stormd and storm-cli.
package settings

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"schedulestorm-backend/internal/aggregate"
	"schedulestorm-backend/internal/components/db"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/internal/ingest"
	"schedulestorm-backend/internal/sources/banner"
	"schedulestorm-backend/internal/sources/campusapi"
	"schedulestorm-backend/lib/configutil"
)

const (
	SourceBanner    = "banner"
	SourceCampusApi = "campusapi"
)

type SourceConfig struct {
	Kind              string  `json:"kind"`
	BaseUrl           string  `json:"base_url"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CloudflareBypass  bool    `json:"cloudflare_bypass"`
	DescriptionsUrl   string  `json:"descriptions_url"`
	ApiKey            string  `json:"api_key"`
}

type UniversityConfig struct {
	FullName string `json:"fullname"`
	Enabled  bool   `json:"enabled"`
	Scrape   bool   `json:"scrape"`
	// ScrapeInterval is in seconds.
	ScrapeInterval int          `json:"scrapeinterval"`
	RmpID          string       `json:"rmpid"`
	Workers        int          `json:"workers"`
	Source         SourceConfig `json:"source"`
}

func (u UniversityConfig) Interval() time.Duration {
	return time.Duration(u.ScrapeInterval) * time.Second
}

type Config struct {
	Database     db.Config                   `json:"database"`
	Port         int                         `json:"port"`
	Timezone     string                      `json:"timezone"`
	Alerts       ingest.AlertConfig          `json:"alerts"`
	Universities map[string]UniversityConfig `json:"universities"`
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", c.Port))
	}
	for id, uni := range c.Universities {
		if uni.ScrapeInterval < 0 {
			errs = append(errs, fmt.Errorf("universities.%s: scrapeinterval must not be negative", id))
		}
		if uni.Workers < 0 {
			errs = append(errs, fmt.Errorf("universities.%s: workers must not be negative", id))
		}
		switch uni.Source.Kind {
		case SourceBanner, SourceCampusApi:
		case "":
			if uni.Scrape {
				errs = append(errs, fmt.Errorf("universities.%s: scraping needs a source", id))
			}
		default:
			errs = append(errs, fmt.Errorf("universities.%s: unknown source kind %q", id, uni.Source.Kind))
		}
	}
	return errors.Join(errs...)
}

// Read reads config.json5 (and its local override) from the working
// directory or the closest parent holding one.
func Read() (Config, error) {
	cfg, err := configutil.ReadRecursively[Config]("config.json5")
	if err != nil {
		return Config{}, err
	}
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	return cfg, nil
}

// Enabled returns the ids of the enabled universities in sorted order.
func (c Config) Enabled() []string {
	var ids []string
	for id, uni := range c.Universities {
		if uni.Enabled {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// ReadModel describes the enabled universities for the read side.
func (c Config) ReadModel() []aggregate.University {
	var out []aggregate.University
	for _, id := range c.Enabled() {
		uni := c.Universities[id]
		out = append(out, aggregate.University{
			ID:              id,
			Name:            uni.FullName,
			RatingsSourceID: uni.RmpID,
		})
	}
	return out
}

// NewSource builds the scraper configured for a university.
func (u UniversityConfig) NewSource(tel telemetry.API) (ingest.Source, error) {
	switch u.Source.Kind {
	case SourceBanner:
		return banner.New(banner.Config{
			BaseUrl:           u.Source.BaseUrl,
			RequestsPerSecond: u.Source.RequestsPerSecond,
			CloudflareBypass:  u.Source.CloudflareBypass,
			DescriptionsUrl:   u.Source.DescriptionsUrl,
		}, tel)
	case SourceCampusApi:
		return campusapi.New(campusapi.Config{
			BaseUrl:           u.Source.BaseUrl,
			ApiKey:            u.Source.ApiKey,
			RequestsPerSecond: u.Source.RequestsPerSecond,
			Workers:           u.Workers,
		}, tel)
	}
	return nil, fmt.Errorf("unknown source kind %q", u.Source.Kind)
}

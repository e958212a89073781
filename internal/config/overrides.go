package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is the optional YAML configuration file for settings that are
// awkward as environment variables: scrape selector lists and the push
// delivery window. Environment variables still win for everything else.
//
// Example file:
//
//	scraper:
//	  primary_selector: '.text_area[itemprop="articleBody"]'
//	  fallback_selectors:
//	    - ".main_text .text_area"
//	    - ".article_body"
//	push:
//	  window_start_hour: 6
//	  window_end_hour: 21
//	  timezone: Asia/Seoul
type Overrides struct {
	Scraper struct {
		PrimarySelector   string   `yaml:"primary_selector"`
		FallbackSelectors []string `yaml:"fallback_selectors"`
	} `yaml:"scraper"`
	Push struct {
		WindowStartHour *int   `yaml:"window_start_hour"`
		WindowEndHour   *int   `yaml:"window_end_hour"`
		Timezone        string `yaml:"timezone"`
	} `yaml:"push"`
}

// LoadOverrides parses the overrides file at path. A missing file is not an
// error; it returns an empty Overrides so callers can apply it uniformly.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return &Overrides{}, nil
	}

	// #nosec G304 -- path comes from CONFIG_FILE or a CLI flag, not request input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Overrides{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &o, nil
}

// LoadOverridesFromEnv loads the file named by CONFIG_FILE, if any.
func LoadOverridesFromEnv() (*Overrides, error) {
	return LoadOverrides(os.Getenv("CONFIG_FILE"))
}

func (o *Overrides) validate() error {
	if o.Push.WindowStartHour != nil {
		if h := *o.Push.WindowStartHour; h < 0 || h > 23 {
			return fmt.Errorf("push window_start_hour must be between 0 and 23, got %d", h)
		}
	}
	if o.Push.WindowEndHour != nil {
		if h := *o.Push.WindowEndHour; h < 0 || h > 24 {
			return fmt.Errorf("push window_end_hour must be between 0 and 24, got %d", h)
		}
	}
	if o.Push.WindowStartHour != nil && o.Push.WindowEndHour != nil {
		if *o.Push.WindowStartHour >= *o.Push.WindowEndHour {
			return fmt.Errorf("push window start (%d) must be before end (%d)",
				*o.Push.WindowStartHour, *o.Push.WindowEndHour)
		}
	}
	return nil
}

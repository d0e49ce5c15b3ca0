// Package config loads the airbnb-eda settings from defaults, an optional
// YAML file and AIRBNB_EDA_* environment variables, in that order of
// precedence from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. AIRBNB_EDA_DATA_ROOT.
const EnvPrefix = "AIRBNB_EDA"

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Filter  FilterConfig  `yaml:"filter" envconfig:"FILTER"`
	Coerce  CoerceConfig  `yaml:"coerce" envconfig:"COERCE"`
	Chart   ChartConfig   `yaml:"chart" envconfig:"CHART"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// DataConfig locates the per-city CSV files.
type DataConfig struct {
	Root      string `yaml:"root" envconfig:"ROOT" validate:"required"`
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"delimiter"`
}

// FilterConfig holds the column filter bounds.
type FilterConfig struct {
	MaxUnique    int     `yaml:"max_unique" envconfig:"MAX_UNIQUE" validate:"gtefield=MinUnique"`
	MinUnique    int     `yaml:"min_unique" envconfig:"MIN_UNIQUE" validate:"gte=0"`
	MaxNullRatio float64 `yaml:"max_null_ratio" envconfig:"MAX_NULL_RATIO" validate:"gte=0,lte=1"`
}

// CoerceConfig tunes date and currency parsing.
type CoerceConfig struct {
	LenientDates bool   `yaml:"lenient_dates" envconfig:"LENIENT_DATES"`
	PercentScale bool   `yaml:"percent_scale" envconfig:"PERCENT_SCALE"`
	Timezone     string `yaml:"timezone" envconfig:"TIMEZONE" validate:"timezone"`
}

// ChartConfig holds the map overlays and styling.
type ChartConfig struct {
	Coastlines    string  `yaml:"coastlines" envconfig:"COASTLINES"`
	Countries     string  `yaml:"countries" envconfig:"COUNTRIES"`
	Counties      string  `yaml:"counties" envconfig:"COUNTIES"`
	Margin        float64 `yaml:"margin" envconfig:"MARGIN" validate:"gte=0"`
	ColorQuantile float64 `yaml:"color_quantile" envconfig:"COLOR_QUANTILE" validate:"gt=0,lte=100"`
	SizeScale     float64 `yaml:"size_scale" envconfig:"SIZE_SCALE" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Root:      "data",
			Delimiter: ",",
		},
		Filter: FilterConfig{
			MaxUnique:    50,
			MinUnique:    2,
			MaxNullRatio: 1,
		},
		Coerce: CoerceConfig{
			Timezone: "UTC",
		},
		Chart: ChartConfig{
			Margin:        0.05,
			ColorQuantile: 94,
			SizeScale:     15,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "logs/airbnb-eda.log",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg. Keys absent from
// the file keep their current values.
func loadFromFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(raw, cfg)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("delimiter", isDelimiter)
	v.RegisterValidation("timezone", isTimezone)

	// Report yaml key names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func isDelimiter(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || utf8.RuneCountInString(s) == 1
}

func isTimezone(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s fails %s", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// DelimiterRune returns the CSV delimiter, ',' when unset.
func (c *Config) DelimiterRune() rune {
	if c.Data.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Data.Delimiter)
	return r
}

// Location returns the zone for dates without an offset.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Coerce.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

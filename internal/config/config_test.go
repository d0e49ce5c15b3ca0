package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ',', cfg.DelimiterRune())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
data:
  root: /srv/inside-airbnb
  delimiter: ";"
filter:
  max_unique: 20
coerce:
  lenient_dates: true
  timezone: America/Los_Angeles
chart:
  counties: shapes/counties.geojson
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/inside-airbnb", cfg.Data.Root)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.Equal(t, 20, cfg.Filter.MaxUnique)
	assert.Equal(t, 2, cfg.Filter.MinUnique, "keys absent from the file keep their defaults")
	assert.True(t, cfg.Coerce.LenientDates)
	assert.Equal(t, "America/Los_Angeles", cfg.Location().String())
	assert.Equal(t, "shapes/counties.geojson", cfg.Chart.Counties)
	assert.Equal(t, 94.0, cfg.Chart.ColorQuantile)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "data:\n  root: from-file\nfilter:\n  min_unique: 3\n")
	t.Setenv("AIRBNB_EDA_DATA_ROOT", "from-env")
	t.Setenv("AIRBNB_EDA_FILTER_MAX_UNIQUE", "10")
	t.Setenv("AIRBNB_EDA_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Data.Root)
	assert.Equal(t, 10, cfg.Filter.MaxUnique)
	assert.Equal(t, 3, cfg.Filter.MinUnique)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "inverted filter bounds",
			yaml:    "filter:\n  max_unique: 1\n  min_unique: 5\n",
			wantErr: "filter.max_unique fails gtefield=MinUnique",
		},
		{
			name:    "unknown level",
			yaml:    "logging:\n  level: verbose\n",
			wantErr: "logging.level fails oneof",
		},
		{
			name:    "multi-character delimiter",
			yaml:    "data:\n  delimiter: \"||\"\n",
			wantErr: "data.delimiter fails delimiter",
		},
		{
			name:    "unknown timezone",
			yaml:    "coerce:\n  timezone: Mars/Olympus_Mons\n",
			wantErr: "coerce.timezone fails timezone",
		},
		{
			name:    "file output without path",
			yaml:    "logging:\n  output: file\n  file_path: \"\"\n",
			wantErr: "logging.file_path fails required_unless",
		},
		{
			name:    "quantile above 100",
			yaml:    "chart:\n  color_quantile: 150\n",
			wantErr: "chart.color_quantile fails lte=100",
		},
		{
			name:    "unknown key",
			yaml:    "data:\n  rooot: x\n",
			wantErr: "failed to load config from file",
		},
		{
			name:    "bad env value",
			env:     map[string]string{"AIRBNB_EDA_FILTER_MAX_UNIQUE": "many"},
			wantErr: "failed to load config from env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeConfig(t, tt.yaml)
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

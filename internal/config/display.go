package config

import (
	"sort"
	"strings"

	"github.com/spf13/viper"

	"oncoviz/domain/chart"
	"oncoviz/internal/errors"
)

// DisplayConfig is the static display vocabulary: how regimen prefixes, line
// values and follow-up years map to what the user sees. It is loaded once at
// startup and passed by reference into the pipeline; nothing mutates it
// afterwards.
//
// Regimen labeling is config-driven while regimen discovery stays data-driven:
// a new prefix appearing in the snapshot surfaces as soon as one entry is
// added here, with no code change.
type DisplayConfig struct {
	Title       string            `mapstructure:"title"`
	Regimens    map[string]string `mapstructure:"regimens"`
	Lines       map[string]string `mapstructure:"lines"`
	Years       map[string]string `mapstructure:"years"`
	Colors      map[string]string `mapstructure:"colors"`
	BaseMetrics []string          `mapstructure:"base_metrics"`
	MetricOrder []string          `mapstructure:"metric_order"`
	Background  string            `mapstructure:"background"`
	FontColor   string            `mapstructure:"font_color"`
}

// LoadDisplay reads the display vocabulary from an optional YAML file with
// environment overrides (ONCOVIZ_*). Every key has a default matching the
// published dashboard, so an empty path yields a fully usable config.
func LoadDisplay(path string) (*DisplayConfig, error) {
	v := viper.New()
	setDisplayDefaults(v)

	v.SetEnvPrefix("ONCOVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read display config %s", path)
		}
	}

	var cfg DisplayConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse display config")
	}

	if err := validateDisplay(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultDisplay returns the built-in vocabulary without touching the
// filesystem or environment. Tests and the demo mode use it directly.
func DefaultDisplay() *DisplayConfig {
	v := viper.New()
	setDisplayDefaults(v)

	var cfg DisplayConfig
	// Defaults always unmarshal cleanly; there is no user input here.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Color keys are regimen prefixes, not labels: viper lowercases map keys on
// the way in, which would corrupt mixed-case labels like "PD-1 alone".
func setDisplayDefaults(v *viper.Viper) {
	v.SetDefault("title", "Stage IV Checkpoint Inhibitor Outcome Visualiser")
	v.SetDefault("regimens", map[string]string{
		"1": "PD-1 alone",
		"2": "PD-1 + CTLA-4",
		"3": "Neither",
	})
	v.SetDefault("lines", map[string]string{
		"1":  "No prior treatment",
		"2+": "At least one prior treatment",
	})
	v.SetDefault("years", map[string]string{
		"1": "12",
		"2": "24",
	})
	v.SetDefault("colors", map[string]string{
		"1": "#22ee22",
		"2": "#07ac1d",
		"3": "#e00a0a",
	})
	v.SetDefault("base_metrics", []string{"ORR", "PFS", "OVS"})
	v.SetDefault("metric_order", []string{"ORR", "PFS12", "OVS12", "PFS24", "OVS24"})
	v.SetDefault("background", "#ccf0e9")
	v.SetDefault("font_color", "black")
}

func validateDisplay(cfg *DisplayConfig) error {
	if len(cfg.Regimens) == 0 {
		return errors.ConfigInvalid("display config needs at least one regimen label")
	}
	if len(cfg.Lines) == 0 {
		return errors.ConfigInvalid("display config needs at least one line label")
	}
	if len(cfg.Years) == 0 {
		return errors.ConfigInvalid("display config needs at least one follow-up year")
	}
	if len(cfg.BaseMetrics) == 0 {
		return errors.ConfigInvalid("display config needs at least one base metric")
	}
	return nil
}

// RegimenLabel resolves a column prefix to its display label.
func (c *DisplayConfig) RegimenLabel(prefix string) (string, bool) {
	label, ok := c.Regimens[prefix]
	return label, ok
}

// LineLabel resolves a raw line value to its display phrase, falling back to
// the raw value itself so unexpected lines degrade instead of failing.
func (c *DisplayConfig) LineLabel(raw string) string {
	if label, ok := c.Lines[raw]; ok {
		return label
	}
	return raw
}

// ColorMap joins the regimen and color maps into label->color, the form the
// chart composer consumes.
func (c *DisplayConfig) ColorMap() map[string]string {
	out := make(map[string]string, len(c.Colors))
	for prefix, color := range c.Colors {
		if label, ok := c.Regimens[prefix]; ok {
			out[label] = color
		}
	}
	return out
}

// Theme returns the fixed figure dressing.
func (c *DisplayConfig) Theme() chart.Theme {
	return chart.Theme{PaperBG: c.Background, PlotBG: c.Background, FontColor: c.FontColor}
}

// OrderedLineValues returns the known line values with "1" pinned first, the
// order the line axis and the option list both use.
func (c *DisplayConfig) OrderedLineValues() []string {
	values := make([]string, 0, len(c.Lines))
	for v := range c.Lines {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if (values[i] == "1") != (values[j] == "1") {
			return values[i] == "1"
		}
		return values[i] < values[j]
	})
	return values
}

// OrderedLineLabels returns the display labels in OrderedLineValues order.
func (c *DisplayConfig) OrderedLineLabels() []string {
	values := c.OrderedLineValues()
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = c.LineLabel(v)
	}
	return labels
}

// SortedPrefixes returns the configured regimen prefixes in sorted order.
func (c *DisplayConfig) SortedPrefixes() []string {
	prefixes := make([]string, 0, len(c.Regimens))
	for p := range c.Regimens {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

// SortedYears returns the configured follow-up years in sorted order.
func (c *DisplayConfig) SortedYears() []string {
	years := make([]string, 0, len(c.Years))
	for y := range c.Years {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

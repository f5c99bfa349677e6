package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors
var (
	ErrInvalidRadius   = errors.New("radius range must be positive and ascending")
	ErrInvalidPlotSize = errors.New("plot width and height must be positive")
	ErrInvalidTrigger  = errors.New("story trigger must be within [0, 1]")
	ErrInvalidStep     = errors.New("slider step must be within (0, 100]")
	ErrInvalidTimezone = errors.New("unknown timezone")
	ErrInvalidTheme    = errors.New("theme must be dark or light")
)

// Config holds application configuration
type Config struct {
	// Input settings
	LocPath string `mapstructure:"loc_path"`

	// Display settings
	TimezoneName  string         `mapstructure:"timezone"`
	Timezone      *time.Location `mapstructure:"-"`
	TimeFormat24h bool           `mapstructure:"time_format_24h"`
	Theme         string         `mapstructure:"theme"`

	// Commit URL template parts: https://<host>/<owner>/<name>/commit/<id>
	Repository RepositoryConfig `mapstructure:"repository"`

	Scatter ScatterConfig `mapstructure:"scatter"`
	Slider  SliderConfig  `mapstructure:"slider"`
	Story   StoryConfig   `mapstructure:"story"`
	Logging LoggingConfig `mapstructure:"logging"`

	// MaxFiles caps the file breakdown rows; 0 shows every file
	MaxFiles int `mapstructure:"max_files"`
}

// RepositoryConfig names the remote that commit links point at
type RepositoryConfig struct {
	Host  string `mapstructure:"host"`
	Owner string `mapstructure:"owner"`
	Name  string `mapstructure:"name"`
}

// ScatterConfig holds the plot geometry. The first render and later updates
// use separate radius ranges.
type ScatterConfig struct {
	Width         float64    `mapstructure:"width"`
	Height        float64    `mapstructure:"height"`
	InitialRadius [2]float64 `mapstructure:"initial_radius"`
	UpdateRadius  [2]float64 `mapstructure:"update_radius"`
}

// SliderConfig holds time slider settings
type SliderConfig struct {
	Step float64 `mapstructure:"step"` // percent per key press
}

// StoryConfig holds narrative scroll settings
type StoryConfig struct {
	Trigger float64 `mapstructure:"trigger"` // fraction of viewport height
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		LocPath:       "loc.csv",
		TimezoneName:  "Local",
		Timezone:      time.Local,
		TimeFormat24h: false,
		Theme:         "dark",
		Repository: RepositoryConfig{
			Host:  "github.com",
			Owner: "bscruzin",
			Name:  "portfolio",
		},
		Scatter: ScatterConfig{
			Width:         1000,
			Height:        600,
			InitialRadius: [2]float64{3, 20},
			UpdateRadius:  [2]float64{2, 30},
		},
		Slider: SliderConfig{Step: 1},
		Story:  StoryConfig{Trigger: 0.5},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CommitURL builds the link for a commit id
func (c *Config) CommitURL(id string) string {
	return fmt.Sprintf("https://%s/%s/%s/commit/%s",
		c.Repository.Host, c.Repository.Owner, c.Repository.Name, id)
}

// TimeLayout returns the short clock layout for the configured format
func (c *Config) TimeLayout() string {
	if c.TimeFormat24h {
		return "15:04"
	}
	return "3:04 PM"
}

// Load reads configuration from file and environment. An empty path searches
// the working directory and $HOME/.config/gitstory for gitstory.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gitstory")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gitstory"))
		}
	}

	v.SetEnvPrefix("GITSTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("loc_path", d.LocPath)
	v.SetDefault("timezone", d.TimezoneName)
	v.SetDefault("time_format_24h", d.TimeFormat24h)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("repository.host", d.Repository.Host)
	v.SetDefault("repository.owner", d.Repository.Owner)
	v.SetDefault("repository.name", d.Repository.Name)
	v.SetDefault("scatter.width", d.Scatter.Width)
	v.SetDefault("scatter.height", d.Scatter.Height)
	v.SetDefault("scatter.initial_radius", d.Scatter.InitialRadius[:])
	v.SetDefault("scatter.update_radius", d.Scatter.UpdateRadius[:])
	v.SetDefault("slider.step", d.Slider.Step)
	v.SetDefault("story.trigger", d.Story.Trigger)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("max_files", d.MaxFiles)
}

// Validate checks settings and resolves the timezone
func (c *Config) Validate() error {
	if c.Scatter.Width <= 0 || c.Scatter.Height <= 0 {
		return ErrInvalidPlotSize
	}
	for _, r := range [][2]float64{c.Scatter.InitialRadius, c.Scatter.UpdateRadius} {
		if r[0] <= 0 || r[1] < r[0] {
			return ErrInvalidRadius
		}
	}
	if c.Story.Trigger < 0 || c.Story.Trigger > 1 {
		return ErrInvalidTrigger
	}
	if c.Slider.Step <= 0 || c.Slider.Step > 100 {
		return ErrInvalidStep
	}
	if c.Theme != "dark" && c.Theme != "light" {
		return ErrInvalidTheme
	}

	switch c.TimezoneName {
	case "", "Local":
		c.Timezone = time.Local
	default:
		loc, err := time.LoadLocation(c.TimezoneName)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidTimezone, c.TimezoneName)
		}
		c.Timezone = loc
	}

	return nil
}

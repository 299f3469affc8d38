package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Storage  StorageConfig   `mapstructure:"storage"`
	Tracking TrackingConfig  `mapstructure:"tracking"`
	Logging  LoggingConfig   `mapstructure:"logging"`
	Player   PlayerConfig    `mapstructure:"player"`
	Lectures []LectureConfig `mapstructure:"lectures"`
}

// StorageConfig selects where saved progress lives
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // "bolt" or "sqlite"
	Path   string `mapstructure:"path"`   // Directory; empty keeps progress in memory
}

// TrackingConfig tunes how playback is turned into watched intervals
type TrackingConfig struct {
	MinUpdateSeconds float64 `mapstructure:"min_update_seconds"` // Playback needed before a periodic save
	SeekStepSeconds  float64 `mapstructure:"seek_step_seconds"`  // Jump size for seek keys
	TickMillis       int     `mapstructure:"tick_millis"`        // Player clock resolution
}

// PlayerConfig selects the external player used to open a lecture's source
type PlayerConfig struct {
	Command   string   `mapstructure:"command"`    // Empty uses the system default handler
	Args      []string `mapstructure:"args"`       // Extra arguments before the source
	StartFlag string   `mapstructure:"start_flag"` // e.g. "--start=" or "-ss "; detected for known players
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// LectureConfig describes one catalog entry
type LectureConfig struct {
	ID       string  `mapstructure:"id"`
	Title    string  `mapstructure:"title"`
	Src      string  `mapstructure:"src"`
	Duration float64 `mapstructure:"duration"` // Seconds
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: "bolt",
			Path:   defaultDataPath(),
		},
		Tracking: TrackingConfig{
			MinUpdateSeconds: 1,
			SeekStepSeconds:  10,
			TickMillis:       250,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Lectures: []LectureConfig{
			{
				ID:       "intro-to-react",
				Title:    "Introduction to React",
				Src:      "https://media.w3.org/2010/05/sintel/trailer_hd.mp4",
				Duration: 52.2,
			},
			{
				ID:       "advanced-hooks",
				Title:    "Advanced React Hooks",
				Src:      "https://media.w3.org/2010/05/bunny/movie.mp4",
				Duration: 60.1,
			},
		},
	}
}

// LectureList converts configured lectures to domain entities, skipping entries without an ID
func (c *Config) LectureList() []domain.Lecture {
	lectures := make([]domain.Lecture, 0, len(c.Lectures))
	for _, lc := range c.Lectures {
		if lc.ID == "" {
			continue
		}
		title := lc.Title
		if title == "" {
			title = lc.ID
		}
		lectures = append(lectures, domain.Lecture{
			ID:       lc.ID,
			Title:    title,
			Src:      lc.Src,
			Duration: lc.Duration,
		})
	}
	return lectures
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "lectures", "lectures.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "lectures", "lectures.log")
	}
}

// defaultDataPath returns the default directory for saved progress
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "lectures", "data")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "lectures", "data")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "lectures")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lectures")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), defaultConfigPath(), ".")
}

// LoadConfigFile loads configuration from an explicit file
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return loadConfig(v)
}

func loadConfig(v *viper.Viper, searchPaths ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(searchPaths) > 0 {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	// Environment variable overrides, e.g. LECTURES_STORAGE_DRIVER
	v.SetEnvPrefix("LECTURES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// A configured catalog replaces the demo lectures rather than merging by index
	if v.IsSet("lectures") {
		cfg.Lectures = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Tracking.TickMillis <= 0 {
		cfg.Tracking.TickMillis = DefaultConfig().Tracking.TickMillis
	}

	return cfg, nil
}

// bindEnvKeys registers scalar keys so AutomaticEnv applies during Unmarshal
// even when no config file mentions them.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"storage.driver",
		"storage.path",
		"tracking.min_update_seconds",
		"tracking.seek_step_seconds",
		"tracking.tick_millis",
		"logging.file",
		"logging.level",
		"player.command",
		"player.start_flag",
	} {
		_ = v.BindEnv(key)
	}
}

// ClearStorage removes all saved progress on disk
func ClearStorage(cfg *StorageConfig) error {
	if cfg.Path == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}

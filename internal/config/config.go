package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"heaterbuddy/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "HEATERBUDDY"

type Config struct {
	Log     LogConfig      `mapstructure:"log"`
	Server  ServerConfig   `mapstructure:"server"`
	DB      DBConfig       `mapstructure:"db"`
	Auth    AuthConfig     `mapstructure:"auth"`
	Heater  HeaterConfig   `mapstructure:"heater"`
	Weather WeatherConfig  `mapstructure:"weather"`
	Panel   PanelConfig    `mapstructure:"panel"`
	Metrics metrics.Config `mapstructure:"metrics"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig gates the /api group behind a bearer token when Enabled.
type AuthConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// HeaterConfig holds the setpoint bounds and the thermal model used by the
// simulator. Simulate is turned off when a real sensor pushes readings to
// POST /api/heater/reading.
type HeaterConfig struct {
	Simulate       bool          `mapstructure:"simulate"`
	MinF           int           `mapstructure:"min_f"`
	MaxF           int           `mapstructure:"max_f"`
	DefaultTargetF int           `mapstructure:"default_target_f"`
	AmbientF       float64       `mapstructure:"ambient_f"`
	WarmRate       float64       `mapstructure:"warm_rate_f_per_sec"`
	CoolRate       float64       `mapstructure:"cool_rate_f_per_sec"`
	SimTick        time.Duration `mapstructure:"sim_tick"`
}

type WeatherConfig struct {
	URL    string        `mapstructure:"url"`
	APIKey string        `mapstructure:"api_key"`
	City   string        `mapstructure:"city"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type PanelConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Token           string        `mapstructure:"token"`
	HeaterInterval  time.Duration `mapstructure:"heater_interval"`
	WeatherInterval time.Duration `mapstructure:"weather_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShowWeather     bool          `mapstructure:"show_weather"`
	LegacySensor    bool          `mapstructure:"legacy_sensor"`
	Ordering        string        `mapstructure:"ordering"`
	Slider          SliderConfig  `mapstructure:"slider"`
}

type SliderConfig struct {
	Min   int `mapstructure:"min"`
	Max   int `mapstructure:"max"`
	Value int `mapstructure:"value"`
	Step  int `mapstructure:"step"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("server.port", "8000")
	v.SetDefault("db.path", "heater.db")

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("heater.simulate", true)
	v.SetDefault("heater.min_f", 50)
	v.SetDefault("heater.max_f", 90)
	v.SetDefault("heater.default_target_f", 70)
	v.SetDefault("heater.ambient_f", 60.0)
	v.SetDefault("heater.warm_rate_f_per_sec", 0.05)
	v.SetDefault("heater.cool_rate_f_per_sec", 0.02)
	v.SetDefault("heater.sim_tick", time.Second)

	v.SetDefault("weather.url", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.city", "")
	v.SetDefault("weather.ttl", 10*time.Minute)

	v.SetDefault("panel.base_url", "http://localhost:8000")
	v.SetDefault("panel.token", "")
	v.SetDefault("panel.heater_interval", 2*time.Second)
	v.SetDefault("panel.weather_interval", 10*time.Minute)
	v.SetDefault("panel.request_timeout", 10*time.Second)
	v.SetDefault("panel.show_weather", true)
	v.SetDefault("panel.legacy_sensor", false)
	v.SetDefault("panel.ordering", "latest_issued")
	v.SetDefault("panel.slider.min", 50)
	v.SetDefault("panel.slider.max", 90)
	v.SetDefault("panel.slider.value", 70)
	v.SetDefault("panel.slider.step", 1)

	v.SetDefault("metrics.addr", "")
	v.SetDefault("metrics.namespace", "heaterbuddy.")
	v.SetDefault("metrics.tags", []string{})
}

// Load reads configs/config.yml (or the file named by path) with HEATERBUDDY_*
// env overrides. A .env file in the working directory is loaded first.
// A missing config file is not an error; defaults apply.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, os.ErrNotExist)) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Heater.MinF > c.Heater.MaxF {
		return fmt.Errorf("heater.min_f %d exceeds heater.max_f %d", c.Heater.MinF, c.Heater.MaxF)
	}
	if c.Heater.DefaultTargetF < c.Heater.MinF || c.Heater.DefaultTargetF > c.Heater.MaxF {
		return fmt.Errorf("heater.default_target_f %d outside [%d, %d]", c.Heater.DefaultTargetF, c.Heater.MinF, c.Heater.MaxF)
	}
	if c.Panel.Slider.Min > c.Panel.Slider.Max {
		return fmt.Errorf("panel.slider.min %d exceeds panel.slider.max %d", c.Panel.Slider.Min, c.Panel.Slider.Max)
	}
	if c.Auth.Enabled && c.Auth.SigningKey == "" {
		return errors.New("auth.signing_key is required when auth.enabled is true")
	}
	if c.Panel.HeaterInterval <= 0 || c.Panel.WeatherInterval <= 0 {
		return errors.New("panel intervals must be positive")
	}
	switch c.Panel.Ordering {
	case "latest_issued", "last_resolved":
	default:
		return fmt.Errorf("panel.ordering %q: want latest_issued or last_resolved", c.Panel.Ordering)
	}
	return nil
}

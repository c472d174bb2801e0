package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment, optionally seeded by a .env file in
// the working directory.
type Config struct {
	CenterLon     float64       `envconfig:"GEOFENCE_CENTER_LON" default:"21.8243"`
	CenterLat     float64       `envconfig:"GEOFENCE_CENTER_LAT" default:"39.0742"`
	SpanDeg       float64       `envconfig:"GEOFENCE_SPAN_DEG" default:"1.5"`
	FrameInterval time.Duration `envconfig:"GEOFENCE_FRAME_INTERVAL" default:"50ms"`

	DrawColor      string  `envconfig:"GEOFENCE_DRAW_COLOR" default:"#FF0000"`
	DrawAlpha      float64 `envconfig:"GEOFENCE_DRAW_ALPHA" default:"0.3"`
	ClampToSurface bool    `envconfig:"GEOFENCE_CLAMP" default:"false"`

	ExportPath  string `envconfig:"GEOFENCE_EXPORT_PATH" default:"geofences.geojson"`
	LogFile     string `envconfig:"GEOFENCE_LOG_FILE" default:"logs/geofence.log"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`
	MetricsAddr string `envconfig:"GEOFENCE_METRICS_ADDR"`
}

func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the map cannot work with.
func (c *Config) Validate() error {
	if c.CenterLat < -90 || c.CenterLat > 90 {
		return fmt.Errorf("center latitude %v out of range", c.CenterLat)
	}
	if c.CenterLon < -180 || c.CenterLon > 180 {
		return fmt.Errorf("center longitude %v out of range", c.CenterLon)
	}
	if c.SpanDeg <= 0 || c.SpanDeg > 360 {
		return fmt.Errorf("span %v must be in (0, 360]", c.SpanDeg)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame interval %v must be positive", c.FrameInterval)
	}
	if c.DrawAlpha < 0 || c.DrawAlpha > 1 {
		return fmt.Errorf("draw alpha %v must be in [0, 1]", c.DrawAlpha)
	}
	return nil
}

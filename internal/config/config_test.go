package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CenterLon != 21.8243 || cfg.CenterLat != 39.0742 {
		t.Errorf("center = %v,%v", cfg.CenterLon, cfg.CenterLat)
	}
	if cfg.FrameInterval != 50*time.Millisecond {
		t.Errorf("frame interval = %v", cfg.FrameInterval)
	}
	if cfg.DrawAlpha != 0.3 || cfg.ClampToSurface {
		t.Errorf("draw alpha %v clamp %v", cfg.DrawAlpha, cfg.ClampToSurface)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEOFENCE_CENTER_LAT", "10.5")
	t.Setenv("GEOFENCE_CLAMP", "true")
	t.Setenv("GEOFENCE_FRAME_INTERVAL", "1s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CenterLat != 10.5 || !cfg.ClampToSurface || cfg.FrameInterval != time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{CenterLat: 0, CenterLon: 0, SpanDeg: 1, FrameInterval: time.Millisecond, DrawAlpha: 0.5}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"lat", func(c *Config) { c.CenterLat = 91 }, true},
		{"lon", func(c *Config) { c.CenterLon = -181 }, true},
		{"span", func(c *Config) { c.SpanDeg = 0 }, true},
		{"frame", func(c *Config) { c.FrameInterval = 0 }, true},
		{"alpha", func(c *Config) { c.DrawAlpha = 1.5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

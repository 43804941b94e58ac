// Package config loads the command line settings of inspectreport from a
// YAML file, a .env file and the environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lvillar/inspectreport"
	"github.com/lvillar/inspectreport/blocks"
	"github.com/lvillar/inspectreport/fonts"
	"github.com/lvillar/inspectreport/imgplace"
)

// Environment variables read by Load.
const (
	EnvLogLevel    = "INSPECTREPORT_LOG_LEVEL"
	EnvLogFormat   = "INSPECTREPORT_LOG_FORMAT"
	EnvCode        = "INSPECTREPORT_VERIFICATION_CODE"
	EnvAttribution = "INSPECTREPORT_ATTRIBUTION"
	EnvWatermark   = "INSPECTREPORT_WATERMARK"
)

// Config holds all settings of the command line tool.
type Config struct {
	Font   string       `yaml:"font"` // TrueType file with Arabic coverage
	Layout LayoutConfig `yaml:"layout"`
	Report ReportConfig `yaml:"report"`
	Log    LogConfig    `yaml:"log"`
}

// LayoutConfig holds page geometry, in millimetres.
type LayoutConfig struct {
	Margin         float64 `yaml:"margin"`
	FooterReserve  float64 `yaml:"footer_reserve"`
	ImageAnchor    string  `yaml:"image_anchor"` // top-left or center
	MaxImagePixels int     `yaml:"max_image_pixels"`
}

// ReportConfig holds report content settings.
type ReportConfig struct {
	VerificationCode string `yaml:"verification_code"` // qr, datamatrix, pdf417 or none
	Attribution      string `yaml:"attribution"`
	Watermark        bool   `yaml:"watermark"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Font: fonts.DefaultPath,
		Layout: LayoutConfig{
			Margin:         inspectreport.DefaultMargin,
			FooterReserve:  inspectreport.DefaultFooterReserve,
			ImageAnchor:    "top-left",
			MaxImagePixels: imgplace.DefaultMaxPixels,
		},
		Report: ReportConfig{
			VerificationCode: "qr",
			Watermark:        true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path, if any, then envFile, if it exists, and
// applies environment overrides.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if envFile != "" {
		// existing environment variables win over the file
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(fonts.EnvFontPath); v != "" {
		cfg.Font = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvCode); v != "" {
		cfg.Report.VerificationCode = v
	}
	if v := os.Getenv(EnvAttribution); v != "" {
		cfg.Report.Attribution = v
	}
	if v := os.Getenv(EnvWatermark); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWatermark, err)
		}
		cfg.Report.Watermark = on
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Layout.Margin < 0 || c.Layout.Margin > 50 {
		return fmt.Errorf("margin must be between 0 and 50 mm, got %g", c.Layout.Margin)
	}
	if c.Layout.FooterReserve < 0 || c.Layout.FooterReserve > 60 {
		return fmt.Errorf("footer_reserve must be between 0 and 60 mm, got %g", c.Layout.FooterReserve)
	}
	if c.Layout.MaxImagePixels < 0 {
		return fmt.Errorf("max_image_pixels must not be negative")
	}
	if _, err := c.anchor(); err != nil {
		return err
	}
	if _, err := blocks.ParseCodeKind(c.Report.VerificationCode); err != nil {
		return err
	}
	return nil
}

func (c *Config) anchor() (imgplace.Anchor, error) {
	switch strings.ToLower(c.Layout.ImageAnchor) {
	case "", "top-left", "topleft":
		return imgplace.TopLeft, nil
	case "center", "centre":
		return imgplace.Center, nil
	}
	return imgplace.TopLeft, fmt.Errorf("invalid image_anchor: %s", c.Layout.ImageAnchor)
}

// EngineOptions converts the settings into engine options. The config must
// have passed Validate.
func (c *Config) EngineOptions() []inspectreport.Option {
	anchor, _ := c.anchor()
	code, _ := blocks.ParseCodeKind(c.Report.VerificationCode)
	m := c.Layout.Margin

	opts := []inspectreport.Option{
		inspectreport.WithMargins(m, m, m, m),
		inspectreport.WithFooterReserve(c.Layout.FooterReserve),
		inspectreport.WithImageAnchor(anchor),
		inspectreport.WithVerificationCode(code),
		inspectreport.WithWatermark(c.Report.Watermark),
	}
	if c.Font != "" {
		opts = append(opts, inspectreport.WithFontPath(c.Font))
	}
	if c.Layout.MaxImagePixels > 0 {
		opts = append(opts, inspectreport.WithMaxImagePixels(c.Layout.MaxImagePixels))
	}
	if c.Report.Attribution != "" {
		opts = append(opts, inspectreport.WithAttribution(c.Report.Attribution))
	}
	return opts
}

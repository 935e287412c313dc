package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. MP4PNG_FFMPEG_PATH.
const EnvPrefix = "MP4PNG"

// Config defines the converter invocation and UI settings.
type Config struct {
	FFmpegPath     string `mapstructure:"ffmpeg_path"`
	FramePattern   string `mapstructure:"frame_pattern"`
	FrameGlob      string `mapstructure:"frame_glob"`
	Format         string `mapstructure:"format"`
	VideoCodec     string `mapstructure:"video_codec"`
	ProgressTarget string `mapstructure:"progress_target"`
	FrameMarker    string `mapstructure:"frame_marker"`
	Overwrite      bool   `mapstructure:"overwrite"`

	InputExtensions []string `mapstructure:"input_extensions"`
	WindowWidth     float32  `mapstructure:"window_width"`
	WindowHeight    float32  `mapstructure:"window_height"`
	PreviewSize     int      `mapstructure:"preview_size"`
	LogLevel        string   `mapstructure:"log_level"`
}

// DefaultConfig returns the fixed conversion: one lossless PNG per frame named frame_0001.png,
// progress on stderr, native resolution.
func DefaultConfig() *Config {
	return &Config{
		FFmpegPath:      "ffmpeg",
		FramePattern:    "frame_%04d.png",
		FrameGlob:       "frame_*.png",
		Format:          "image2",
		VideoCodec:      "png",
		ProgressTarget:  "pipe:2",
		FrameMarker:     "frame=",
		Overwrite:       true, // ffmpeg would otherwise prompt on stdin
		InputExtensions: []string{".mp4"},
		WindowWidth:     600,
		WindowHeight:    500,
		PreviewSize:     160,
		LogLevel:        "info",
	}
}

// SetDefaults registers every DefaultConfig value with v so that env overrides are picked up
// by Unmarshal even when no config file exists.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("ffmpeg_path", d.FFmpegPath)
	v.SetDefault("frame_pattern", d.FramePattern)
	v.SetDefault("frame_glob", d.FrameGlob)
	v.SetDefault("format", d.Format)
	v.SetDefault("video_codec", d.VideoCodec)
	v.SetDefault("progress_target", d.ProgressTarget)
	v.SetDefault("frame_marker", d.FrameMarker)
	v.SetDefault("overwrite", d.Overwrite)
	v.SetDefault("input_extensions", d.InputExtensions)
	v.SetDefault("window_width", d.WindowWidth)
	v.SetDefault("window_height", d.WindowHeight)
	v.SetDefault("preview_size", d.PreviewSize)
	v.SetDefault("log_level", d.LogLevel)
}

// Load reads the configuration held by v (file, env, flags) on top of the defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that would produce a broken invocation.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.FFmpegPath) == "" {
		errs = append(errs, errors.New("ffmpeg_path must not be empty"))
	}
	if !strings.Contains(c.FramePattern, "%") {
		errs = append(errs, fmt.Errorf("frame_pattern %q has no sequence verb", c.FramePattern))
	}
	if c.FrameGlob == "" {
		errs = append(errs, errors.New("frame_glob must not be empty"))
	}
	if c.FrameMarker == "" {
		errs = append(errs, errors.New("frame_marker must not be empty"))
	}
	if c.PreviewSize < 0 {
		errs = append(errs, fmt.Errorf("preview_size %d is negative", c.PreviewSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

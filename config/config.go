package config

import (
	"time"

	"github.com/pitabwire/frame/config"
)

// ServiceConfig holds configuration for the text-to-speech service.
type ServiceConfig struct {
	config.ConfigurationDefault
	DefaultLanguage     string `envDefault:"ht"      env:"DEFAULT_LANGUAGE"`
	DefaultVoice        string `envDefault:"default" env:"DEFAULT_VOICE"`
	MaxTextLength       int    `envDefault:"5000"    env:"MAX_TEXT_LENGTH"`
	MaxBatchTexts       int    `envDefault:"10"      env:"MAX_BATCH_TEXTS"`
	SynthTimeoutSec     int    `envDefault:"30"      env:"SYNTH_TIMEOUT_SEC"`
	VoiceCataloguePath  string `envDefault:""        env:"VOICE_CATALOGUE_PATH"`
	WatchVoiceCatalogue bool   `envDefault:"false"   env:"WATCH_VOICE_CATALOGUE"`
}

// SynthTimeout returns the per-request synthesis deadline.
func (c *ServiceConfig) SynthTimeout() time.Duration {
	if c.SynthTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SynthTimeoutSec) * time.Second
}

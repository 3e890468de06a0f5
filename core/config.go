package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	BurstModeNone     = "none"
	BurstModeCoalesce = "coalesce"
	BurstModeDebounce = "debounce"
)

type WebhookConfig struct {
	Secret       string        `koanf:"secret" mapstructure:"secret"`
	Tolerance    time.Duration `koanf:"tolerance" mapstructure:"tolerance"`
	MaxBodyBytes int64         `koanf:"max_body_bytes" mapstructure:"max_body_bytes"`
}

type DecodeConfig struct {
	Validate         bool `koanf:"validate" mapstructure:"validate"`
	CheckPayloadType bool `koanf:"check_payload_type" mapstructure:"check_payload_type"`
}

type DeliveryConfig struct {
	ClaimLease   time.Duration `koanf:"claim_lease" mapstructure:"claim_lease"`
	MaxAttempts  int           `koanf:"max_attempts" mapstructure:"max_attempts"`
	RetryInitial time.Duration `koanf:"retry_initial" mapstructure:"retry_initial"`
	RetryMax     time.Duration `koanf:"retry_max" mapstructure:"retry_max"`
}

type BurstConfig struct {
	Mode   string        `koanf:"mode" mapstructure:"mode"`
	Window time.Duration `koanf:"window" mapstructure:"window"`
}

type Config struct {
	ServiceName string         `koanf:"service_name" mapstructure:"service_name"`
	Webhook     WebhookConfig  `koanf:"webhook" mapstructure:"webhook"`
	Decode      DecodeConfig   `koanf:"decode" mapstructure:"decode"`
	Delivery    DeliveryConfig `koanf:"delivery" mapstructure:"delivery"`
	Burst       BurstConfig    `koanf:"burst" mapstructure:"burst"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "paywebhooks",
		Webhook: WebhookConfig{
			Tolerance:    5 * time.Minute,
			MaxBodyBytes: 1 << 20,
		},
		Delivery: DeliveryConfig{
			ClaimLease:   30 * time.Second,
			MaxAttempts:  8,
			RetryInitial: time.Second,
			RetryMax:     5 * time.Minute,
		},
		Burst: BurstConfig{
			Mode:   BurstModeNone,
			Window: 2 * time.Second,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Webhook.Tolerance < 0 {
		return fmt.Errorf("core: webhook.tolerance must not be negative")
	}
	if c.Webhook.MaxBodyBytes < 0 {
		return fmt.Errorf("core: webhook.max_body_bytes must not be negative")
	}
	if c.Delivery.MaxAttempts < 0 {
		return fmt.Errorf("core: delivery.max_attempts must not be negative")
	}
	if c.Delivery.RetryInitial > 0 && c.Delivery.RetryMax > 0 && c.Delivery.RetryMax < c.Delivery.RetryInitial {
		return fmt.Errorf("core: delivery.retry_max must be >= delivery.retry_initial")
	}
	switch strings.ToLower(strings.TrimSpace(c.Burst.Mode)) {
	case "", BurstModeNone, BurstModeCoalesce, BurstModeDebounce:
	default:
		return fmt.Errorf("core: burst.mode %q is invalid", c.Burst.Mode)
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	ModeReply   = "reply"
	ModeForward = "forward"
	ModeBoth    = "both"
)

// Config holds all application configuration in a structured way.
// It is built once at startup and handed to every component that needs it.
type Config struct {
	App        AppConfig
	Gateway    GatewayConfig
	Webhook    WebhookConfig
	Forward    ForwardConfig
	Bot        BotConfig
	WorkerPool WorkerPoolConfig
	Monitor    MonitorConfig
}

type AppConfig struct {
	Version string
	Host    string
	Port    string
	Debug   bool
}

// GatewayConfig describes the Evolution API instance this relay talks to.
type GatewayConfig struct {
	BaseURL      string
	APIKey       string
	InstanceName string
	Timeout      time.Duration
	SendDelayMs  int
	Presence     string
	// Humanize derives options.delay from the reply text instead of SendDelayMs.
	Humanize bool
}

type WebhookConfig struct {
	Mode         string
	Async        bool
	IgnoreFromMe bool
}

type ForwardConfig struct {
	URLs    []string
	Secret  string
	Timeout time.Duration
}

type BotConfig struct {
	RulesFile string
}

type WorkerPoolConfig struct {
	Size      int
	QueueSize int
}

type MonitorConfig struct {
	BufferSize int
}

// Addr returns the listen address for the REST server.
func (c AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Replies reports whether inbound messages get a keyword reply.
func (c WebhookConfig) Replies() bool {
	return c.Mode == ModeReply || c.Mode == ModeBoth
}

// Forwards reports whether inbound messages are forwarded downstream.
func (c WebhookConfig) Forwards() bool {
	return c.Mode == ModeForward || c.Mode == ModeBoth
}

// LoadConfig builds the configuration from v. Environment variables are looked up through
// v (AutomaticEnv), so every key below maps to its upper-case env name.
func LoadConfig(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Version: v.GetString("app_version"),
			Host:    v.GetString("host_api"),
			Port:    v.GetString("port_api"),
			Debug:   v.GetBool("app_debug"),
		},
		Gateway: GatewayConfig{
			BaseURL:      strings.TrimRight(strings.TrimSpace(v.GetString("evolution_url")), "/"),
			APIKey:       strings.TrimSpace(v.GetString("authentication_api_key")),
			InstanceName: strings.TrimSpace(v.GetString("instance_name")),
			Timeout:      v.GetDuration("evolution_timeout"),
			SendDelayMs:  v.GetInt("send_delay_ms"),
			Presence:     v.GetString("send_presence"),
			Humanize:     v.GetBool("send_humanize"),
		},
		Webhook: WebhookConfig{
			Mode:         strings.ToLower(strings.TrimSpace(v.GetString("webhook_mode"))),
			Async:        v.GetBool("webhook_async"),
			IgnoreFromMe: v.GetBool("ignore_from_me"),
		},
		Forward: ForwardConfig{
			URLs:    splitList(v.GetString("forward_urls")),
			Secret:  v.GetString("forward_secret"),
			Timeout: v.GetDuration("forward_timeout"),
		},
		Bot: BotConfig{
			RulesFile: strings.TrimSpace(v.GetString("keyword_rules_file")),
		},
		WorkerPool: WorkerPoolConfig{
			Size:      v.GetInt("message_worker_pool_size"),
			QueueSize: v.GetInt("message_worker_queue_size"),
		},
		Monitor: MonitorConfig{
			BufferSize: v.GetInt("bot_monitor_buffer"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and cross-field constraints.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.Gateway,
		validation.Field(&c.Gateway.APIKey, validation.Required.Error("AUTHENTICATION_API_KEY is required")),
		validation.Field(&c.Gateway.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Gateway.InstanceName, validation.Required),
		validation.Field(&c.Gateway.SendDelayMs, validation.Min(0)),
		validation.Field(&c.Gateway.Timeout, validation.Min(time.Second).Error("EVOLUTION_TIMEOUT must be at least 1s (use a unit, e.g. 10s)")),
	)
	if err != nil {
		return fmt.Errorf("invalid gateway configuration: %w", err)
	}

	err = validation.ValidateStruct(&c.Webhook,
		validation.Field(&c.Webhook.Mode, validation.Required, validation.In(ModeReply, ModeForward, ModeBoth)),
	)
	if err != nil {
		return fmt.Errorf("invalid webhook configuration: %w", err)
	}

	err = validation.ValidateStruct(&c.Forward,
		validation.Field(&c.Forward.Timeout, validation.Min(time.Second).Error("FORWARD_TIMEOUT must be at least 1s (use a unit, e.g. 10s)")),
		validation.Field(&c.Forward.URLs,
			validation.When(c.Webhook.Forwards(), validation.Required.Error("FORWARD_URLS is required when WEBHOOK_MODE forwards")),
			validation.Each(is.URL),
		),
	)
	if err != nil {
		return fmt.Errorf("invalid forward configuration: %w", err)
	}

	return validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Port, validation.Required, is.Port),
	)
}

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_version", "v1.0.0")
	v.SetDefault("host_api", "0.0.0.0")
	v.SetDefault("port_api", "8000")
	v.SetDefault("app_debug", false)

	v.SetDefault("evolution_url", "http://localhost:8080")
	v.SetDefault("instance_name", "lucas")
	v.SetDefault("evolution_timeout", 10*time.Second)
	v.SetDefault("send_delay_ms", 1200)
	v.SetDefault("send_presence", "composing")
	v.SetDefault("send_humanize", false)

	v.SetDefault("webhook_mode", ModeReply)
	v.SetDefault("webhook_async", false)
	v.SetDefault("ignore_from_me", true)

	v.SetDefault("forward_urls", "")
	v.SetDefault("forward_secret", "")
	v.SetDefault("forward_timeout", 10*time.Second)

	v.SetDefault("keyword_rules_file", "")

	v.SetDefault("message_worker_pool_size", 4)
	v.SetDefault("message_worker_queue_size", 100)
	v.SetDefault("bot_monitor_buffer", 200)
}

// GetAllSettings returns the non-secret settings, used by the stats endpoint.
func (c *Config) GetAllSettings() map[string]any {
	return map[string]any{
		"app_version":    c.App.Version,
		"app_debug":      c.App.Debug,
		"evolution_url":  c.Gateway.BaseURL,
		"instance_name":  c.Gateway.InstanceName,
		"send_humanize":  c.Gateway.Humanize,
		"webhook_mode":   c.Webhook.Mode,
		"webhook_async":  c.Webhook.Async,
		"ignore_from_me": c.Webhook.IgnoreFromMe,
		"forward_urls":   len(c.Forward.URLs),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

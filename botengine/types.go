package botengine

// Rule maps a set of keywords to a fixed reply.
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Reply    string   `yaml:"reply" json:"reply"`
	// Stop ends processing of the message after the reply (no downstream forward).
	Stop bool `yaml:"stop" json:"stop"`
}

// BotInput is the text the engine reacts to.
type BotInput struct {
	SenderID   string `json:"sender_id"`
	InstanceID string `json:"instance_id"`
	Text       string `json:"text"`
	TraceID    string `json:"trace_id,omitempty"`
}

// BotOutput is the reply chosen for an input.
type BotOutput struct {
	Text     string `json:"text"`
	Rule     string `json:"rule"`
	Fallback bool   `json:"fallback"`
	Stop     bool   `json:"stop"`
}

const FallbackRuleName = "fallback"

package botengine

import (
	"strings"
)

// Engine picks a reply by case-insensitive substring match. Rules are evaluated in
// order and the first match wins; when nothing matches the fallback reply is used.
type Engine struct {
	rules    []Rule
	fallback string
}

func NewEngine(rules []Rule, fallback string) *Engine {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) == 0 {
			continue
		}
		r.Keywords = keywords
		normalized = append(normalized, r)
	}
	return &Engine{rules: normalized, fallback: fallback}
}

// NewDefaultEngine returns the engine with the built-in Portuguese menu.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultRules(), DefaultFallback)
}

// Reply never fails: every input gets exactly one reply.
func (e *Engine) Reply(input BotInput) BotOutput {
	text := strings.ToLower(input.Text)
	for _, r := range e.rules {
		for _, k := range r.Keywords {
			if strings.Contains(text, k) {
				return BotOutput{Text: r.Reply, Rule: r.Name, Stop: r.Stop}
			}
		}
	}
	return BotOutput{Text: e.fallback, Rule: FallbackRuleName, Fallback: true}
}

func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

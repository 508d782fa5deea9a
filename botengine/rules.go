package botengine

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	GreetingReply   = "Ola! Sou um bot. Diga como posso te ajudar"
	MenuReply       = "1. Planos\n2. Suporte\n3. Sair"
	FarewellReply   = "Até mais!"
	DefaultFallback = "Não entendi, Digite 'menu' para opções"
)

func DefaultRules() []Rule {
	return []Rule{
		{Name: "greeting", Keywords: []string{"oi", "ola"}, Reply: GreetingReply},
		{Name: "menu", Keywords: []string{"menu"}, Reply: MenuReply},
		{Name: "farewell", Keywords: []string{"sair"}, Reply: FarewellReply, Stop: true},
	}
}

type rulesFile struct {
	Rules    []Rule `yaml:"rules"`
	Fallback string `yaml:"fallback"`
}

// LoadRulesFile reads an engine definition from a YAML file:
//
//	rules:
//	  - name: greeting
//	    keywords: [oi, ola]
//	    reply: "Ola!"
//	fallback: "Digite 'menu'"
//
// A missing fallback keeps DefaultFallback.
func LoadRulesFile(path string) (*Engine, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var def rulesFile
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	for i, r := range def.Rules {
		if strings.TrimSpace(r.Reply) == "" {
			return nil, fmt.Errorf("rule %d (%s) has an empty reply", i, r.Name)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s) has no keywords", i, r.Name)
		}
	}
	if len(def.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s defines no rules", path)
	}

	fallback := def.Fallback
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallback
	}
	return NewEngine(def.Rules, fallback), nil
}

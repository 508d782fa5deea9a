package botengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEngine_Reply(t *testing.T) {
	engine := NewDefaultEngine()

	cases := []struct {
		text     string
		rule     string
		reply    string
		stop     bool
		fallback bool
	}{
		{"Oi", "greeting", GreetingReply, false, false},
		{"OLA, tudo bem?", "greeting", GreetingReply, false, false},
		{"quero ver o MENU", "menu", MenuReply, false, false},
		{"menu", "menu", MenuReply, false, false},
		{"quero sair", "farewell", FarewellReply, true, false},
		{"Teste final", FallbackRuleName, DefaultFallback, false, true},
		{"", FallbackRuleName, DefaultFallback, false, true},
	}

	for _, tc := range cases {
		out := engine.Reply(BotInput{Text: tc.text})
		assert.Equal(t, tc.rule, out.Rule, "text %q", tc.text)
		assert.Equal(t, tc.reply, out.Text, "text %q", tc.text)
		assert.Equal(t, tc.stop, out.Stop, "text %q", tc.text)
		assert.Equal(t, tc.fallback, out.Fallback, "text %q", tc.text)
	}
}

func TestEngine_FirstMatchWins(t *testing.T) {
	// "oi" is evaluated before "menu", so a message containing both gets the greeting.
	out := NewDefaultEngine().Reply(BotInput{Text: "oi, manda o menu"})
	assert.Equal(t, "greeting", out.Rule)

	// Substring semantics: "boi" contains "oi".
	out = NewDefaultEngine().Reply(BotInput{Text: "boi"})
	assert.Equal(t, "greeting", out.Rule)
}

func TestNewEngine_DropsRulesWithoutKeywords(t *testing.T) {
	engine := NewEngine([]Rule{
		{Name: "empty", Keywords: []string{"  ", ""}, Reply: "never"},
		{Name: "help", Keywords: []string{" AJUDA "}, Reply: "help!"},
	}, "fb")

	require.Len(t, engine.Rules(), 1)
	assert.Equal(t, []string{"ajuda"}, engine.Rules()[0].Keywords)
	assert.Equal(t, "help", engine.Reply(BotInput{Text: "preciso de ajuda"}).Rule)
	assert.Equal(t, "fb", engine.Reply(BotInput{Text: "nada"}).Text)
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - name: planos
    keywords: [planos, "1"]
    reply: "Nossos planos: basico e pro"
  - name: bye
    keywords: [tchau]
    reply: "Falou!"
    stop: true
fallback: "Use 'planos'"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	engine, err := LoadRulesFile(path)
	require.NoError(t, err)

	out := engine.Reply(BotInput{Text: "Quais os PLANOS?"})
	assert.Equal(t, "planos", out.Rule)
	assert.Equal(t, "Nossos planos: basico e pro", out.Text)

	out = engine.Reply(BotInput{Text: "tchau"})
	assert.True(t, out.Stop)

	out = engine.Reply(BotInput{Text: "oi"})
	assert.True(t, out.Fallback)
	assert.Equal(t, "Use 'planos'", out.Text)
}

func TestLoadRulesFile_DefaultFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - name: a\n    keywords: [x]\n    reply: y\n"), 0o644))

	engine, err := LoadRulesFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFallback, engine.Reply(BotInput{Text: "z"}).Text)
}

func TestLoadRulesFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRulesFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: [::"), 0o644))
	_, err = LoadRulesFile(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("fallback: x\n"), 0o644))
	_, err = LoadRulesFile(empty)
	assert.Error(t, err)

	noReply := filepath.Join(dir, "noreply.yaml")
	require.NoError(t, os.WriteFile(noReply, []byte("rules:\n  - name: a\n    keywords: [x]\n"), 0o644))
	_, err = LoadRulesFile(noReply)
	assert.Error(t, err)
}

package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinDefaults(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	for _, provider := range []string{"google", "groq", "Google"} {
		prompt, ok := DefaultFor(provider)
		if !ok || prompt == "" {
			t.Fatalf("expected a built-in prompt for %q", provider)
		}
	}

	if _, ok := DefaultFor("unknown-provider"); ok {
		t.Fatal("expected no prompt for an unregistered provider")
	}
}

func TestCatalogFileOverride(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	catalogPath := filepath.Join(t.TempDir(), "system_prompts.yaml")
	catalog := `prompts:
  google: Custom Google prompt.
  mistral: You watch brand mentions for Mistral models.
  "": ignored
  empty: "   "
`
	if err := os.WriteFile(catalogPath, []byte(catalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	t.Setenv("WATCHER_PROMPTS_FILE", catalogPath)

	prompt, ok := DefaultFor("google")
	if !ok || prompt != "Custom Google prompt." {
		t.Fatalf("expected file override for google, got %q (found=%v)", prompt, ok)
	}

	if _, ok := DefaultFor("empty"); ok {
		t.Fatal("blank prompts must be dropped")
	}

	prompt, ok = DefaultFor("mistral")
	if !ok || !strings.Contains(prompt, "Mistral") {
		t.Fatalf("expected new provider from file, got %q (found=%v)", prompt, ok)
	}

	// Built-ins not mentioned in the file survive.
	if _, ok := DefaultFor("groq"); !ok {
		t.Fatal("expected groq built-in to survive the file merge")
	}
}

// Package prompts holds the per-provider default system prompts used when a
// run config does not carry its own. Defaults ship built in and can be
// overridden by a YAML catalog file.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// GenericDefault is used for providers with no registered prompt.
const GenericDefault = "You are a helpful AI assistant."

var builtinDefaults = map[string]string{
	"google": "You are a helpful AI assistant. Answer the user's question directly and cite the brands you mention by their exact names.",
	"groq":   "You are a helpful AI assistant. Answer concisely and name the brands you mention exactly as they are spelled.",
}

type fileCatalog struct {
	Prompts map[string]string `yaml:"prompts"`
}

var (
	stateMu     sync.RWMutex
	initialized bool
	promptByID  map[string]string
)

// DefaultFor returns the default system prompt for a provider and whether one
// is registered. Callers falling back to GenericDefault should log it.
func DefaultFor(provider string) (string, bool) {
	ensureInitialized()

	stateMu.RLock()
	defer stateMu.RUnlock()

	prompt, ok := promptByID[normalizeProviderID(provider)]
	return prompt, ok
}

// Providers returns the provider IDs with a registered default prompt.
func Providers() []string {
	ensureInitialized()

	stateMu.RLock()
	defer stateMu.RUnlock()

	ids := make([]string, 0, len(promptByID))
	for id := range promptByID {
		ids = append(ids, id)
	}
	return ids
}

// ResetForTest resets in-memory state so tests can force reload.
func ResetForTest() {
	stateMu.Lock()
	defer stateMu.Unlock()
	initialized = false
	promptByID = nil
}

func ensureInitialized() {
	stateMu.RLock()
	ok := initialized
	stateMu.RUnlock()
	if ok {
		return
	}
	_ = load()
}

func load() error {
	catalog := make(map[string]string, len(builtinDefaults))
	for id, prompt := range builtinDefaults {
		catalog[id] = prompt
	}

	loadErr := applyConfigFile(catalog)

	stateMu.Lock()
	defer stateMu.Unlock()
	promptByID = catalog
	initialized = true
	return loadErr
}

func applyConfigFile(catalog map[string]string) error {
	path, err := resolveCatalogPath()
	if err != nil || path == "" {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read prompt catalog %q: %w", path, err)
	}

	var cfg fileCatalog
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse prompt catalog %q: %w", path, err)
	}

	for id, prompt := range cfg.Prompts {
		id = normalizeProviderID(id)
		prompt = strings.TrimSpace(prompt)
		if id == "" || prompt == "" {
			continue
		}
		catalog[id] = prompt
	}
	return nil
}

func resolveCatalogPath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("WATCHER_PROMPTS_FILE")); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	candidates := []string{
		"config/system_prompts.yaml",
		"/etc/llm-answer-watcher/system_prompts.yaml",
	}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, ".config", "llm-answer-watcher", "system_prompts.yaml"),
		)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func normalizeProviderID(id string) string {
	return strings.TrimSpace(strings.ToLower(id))
}

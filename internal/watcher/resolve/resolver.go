// Package resolve turns a schema-valid raw config plus caller-supplied API
// keys into the runtime configuration the job runner executes. Resolution is
// all-or-nothing: a RuntimeConfig existing means every model in it has a
// non-empty API key and system prompt.
package resolve

import (
	"fmt"
	"log"

	"github.com/lans/llm-answer-watcher/internal/providers/prompts"
	"github.com/lans/llm-answer-watcher/internal/watcher/schema"
)

// RuntimeModel is one fully resolved execution unit.
type RuntimeModel struct {
	Provider     string   `json:"provider"`
	ModelName    string   `json:"model_name"`
	APIKey       string   `json:"-"`
	SystemPrompt string   `json:"system_prompt"`
	Tools        []string `json:"tools,omitempty"`
	ToolChoice   string   `json:"tool_choice,omitempty"`
}

// RuntimeConfig is the validated aggregate handed to the job runner.
type RuntimeConfig struct {
	RunSettings schema.RunSettings `json:"run_settings"`
	Brands      []schema.Brand     `json:"brands"`
	Intents     []schema.Intent    `json:"intents"`
	Models      []RuntimeModel     `json:"models"`
}

// MissingKeyError reports a model whose provider has no supplied API key.
// It aborts resolution of the whole config.
type MissingKeyError struct {
	Provider string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("API key for provider %q not found", e.Provider)
}

// Resolve validates raw and produces a RuntimeConfig. Failure modes:
// *schema.ValidationError carrying every field violation, or
// *MissingKeyError for the first model whose provider key is absent.
// Model order is preserved; the runner depends on it for deterministic
// job sequencing.
func Resolve(raw *schema.RawConfig, apiKeys map[string]string) (*RuntimeConfig, error) {
	if fieldErrs := raw.Validate(); len(fieldErrs) > 0 {
		return nil, &schema.ValidationError{Errors: fieldErrs}
	}

	resolved := make([]RuntimeModel, 0, len(raw.RunSettings.Models))
	for _, m := range raw.RunSettings.Models {
		systemPrompt, ok := prompts.DefaultFor(m.Provider)
		if !ok {
			// Kept non-fatal, but no longer silent.
			log.Printf("⚠️ No default system prompt for provider %q, using generic fallback", m.Provider)
			systemPrompt = prompts.GenericDefault
		}

		apiKey := apiKeys[m.Provider]
		if apiKey == "" {
			return nil, &MissingKeyError{Provider: m.Provider}
		}

		resolved = append(resolved, RuntimeModel{
			Provider:     m.Provider,
			ModelName:    m.ModelName,
			APIKey:       apiKey,
			SystemPrompt: systemPrompt,
			Tools:        m.Tools,
			ToolChoice:   m.ToolChoice,
		})
	}

	return &RuntimeConfig{
		RunSettings: raw.RunSettings,
		Brands:      raw.Brands,
		Intents:     raw.Intents,
		Models:      resolved,
	}, nil
}

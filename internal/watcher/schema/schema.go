// Package schema defines the declarative watcher run configuration submitted
// by clients and its validation. Validation reports every violation at once
// instead of stopping at the first, so a user can fix a whole document in one
// round trip.
package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recognized tool_choice policies.
const (
	ToolChoiceNone     = "none"
	ToolChoiceAuto     = "auto"
	ToolChoiceRequired = "required"
)

// ModelEntry declares one model to query.
type ModelEntry struct {
	Provider   string   `yaml:"provider" json:"provider"`
	ModelName  string   `yaml:"model_name" json:"model_name"`
	Tools      []string `yaml:"tools" json:"tools,omitempty"`
	ToolChoice string   `yaml:"tool_choice" json:"tool_choice,omitempty"`
}

// RunSettings groups execution-level options of a run.
type RunSettings struct {
	Models []ModelEntry `yaml:"models" json:"models"`
}

// Brand is a tracked brand with its spelling variants.
type Brand struct {
	Name     string   `yaml:"name" json:"name"`
	Variants []string `yaml:"variants" json:"variants,omitempty"`
}

// Intent is one question the watcher asks every model.
type Intent struct {
	ID     string `yaml:"id" json:"id"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

// RawConfig is the untrusted declarative document as submitted. It carries no
// secrets; API keys travel separately and are merged in during resolution.
type RawConfig struct {
	RunSettings RunSettings `yaml:"run_settings" json:"run_settings"`
	Brands      []Brand     `yaml:"brands" json:"brands"`
	Intents     []Intent    `yaml:"intents" json:"intents"`
}

// FieldError is a single violation located by its document path.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found in one document.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Errors)+1)
	lines = append(lines, "configuration validation failed:")
	for _, fe := range e.Errors {
		lines = append(lines, fmt.Sprintf("  - %s: %s", fe.Path, fe.Message))
	}
	return strings.Join(lines, "\n")
}

// Parse decodes a YAML document into a RawConfig. A document that is not
// valid YAML at all is reported as one ValidationError at the document root.
func Parse(data []byte) (*RawConfig, error) {
	var cfg RawConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ValidationError{Errors: []FieldError{
			{Path: "(document)", Message: err.Error()},
		}}
	}
	return &cfg, nil
}

// Validate checks the document and returns every violation found.
// An empty slice means the config is schema-valid.
func (c *RawConfig) Validate() []FieldError {
	var errs []FieldError
	add := func(path, format string, args ...interface{}) {
		errs = append(errs, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if len(c.RunSettings.Models) == 0 {
		add("run_settings.models", "at least one model is required")
	}
	for i, m := range c.RunSettings.Models {
		base := fmt.Sprintf("run_settings.models[%d]", i)
		if strings.TrimSpace(m.Provider) == "" {
			add(base+".provider", "provider is required")
		}
		if strings.TrimSpace(m.ModelName) == "" {
			add(base+".model_name", "model_name is required")
		}
		switch m.ToolChoice {
		case "", ToolChoiceNone, ToolChoiceAuto, ToolChoiceRequired:
		default:
			add(base+".tool_choice", "must be one of none, auto, required; got %q", m.ToolChoice)
		}
		for j, tool := range m.Tools {
			if strings.TrimSpace(tool) == "" {
				add(fmt.Sprintf("%s.tools[%d]", base, j), "tool name must not be empty")
			}
		}
	}

	for i, b := range c.Brands {
		if strings.TrimSpace(b.Name) == "" {
			add(fmt.Sprintf("brands[%d].name", i), "brand name is required")
		}
	}

	seenIntents := make(map[string]struct{}, len(c.Intents))
	for i, intent := range c.Intents {
		base := fmt.Sprintf("intents[%d]", i)
		id := strings.TrimSpace(intent.ID)
		if id == "" {
			add(base+".id", "intent id is required")
		} else if _, dup := seenIntents[id]; dup {
			add(base+".id", "duplicate intent id %q", id)
		} else {
			seenIntents[id] = struct{}{}
		}
		if strings.TrimSpace(intent.Prompt) == "" {
			add(base+".prompt", "intent prompt is required")
		}
	}

	return errs
}

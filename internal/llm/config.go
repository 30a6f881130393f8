package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskExtract is the per-query field extraction and reply call.
	TaskExtract TaskType = "extract"
	// TaskLead pulls a structured lead out of a stored summary.
	TaskLead TaskType = "lead"
)

// Provider selects the completion backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider  Provider
	LogCalls  bool
	Endpoint  string
	Model     string
	APIKey    string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

var defaultModels = map[Provider]string{
	ProviderOllama: "llama3.2",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGemini: "gemini-2.5-flash",
}

// DefaultConfig returns an LLMConfig for a local Ollama instance.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:  ProviderOllama,
		LogCalls:  false,
		Endpoint:  "http://localhost:11434",
		Model:     defaultModels[ProviderOllama],
		TimeoutMs: 30000,
		Tasks: map[TaskType]TaskConfig{
			TaskExtract: {Temperature: 0.2, MaxTokens: 1024},
			TaskLead:    {Temperature: 0.0, MaxTokens: 256, TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("FRONTDESK_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(v)))
		if m, ok := defaultModels[cfg.Provider]; ok {
			cfg.Model = m
		}
		if cfg.Provider != ProviderOllama {
			cfg.Endpoint = ""
		}
	}
	if v := os.Getenv("FRONTDESK_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FRONTDESK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("FRONTDESK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	cfg.APIKey = firstEnv("FRONTDESK_LLM_API_KEY", providerKeyEnv(cfg.Provider))
	if v := os.Getenv("FRONTDESK_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskExtract, "FRONTDESK_LLM_EXTRACT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskLead, "FRONTDESK_LLM_LEAD_TIMEOUT_MS")

	return cfg
}

// Validate reports configuration that cannot produce a working client.
func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		if c.Endpoint == "" {
			return fmt.Errorf("ollama provider requires an endpoint")
		}
	case ProviderOpenAI, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("%s provider requires FRONTDESK_LLM_API_KEY", c.Provider)
		}
	default:
		return fmt.Errorf("unknown llm provider %q (want ollama, openai or gemini)", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("llm model is required")
	}
	return nil
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// resolveParams applies per-request overrides on top of the task defaults.
func (c LLMConfig) resolveParams(req GenerateRequest) (temp float64, maxTok int) {
	taskCfg := c.Tasks[req.Task]
	temp = taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok = taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}

func providerKeyEnv(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

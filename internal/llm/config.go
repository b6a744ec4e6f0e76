package llm

// Config selects and configures the generative backend.
// API keys come from configuration only; there are no embedded fallbacks.
type Config struct {
	// Provider picks the backend: "gemini", "openai", "anthropic" or "mock".
	Provider string `yaml:"provider"`

	Gemini    GeminiConfig    `yaml:"gemini"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
}

type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
	// BaseURL points the client at any OpenAI-compatible host
	// (Hugging Face router, OpenRouter, a local server). Empty means
	// the official API.
	BaseURL string `yaml:"baseUrl"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

const (
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

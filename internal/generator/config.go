package generator

// Config holds the settings for the external text-generation service.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	// Overridable so tests can point at a local httptest server.
	BaseURL string
	// APIKey authenticates every request as a bearer token.
	APIKey string
	// Model is the generation model name.
	Model string
	// MaxTokens caps the length of the generated text.
	MaxTokens int
	// Temperature controls sampling randomness.
	Temperature float64
}

// DefaultConfig provides the fixed generation parameters. There is exactly
// one call per request — no retries, no streaming — so these are the only
// knobs the gateway has.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-3.5-turbo",
		MaxTokens:   1000,
		Temperature: 0.7,
	}
}

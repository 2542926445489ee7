// internal/extraction/extract-preferences/config.go
package extractpreferences

const TaskType = "extract-preferences"

type Config struct {
	MaxTokens   int
	Temperature float64
}

func LoadConfig() *Config {
	return &Config{
		MaxTokens:   600,
		Temperature: 0.3,
	}
}

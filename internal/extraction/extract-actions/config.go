// internal/extraction/extract-actions/config.go
package extractactions

const TaskType = "extract-actions"

type Config struct {
	MaxTokens   int
	Temperature float64
}

func LoadConfig() *Config {
	return &Config{
		MaxTokens:   600,
		Temperature: 0.2,
	}
}

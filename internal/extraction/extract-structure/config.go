// internal/extraction/extract-structure/config.go
package extractstructure

const TaskType = "extract-structure"

type Config struct {
	MaxTokens   int
	Temperature float64
}

func LoadConfig() *Config {
	return &Config{
		MaxTokens:   800,
		Temperature: 0.3,
	}
}

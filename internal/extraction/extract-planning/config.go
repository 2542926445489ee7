// internal/extraction/extract-planning/config.go
package extractplanning

const TaskType = "extract-planning"

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

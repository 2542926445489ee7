// internal/extraction/extract-topics/config.go
package extracttopics

const TaskType = "extract-topics"

type Config struct {
	MaxTokens   int
	Temperature float64
}

func LoadConfig() *Config {
	return &Config{
		MaxTokens:   500,
		Temperature: 0.2,
	}
}

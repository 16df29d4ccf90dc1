package nli

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	Model         string
	BaseURL       string
	MaxInputChars *int
	TimeoutSecs   *int
}

func LoadConfigFromEnv() (*Config, error) {
	model := os.Getenv("NLI_MODEL")
	baseUrl := os.Getenv("NLI_BASE_URL")
	maxChars := os.Getenv("NLI_MAX_INPUT_CHARS")
	timeout := os.Getenv("NLI_TIMEOUT_SECONDS")

	if baseUrl == "" {
		return nil, errors.New("NLI_BASE_URL environment variable not set")
	}

	parseOptInt := func(s string) *int {
		if s == "" {
			return nil
		}
		val, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		return &val
	}

	return &Config{
		Model:         model,
		BaseURL:       baseUrl,
		MaxInputChars: parseOptInt(maxChars),
		TimeoutSecs:   parseOptInt(timeout),
	}, nil
}

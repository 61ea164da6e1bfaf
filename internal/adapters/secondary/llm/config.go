package llm

import "time"

type Config struct {
	ApiKey  string `envconfig:"KEY"`
	BaseURL string `envconfig:"BASE_URL" default:"https://api.openai.com/v1"`
	Model   string `envconfig:"MODEL" default:"gpt-4o"`
	Timeout int    `envconfig:"TIMEOUT" default:"90"` // в секундах, полный отчёт генерируется долго
}

func (c *Config) Enabled() bool {
	return c.ApiKey != ""
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 90 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

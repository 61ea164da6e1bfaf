package astroApi

import "time"

const (
	defaultBaseURL = "https://json.freeastrologyapi.com/western/planets"
	defaultTimeout = 15 * time.Second
)

type Config struct {
	BaseURL  string `envconfig:"BASE_URL" default:"https://json.freeastrologyapi.com/western/planets"`
	ApiKey   string `envconfig:"KEY"`
	Language string `envconfig:"LANGUAGE" default:"pt"`
	Timeout  int    `envconfig:"TIMEOUT" default:"15"` // в секундах
	SkipSSL  string `envconfig:"SKIP_SSL"`             // Railway требует строки вместо bool
}

// Enabled провайдер включается только при наличии ключа
func (c *Config) Enabled() bool {
	return c.ApiKey != ""
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return time.Duration(c.Timeout) * time.Second
}

func (c *Config) url() string {
	if c.BaseURL == "" {
		return defaultBaseURL
	}
	return c.BaseURL
}

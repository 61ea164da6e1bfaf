package geocoder

import "time"

type Config struct {
	OpenCageKey  string  `envconfig:"OPENCAGE_KEY"`
	OpenCageURL  string  `envconfig:"OPENCAGE_URL" default:"https://api.opencagedata.com/geocode/v1/json"`
	NominatimURL string  `envconfig:"NOMINATIM_URL" default:"https://nominatim.openstreetmap.org/search"`
	UserAgent    string  `envconfig:"USER_AGENT" default:"astrografia/1.0"`
	Language     string  `envconfig:"LANGUAGE" default:"pt"`
	NominatimRPS float64 `envconfig:"NOMINATIM_RPS" default:"1"` // политика Nominatim: не чаще 1 запроса в секунду
	Timeout      int     `envconfig:"TIMEOUT" default:"10"`      // в секундах
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

func (c *Config) language() string {
	if c.Language == "" {
		return "pt"
	}
	return c.Language
}

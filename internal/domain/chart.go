package domain

import (
	"fmt"
	"strings"
)

// ChartSource откуда получена карта
type ChartSource string

const (
	ChartSourceAPI      ChartSource = "api"
	ChartSourceFallback ChartSource = "fallback"
)

// Planet положение тела в карте, имена и знаки на португальском
type Planet struct {
	Name       string  `json:"name"`
	Sign       string  `json:"sign"`
	SignDegree float64 `json:"signDegree"`
	Degree     float64 `json:"degree"`
	Icon       string  `json:"icon,omitempty"`
}

// Ascendant восходящий знак
type Ascendant struct {
	Sign   string  `json:"sign"`
	Degree float64 `json:"degree"`
	Mode   string  `json:"mode,omitempty"`
}

// Chart карта в формате, одинаковом для точного провайдера и приближённого расчёта
type Chart struct {
	Planets   []Planet    `json:"planets"`
	Ascendant *Ascendant  `json:"ascendant"`
	Source    ChartSource `json:"source"`
	Reason    string      `json:"reason,omitempty"`
}

// Planet ищет тело по имени
func (c *Chart) Planet(name string) (Planet, bool) {
	for _, p := range c.Planets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Planet{}, false
}

// BirthData входные данные для построения карты
type BirthData struct {
	Date          string
	Time          string
	Latitude      *float64
	Longitude     *float64
	Timezone      *float64
	AscendantMode string
}

// Validate дата и время обязательны, формат не проверяется: приближённый расчёт деградирует сам
func (b BirthData) Validate() error {
	if strings.TrimSpace(b.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if strings.TrimSpace(b.Time) == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	return nil
}

// WellFormed true, если дата и время похожи на YYYY-MM-DD и HH:MM
func (b BirthData) WellFormed() bool {
	return strings.Contains(b.Date, "-") && strings.Contains(b.Time, ":")
}

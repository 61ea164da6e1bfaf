package astroApi

// ObservationConfig параметры расчёта на стороне провайдера
type ObservationConfig struct {
	ObservationPoint string `json:"observation_point"` // "topocentric"
	Ayanamsha        string `json:"ayanamsha"`         // "tropical"
	Language         string `json:"language"`
}

// PlanetsRequest тело запроса western/planets
type PlanetsRequest struct {
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	Date      int               `json:"date"`
	Hours     int               `json:"hours"`
	Minutes   int               `json:"minutes"`
	Seconds   int               `json:"seconds"`
	Latitude  *float64          `json:"latitude,omitempty"`
	Longitude *float64          `json:"longitude,omitempty"`
	Timezone  float64           `json:"timezone"`
	Config    ObservationConfig `json:"config"`
}

type localizedName struct {
	En string `json:"en"`
}

type zodiacSign struct {
	Name localizedName `json:"name"`
}

// PlanetItem одна точка ответа; Ascendant приходит тем же элементом
type PlanetItem struct {
	Planet     localizedName `json:"planet"`
	FullDegree float64       `json:"fullDegree"`
	NormDegree float64       `json:"normDegree"`
	Retrograde interface{}   `json:"isRetro,omitempty"` // провайдер отдаёт то bool, то строку
	ZodiacSign zodiacSign    `json:"zodiac_sign"`
}

func (p PlanetItem) Name() string {
	return p.Planet.En
}

func (p PlanetItem) Sign() string {
	return p.ZodiacSign.Name.En
}

// PlanetsResponse ответ western/planets
type PlanetsResponse struct {
	StatusCode int          `json:"statusCode,omitempty"`
	Output     []PlanetItem `json:"output"`
	RawJSON    string       `json:"-"`
}

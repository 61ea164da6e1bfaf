package domain

// Coordinates результат геокодирования
type Coordinates struct {
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Timezone *float64 `json:"timezone,omitempty"` // смещение от UTC в часах
	TZName   string   `json:"tzName,omitempty"`
	Provider string   `json:"-"`
}

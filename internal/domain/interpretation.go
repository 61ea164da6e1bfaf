package domain

// Theme тема интерпретации раздела
type Theme string

const (
	ThemeLove         Theme = "amor"
	ThemeCareer       Theme = "carreira"
	ThemeFamily       Theme = "familia"
	ThemeSpirituality Theme = "espiritualidade"
	ThemeMission      Theme = "missao"
	ThemeChallenges   Theme = "desafios"
)

var themeFocus = map[Theme]string{
	ThemeLove:         "vida amorosa",
	ThemeCareer:       "vida profissional",
	ThemeFamily:       "relações familiares",
	ThemeSpirituality: "caminho espiritual",
	ThemeMission:      "missão de vida",
	ThemeChallenges:   "desafios e bloqueios pessoais",
}

// Focus описание темы для текста запроса, false для неизвестной темы
func (t Theme) Focus() (string, bool) {
	f, ok := themeFocus[t]
	return f, ok
}

// SectionRequest запрос интерпретации одного раздела
type SectionRequest struct {
	Theme     Theme
	Name      string
	Planets   []Planet
	Ascendant *Ascendant
}

// Interpretation сгенерированный текст
type Interpretation struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Section  string `json:"section"`
}

package texts

import (
	"fmt"
	"strings"
)

const (
	SectionSystem = "Você é um astrólogo direto, acolhedor e sensível."

	SectionPrompt = "Você é um astrólogo experiente. Com base nas posições planetárias abaixo, " +
		"escreva um texto breve (1 parágrafo) sobre %s para %s:\n\n%s\n%s\n\n" +
		"Use linguagem acolhedora, objetiva, inspiradora e sem termos técnicos. " +
		"Seja sensível e otimista. Responda em Markdown."

	SectionEmpty = "⚠️ Nenhum texto gerado."

	DefaultPersonName = "a pessoa"
)

const (
	PerspectiveSystem = "Você é um astrólogo acolhedor que responde reflexões pessoais com delicadeza."

	PerspectivePrompt = "Uma pessoa compartilhou a seguinte reflexão:\n\n\"%s\"\n\n%s" +
		"Escreva uma resposta breve (1 a 2 parágrafos), acolhedora e sem termos técnicos, " +
		"que ajude a pessoa a olhar para dentro com gentileza. Responda em Markdown."

	PerspectiveThanks      = "**Obrigado por compartilhar sua perspectiva.**"
	PerspectiveSignature   = "Você é nativo de **%s**, um signo que demonstra características de coragem e autenticidade. Seu Ascendente em **%s** adiciona uma camada de nuance à forma como se apresenta ao mundo."
	PerspectiveDeep        = "Sua mensagem revela profundidade e introspecção. Use este momento para olhar para dentro, honrar seus sentimentos e confiar no seu caminho."
	PerspectiveBrief       = "Mesmo os pensamentos mais breves possuem significado. Permita‑se sentir plenamente e avançar com gentileza."
	PerspectiveFailed      = "Erro ao gerar interpretação."
	PerspectiveDeepMinimum = 20
)

const (
	ReportSystem = "Você é um astrólogo experiente e acolhedor."

	ReportPrompt = "Você é um astrólogo experiente e sensível. Gere um relatório astrológico personalizado com base nos seguintes dados:\n\n" +
		"- Nome: %s\n" +
		"- Data de nascimento: %s\n" +
		"- Hora: %s\n" +
		"- Local: %s\n" +
		"%s\n" +
		"Crie um conteúdo resumido e reflexivo com cerca de 2 a 3 páginas em estilo Markdown. Divida o texto com os seguintes títulos:\n\n" +
		"## Introdução\n" +
		"## Sol, Lua e Ascendente\n" +
		"## Temas de Vida\n" +
		"## Relações e Emoções\n" +
		"## Caminho Pessoal\n\n" +
		"Use linguagem fluida e acolhedora, com tom inspirador. **Não inclua imagens, mapas ou gráficos.** Foque apenas em texto."

	ReportEmpty = "⚠️ Não foi possível gerar o relatório."

	ReportTitle = "Mapa astral de %s"
)

// PlanetLine "Sol em Gêmeos (23.74°)"
func PlanetLine(name, sign string, degree float64) string {
	return fmt.Sprintf("%s em %s (%s°)", name, sign, formatDegree(degree))
}

// AscendantLine "Ascendente em Escorpião (7.5°)."
func AscendantLine(sign string, degree float64) string {
	return fmt.Sprintf("Ascendente em %s (%s°).", sign, formatDegree(degree))
}

// FormatSection текст запроса для раздела интерпретации
func FormatSection(focus, name string, planetLines []string, ascLine string) string {
	return fmt.Sprintf(SectionPrompt, focus, name, strings.Join(planetLines, ", "), ascLine)
}

// FormatPerspective текст запроса для отклика на перспективу
func FormatPerspective(text, chartLine string) string {
	if chartLine != "" {
		chartLine += "\n\n"
	}
	return fmt.Sprintf(PerspectivePrompt, text, chartLine)
}

// FormatReport текст запроса полного отчёта; chartLines добавляются блоком после данных рождения
func FormatReport(name, date, clock, place string, chartLines []string) string {
	extra := ""
	if len(chartLines) > 0 {
		extra = "- Posições calculadas: " + strings.Join(chartLines, ", ") + "\n"
	}
	return fmt.Sprintf(ReportPrompt, name, date, clock, place, extra)
}

// formatDegree не более двух знаков после запятой, без хвостовых нулей
func formatDegree(d float64) string {
	s := fmt.Sprintf("%.2f", d)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

package interpretController

import "github.com/admin/astrografia/internal/domain"

type SectionReq struct {
	Tema      string            `json:"tema"`
	Planetas  []domain.Planet   `json:"planetas"`
	Nome      string            `json:"nome"`
	Ascendant *domain.Ascendant `json:"ascendant"`
}

type PerspectiveReq struct {
	Text  string        `json:"text"`
	Astro *domain.Chart `json:"astro"`
}

package perspectivesController

import "github.com/admin/astrografia/internal/domain"

type AddPerspectiveReq struct {
	Text   string        `json:"text"`
	Author string        `json:"author"`
	Astro  *domain.Chart `json:"astro"`
}

type PerspectivesPageResp struct {
	Perspectives []*domain.Perspective `json:"perspectives"`
	Total        int                   `json:"total"`
	Pages        int                   `json:"pages"`
	CurrentPage  int                   `json:"current_page"`
	PerPage      int                   `json:"per_page"`
	HasNext      bool                  `json:"has_next"`
	HasPrev      bool                  `json:"has_prev"`
}

func newPageResp(p *domain.PerspectivePage) PerspectivesPageResp {
	return PerspectivesPageResp{
		Perspectives: p.Items,
		Total:        p.Total,
		Pages:        p.Pages(),
		CurrentPage:  p.Page,
		PerPage:      p.PerPage,
		HasNext:      p.HasNext(),
		HasPrev:      p.HasPrev(),
	}
}

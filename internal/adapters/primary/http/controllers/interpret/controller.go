package interpretController

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/admin/astrografia/internal/adapters/primary/http/controllers/response"
	"github.com/admin/astrografia/internal/adapters/primary/http/middlewares"
	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/usecase"
)

const (
	msgInvalidParams = "Parâmetros ausentes ou inválidos."
	msgInternal      = "Erro interno ao gerar interpretação."
)

type Controller struct {
	InterpretService usecase.IInterpretUseCase
	Log              *slog.Logger
}

func New(interpretService usecase.IInterpretUseCase, log *slog.Logger) *Controller {
	return &Controller{
		InterpretService: interpretService,
		Log:              log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/interpretSection", c.handleSection)
		api.POST("/interpretPerspective", c.handlePerspective)
	}

	middlewares.RestrictMethods(router, "/api/interpretSection", http.MethodPost)
	middlewares.RestrictMethods(router, "/api/interpretPerspective", http.MethodPost)
}

func (c *Controller) handleSection(ctx *gin.Context) {
	var req SectionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidParams})
		return
	}

	result, err := c.InterpretService.Section(ctx.Request.Context(), domain.SectionRequest{
		Theme:     domain.Theme(req.Tema),
		Name:      req.Nome,
		Planets:   req.Planetas,
		Ascendant: req.Ascendant,
	})
	if err != nil {
		status := response.Status(err)
		if status == http.StatusBadRequest {
			ctx.JSON(status, gin.H{"error": msgInvalidParams})
			return
		}
		c.Log.ErrorContext(ctx.Request.Context(), "failed to interpret section", "theme", req.Tema, "error", err)
		ctx.JSON(status, gin.H{"error": msgInternal})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *Controller) handlePerspective(ctx *gin.Context) {
	var req PerspectiveReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid `text` field."})
		return
	}

	result, err := c.InterpretService.Perspective(ctx.Request.Context(), req.Text, req.Astro)
	if err != nil {
		c.Log.ErrorContext(ctx.Request.Context(), "failed to interpret perspective", "error", err)
		ctx.JSON(response.Status(err), gin.H{"error": msgInternal})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"html": result.HTML})
}

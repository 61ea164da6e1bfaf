package astroController

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/admin/astrografia/internal/adapters/primary/http/controllers/response"
	"github.com/admin/astrografia/internal/adapters/primary/http/middlewares"
	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/usecase"
)

type Controller struct {
	AstroService usecase.IAstroUseCase
	Log          *slog.Logger
}

func New(astroService usecase.IAstroUseCase, log *slog.Logger) *Controller {
	return &Controller{
		AstroService: astroService,
		Log:          log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/getAstroData", c.handleChart)
		api.POST("/getPositions", c.handleChart)
		api.GET("/getCoordinates", c.handleCoordinates)
		api.GET("/positions/current", c.handleCurrentPositions)
	}

	middlewares.RestrictMethods(router, "/api/getAstroData", http.MethodPost)
	middlewares.RestrictMethods(router, "/api/getPositions", http.MethodPost)
	middlewares.RestrictMethods(router, "/api/getCoordinates", http.MethodGet)
}

// handleChart карта рождения; отказ точного провайдера отдаётся как source=fallback
func (c *Controller) handleChart(ctx *gin.Context) {
	var req ChartReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	chart, err := c.AstroService.Chart(ctx.Request.Context(), req.BirthData())
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAscendantMode) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ascendantMode: use time-fraction or sidereal"})
			return
		}
		status := response.Status(err)
		if status == http.StatusBadRequest {
			ctx.JSON(status, gin.H{"error": "Missing required fields: date and time"})
			return
		}
		c.Log.ErrorContext(ctx.Request.Context(), "failed to build chart", "error", err)
		ctx.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, chart)
}

func (c *Controller) handleCoordinates(ctx *gin.Context) {
	place := strings.TrimSpace(ctx.Query("place"))
	if place == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter `place`."})
		return
	}

	coords, err := c.AstroService.Coordinates(ctx.Request.Context(), place)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, coords)
	case errors.Is(err, domain.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Unable to geocode location."})
	default:
		c.Log.ErrorContext(ctx.Request.Context(), "failed to geocode place", "place", place, "error", err)
		ctx.JSON(response.Status(err), gin.H{"error": "Internal server error"})
	}
}

func (c *Controller) handleCurrentPositions(ctx *gin.Context) {
	chart, err := c.AstroService.CurrentPositions(ctx.Request.Context())
	if err != nil {
		c.Log.ErrorContext(ctx.Request.Context(), "failed to get current positions", "error", err)
		ctx.JSON(response.Status(err), gin.H{"error": "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, chart)
}

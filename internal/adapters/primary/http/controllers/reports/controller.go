package reportsController

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/admin/astrografia/internal/adapters/primary/http/controllers/response"
	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/usecase"
)

type Controller struct {
	ReportService usecase.IReportUseCase
	Log           *slog.Logger
}

func New(reportService usecase.IReportUseCase, log *slog.Logger) *Controller {
	return &Controller{
		ReportService: reportService,
		Log:           log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/reports")
	{
		api.POST("", c.handleRequest)
		api.GET("/:id", c.handleGet)
		api.GET("/:id/html", c.handleDocument)
	}
}

// handleRequest принимает заявку; отчёт генерируется асинхронно
func (c *Controller) handleRequest(ctx *gin.Context) {
	var req domain.ReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Dados incompletos."})
		return
	}

	report, err := c.ReportService.Request(ctx.Request.Context(), req)
	if err != nil {
		status := response.Status(err)
		if status == http.StatusBadRequest {
			ctx.JSON(status, gin.H{"error": "Dados incompletos."})
			return
		}
		c.Log.ErrorContext(ctx.Request.Context(), "failed to request report", "error", err)
		ctx.JSON(status, gin.H{"error": "Erro interno ao gerar o relatório."})
		return
	}

	ctx.JSON(http.StatusAccepted, report)
}

func (c *Controller) handleGet(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	report, err := c.ReportService.Get(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, id, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func (c *Controller) handleDocument(ctx *gin.Context) {
	id, ok := c.parseID(ctx)
	if !ok {
		return
	}

	doc, err := c.ReportService.Document(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, id, err)
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

func (c *Controller) parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) respondError(ctx *gin.Context, id uuid.UUID, err error) {
	status := response.Status(err)
	if status == http.StatusNotFound {
		ctx.JSON(status, gin.H{"error": "report not found"})
		return
	}
	c.Log.ErrorContext(ctx.Request.Context(), "failed to load report", "report_id", id, "error", err)
	ctx.JSON(status, gin.H{"error": "internal server error"})
}

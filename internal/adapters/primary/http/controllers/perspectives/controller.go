package perspectivesController

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/admin/astrografia/internal/adapters/primary/http/controllers/response"
	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/usecase"
)

const AuthorHeader = "X-Author"

type Controller struct {
	PerspectiveService usecase.IPerspectiveUseCase
	Log                *slog.Logger
}

func New(perspectiveService usecase.IPerspectiveUseCase, log *slog.Logger) *Controller {
	return &Controller{
		PerspectiveService: perspectiveService,
		Log:                log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/perspectives", c.handleAdd)
		api.GET("/perspectives", c.handleList)
	}
}

func (c *Controller) handleAdd(ctx *gin.Context) {
	var req AddPerspectiveReq
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Campo 'text' é obrigatório para adicionar perspectiva."})
		return
	}

	author := ctx.GetHeader(AuthorHeader)
	if author == "" {
		author = req.Author
	}

	p, err := c.PerspectiveService.Add(ctx.Request.Context(), author, req.Text, req.Astro)
	if err != nil {
		c.Log.ErrorContext(ctx.Request.Context(), "failed to add perspective", "error", err)
		ctx.JSON(response.Status(err), gin.H{"msg": "Erro interno ao salvar perspectiva"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"msg":         "Perspectiva adicionada com sucesso.",
		"perspective": p,
	})
}

func (c *Controller) handleList(ctx *gin.Context) {
	author := ctx.GetHeader(AuthorHeader)
	if author == "" {
		author = ctx.Query("author")
	}

	page, err := c.PerspectiveService.List(ctx.Request.Context(), author,
		queryInt(ctx, "page", 1),
		queryInt(ctx, "per_page", domain.DefaultPerPage))
	if err != nil {
		c.Log.ErrorContext(ctx.Request.Context(), "failed to list perspectives", "error", err)
		ctx.JSON(response.Status(err), gin.H{"msg": "Erro interno ao listar perspectivas"})
		return
	}

	ctx.JSON(http.StatusOK, newPageResp(page))
}

// queryInt значение по умолчанию, если параметр отсутствует или не число
func queryInt(ctx *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(ctx.Query(key))
	if err != nil {
		return def
	}
	return v
}

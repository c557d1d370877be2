package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"prompt-catalog/internal/domains/prompt/model"
	"prompt-catalog/internal/domains/prompt/selector"
	"prompt-catalog/internal/domains/prompt/service"
	"prompt-catalog/internal/infrastructure/render"
	"prompt-catalog/internal/shared/response"
)

// =====================================================
// PROMPT HANDLER
// =====================================================

type PromptHandler struct {
	promptService service.ServiceInterface
	differ        render.Differ
	renderer      render.Renderer
}

func NewPromptHandler(
	promptService service.ServiceInterface,
	differ render.Differ,
	renderer render.Renderer,
) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		differ:        differ,
		renderer:      renderer,
	}
}

// RegisterRoutes mounts the prompt endpoints on the given group
func (h *PromptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prompts := rg.Group("/prompts")
	{
		prompts.GET("", h.ListPrompts)
		prompts.POST("", h.CreatePrompt)
		prompts.GET("/new", h.GetCreateDefaults)
		prompts.GET("/:id", h.GetPrompt)
		prompts.PUT("/:id", h.UpdatePromptDetails)
		prompts.GET("/:id/edit", h.GetEditDefaults)
		prompts.GET("/:id/view", h.GetDetailView)
		prompts.GET("/:id/versions", h.ListVersions)
		prompts.POST("/:id/versions", h.AddVersion)
		prompts.GET("/:id/versions/:number", h.GetVersion)
		prompts.POST("/:id/comments", h.AddComment)
		prompts.POST("/:id/ratings", h.AddRating)
	}

	rg.GET("/stats", h.GetStatistics)
}

// =====================================================
// CATALOG ENDPOINTS
// =====================================================

// ListPrompts returns the catalog, newest prompt first
// GET /api/v1/prompts
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	catalog := h.promptService.ListPrompts(c.Request.Context())

	response.SuccessWithMeta(c, http.StatusOK, catalog.Prompts, &response.Meta{
		Revision: catalog.Revision,
		Total:    len(catalog.Prompts),
	})
}

// CreatePrompt creates a prompt with its first version
// POST /api/v1/prompts
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Call service
	prompt, err := h.promptService.CreatePrompt(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusCreated, prompt)
}

// GetPrompt gets prompt by ID
// GET /api/v1/prompts/:id
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	prompt, err := h.promptService.GetPrompt(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, prompt)
}

// UpdatePromptDetails edits title, author, description and tags
// PUT /api/v1/prompts/:id
func (h *PromptHandler) UpdatePromptDetails(c *gin.Context) {
	var req model.UpdatePromptDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	prompt, err := h.promptService.UpdatePromptDetails(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, prompt)
}

// GetStatistics gets catalog counters
// GET /api/v1/stats
func (h *PromptHandler) GetStatistics(c *gin.Context) {
	response.Success(c, http.StatusOK, h.promptService.GetStatistics(c.Request.Context()))
}

// =====================================================
// EDIT FORM ENDPOINTS
// =====================================================

// GetCreateDefaults returns the empty form for a new prompt
// GET /api/v1/prompts/new
func (h *PromptHandler) GetCreateDefaults(c *gin.Context) {
	form, err := h.promptService.GetEditDefaults(c.Request.Context(), "", model.EditModeCreate)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, form)
}

// GetEditDefaults returns the pre-filled form for editing a prompt
// GET /api/v1/prompts/:id/edit?mode=edit_details|add_version
func (h *PromptHandler) GetEditDefaults(c *gin.Context) {
	mode := model.EditMode(c.DefaultQuery("mode", string(model.EditModeEditDetails)))

	form, err := h.promptService.GetEditDefaults(c.Request.Context(), c.Param("id"), mode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, form)
}

// =====================================================
// VERSION ENDPOINTS
// =====================================================

// ListVersions lists versions newest first
// GET /api/v1/prompts/:id/versions
func (h *PromptHandler) ListVersions(c *gin.Context) {
	versions, err := h.promptService.ListVersions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, versions)
}

// GetVersion gets one version by number
// GET /api/v1/prompts/:id/versions/:number
func (h *PromptHandler) GetVersion(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_VERSION", "Version number must be an integer")
		return
	}

	version, err := h.promptService.GetVersion(c.Request.Context(), c.Param("id"), number)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, version)
}

// AddVersion appends a new version
// POST /api/v1/prompts/:id/versions
func (h *PromptHandler) AddVersion(c *gin.Context) {
	var req model.AddVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	prompt, err := h.promptService.AddVersion(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, prompt)
}

// GetDetailView resolves the version to display and the optional diff
// GET /api/v1/prompts/:id/view?version=N&diff=true
func (h *PromptHandler) GetDetailView(c *gin.Context) {
	// Step 1: Load prompt
	prompt, err := h.promptService.GetPrompt(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Step 2: Replay the selection
	sel := selector.New()
	sel.SelectPrompt(*prompt)

	if raw := c.Query("version"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			response.ErrorResponse(c, http.StatusBadRequest, "INVALID_VERSION", "Version number must be an integer")
			return
		}
		sel.SelectVersion(number)
	}

	if showDiff, _ := strconv.ParseBool(c.Query("diff")); showDiff {
		sel.ToggleDiff(*prompt)
	}

	// Step 3: Assemble view
	view := selector.BuildDetailView(*prompt, sel, h.differ, h.renderer)
	response.Success(c, http.StatusOK, view)
}

// =====================================================
// FEEDBACK ENDPOINTS
// =====================================================

// AddComment appends a comment
// POST /api/v1/prompts/:id/comments
func (h *PromptHandler) AddComment(c *gin.Context) {
	var req model.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	prompt, err := h.promptService.AddComment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, prompt)
}

// AddRating rates a prompt
// POST /api/v1/prompts/:id/ratings
func (h *PromptHandler) AddRating(c *gin.Context) {
	var req model.AddRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	prompt, err := h.promptService.AddRating(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, prompt)
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func (h *PromptHandler) handleError(c *gin.Context, err error) {
	statusCode, errCode := mapPromptError(err)

	switch {
	case statusCode >= http.StatusInternalServerError:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Prompt request failed")
		response.ErrorResponse(c, statusCode, errCode, "Internal server error")
		return
	case statusCode == http.StatusNotFound:
		log.Warn().Str("path", c.Request.URL.Path).Msg(err.Error())
	}

	response.ErrorResponse(c, statusCode, errCode, err.Error())
}

// mapPromptError maps prompt error to HTTP status code
func mapPromptError(err error) (int, string) {
	var promptErr *model.PromptError
	if errors.As(err, &promptErr) {
		switch promptErr.Code {
		case model.ErrCodePromptNotFound, model.ErrCodeVersionNotFound:
			return http.StatusNotFound, promptErr.Code
		case model.ErrCodeInvalidInput:
			return http.StatusBadRequest, promptErr.Code
		case model.ErrCodeDuplicatePrompt:
			return http.StatusConflict, promptErr.Code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

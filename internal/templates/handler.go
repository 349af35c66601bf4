package templates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/validation"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches template routes. Reads are public; authMW guards the
// mutations.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/templates")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	admin := g.Group("", authMW, middleware.RequireAdmin())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.remove)
}

type updateRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	PreviewImage *string `json:"previewImage"`
	IsPremium    *bool   `json:"isPremium"`
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.ServerError(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("templateId", id)
	t, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, t)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Invalid(c, validation.Single("body", "Invalid JSON body"))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), middleware.IdentityFromContext(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("templateId", t.ID)
	respond.OK(c, t)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("templateId", id)
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Invalid(c, validation.Single("body", "Invalid JSON body"))
		return
	}
	patch := Patch{
		Name:         req.Name,
		Description:  req.Description,
		PreviewImage: req.PreviewImage,
		IsPremium:    req.IsPremium,
	}
	t, err := h.Svc.Update(c.Request.Context(), middleware.IdentityFromContext(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, t)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	c.Set("templateId", id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.IdentityFromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	respond.Msg(c, "Template removed")
}

func writeError(c *gin.Context, err error) {
	if verr, ok := validation.AsError(err); ok {
		respond.Invalid(c, verr)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Template not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusUnauthorized, "forbidden", "Not authorized as admin", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusBadRequest, "already_exists", "Template already exists", nil)
	default:
		respond.ServerError(c, err)
	}
}

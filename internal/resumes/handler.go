package resumes

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

// RegisterRoutes attaches resume routes. Every route requires authMW.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/resumes", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// list answers the caller's resumes, newest first, each with its template's
// id, name and preview image. A resume whose template has since been deleted
// still lists, with "template": null.
func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, items)
}

// get answers one owned resume with the full template, or "template": null when
// the template was deleted after the resume was created.
func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)
	res, err := h.Svc.Get(c.Request.Context(), middleware.IdentityFromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, res)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Invalid(c, validation.Single("body", "Invalid JSON body"))
		return
	}
	c.Set("templateId", in.Template)
	res, err := h.Svc.Create(c.Request.Context(), middleware.IdentityFromContext(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("resumeId", res.ID)
	respond.OK(c, res)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)
	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Invalid(c, validation.Single("body", "Invalid JSON body"))
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.IdentityFromContext(c), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, res)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.IdentityFromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	respond.Msg(c, "Resume removed")
}

func writeError(c *gin.Context, err error) {
	if verr, ok := validation.AsError(err); ok {
		respond.Invalid(c, verr)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	case errors.Is(err, ErrTemplateNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Template not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusUnauthorized, "forbidden", "Not authorized", nil)
	default:
		respond.ServerError(c, err)
	}
}

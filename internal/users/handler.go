package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/validation"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches sign-up under /users and sign-in plus the current
// user lookup under /auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/users", h.register)
	rg.POST("/auth", h.login)
	rg.GET("/auth", authMW, h.me)
}

func (h *Handler) register(c *gin.Context) {
	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Invalid(c, validation.Single("body", "Invalid JSON body"))
		return
	}
	token, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"token": token})
}

func (h *Handler) login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Invalid(c, validation.Single("body", "Invalid JSON body"))
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"token": token})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, user)
}

func writeError(c *gin.Context, err error) {
	if verr, ok := validation.AsError(err); ok {
		respond.Invalid(c, verr)
		return
	}
	switch {
	case errors.Is(err, ErrAlreadyExists):
		respond.Error(c, http.StatusBadRequest, "already_exists", "User already exists", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusBadRequest, "invalid_credentials", "Invalid credentials", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	default:
		respond.ServerError(c, err)
	}
}

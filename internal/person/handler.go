package person

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymcore/internal/api"
	"gymcore/internal/auth"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetMine godoc
// @Summary   Get own profile
// @Tags      person
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  Person
// @Failure   404  {object}  api.ErrorResponse
// @Router    /persons/me [get]
func (h *Handler) GetMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	h.respondWithProfile(c, claims.UserID)
}

// UpsertMine godoc
// @Summary      Create or replace own profile
// @Tags         person
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpsertRequest  true  "Profile data"
// @Success      200      {object}  Person
// @Failure      400      {object}  api.ErrorResponse
// @Router       /persons/me [put]
func (h *Handler) UpsertMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	p, err := h.repo.Upsert(c.Request.Context(), claims.UserID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteMine godoc
// @Summary   Delete own profile
// @Tags      person
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  api.MessageResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /persons/me [delete]
func (h *Handler) DeleteMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	deleted, err := h.repo.DeleteByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		api.Fail(c, err)
		return
	}
	if !deleted {
		api.Fail(c, api.NotFound("profile not found"))
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Profile deleted"})
}

// GetByUser godoc
// @Summary   Get a user's profile
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Param     userID  path      int  true  "User ID"
// @Success   200     {object}  Person
// @Failure   404     {object}  api.ErrorResponse
// @Router    /admin/persons/{userID} [get]
func (h *Handler) GetByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	h.respondWithProfile(c, userID)
}

// List godoc
// @Summary   List profiles
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  Person
// @Router    /admin/persons [get]
func (h *Handler) List(c *gin.Context) {
	limit, offset := api.Pagination(c)
	persons, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, persons)
}

func (h *Handler) respondWithProfile(c *gin.Context, userID int) {
	p, err := h.repo.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.Fail(c, api.NotFound("profile not found"))
			return
		}
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

package exercise

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymcore/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List godoc
// @Summary   List exercises
// @Tags      exercise
// @Security  BearerAuth
// @Produce   json
// @Param     category  query    string  false  "Filter by category"
// @Success   200       {array}  Exercise
// @Router    /exercises [get]
func (h *Handler) List(c *gin.Context) {
	limit, offset := api.Pagination(c)
	exercises, err := h.repo.List(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, exercises)
}

// Get godoc
// @Summary   Get exercise
// @Tags      exercise
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Exercise ID"
// @Success   200  {object}  Exercise
// @Failure   404  {object}  api.ErrorResponse
// @Router    /exercises/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid exercise ID"})
		return
	}

	ex, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ex)
}

// Create godoc
// @Summary   Create exercise
// @Tags      exercise
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateRequest  true  "Exercise data"
// @Success   201      {object}  Exercise
// @Failure   409      {object}  api.ErrorResponse
// @Router    /exercises [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	ex, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ex)
}

// Update godoc
// @Summary   Update exercise
// @Tags      exercise
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Exercise ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  Exercise
// @Failure   404      {object}  api.ErrorResponse
// @Router    /exercises/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid exercise ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	ex, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ex)
}

// Delete godoc
// @Summary   Delete exercise
// @Tags      exercise
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Exercise ID"
// @Success   200  {object}  api.MessageResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /exercises/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid exercise ID"})
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}
	if !deleted {
		api.Fail(c, api.NotFound("exercise not found"))
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Exercise deleted"})
}

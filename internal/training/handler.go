package training

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymcore/internal/api"
	"gymcore/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary   Create training
// @Tags      training
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateRequest  true  "Training data"
// @Success   201      {object}  TrainingWithExercises
// @Failure   400      {object}  api.ErrorResponse
// @Router    /trainings [post]
func (h *Handler) Create(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	tr, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, tr)
}

// Get godoc
// @Summary   Get training
// @Tags      training
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Training ID"
// @Success   200  {object}  TrainingWithExercises
// @Failure   404  {object}  api.ErrorResponse
// @Router    /trainings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid training ID"})
		return
	}

	tr, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tr)
}

// ListMine godoc
// @Summary   List own trainings
// @Tags      training
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  TrainingWithExercises
// @Router    /my-trainings [get]
func (h *Handler) ListMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	limit, offset := api.Pagination(c)
	trainings, err := h.service.ListMine(c.Request.Context(), claims, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, trainings)
}

// Update godoc
// @Summary   Update training
// @Tags      training
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Training ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  TrainingWithExercises
// @Failure   403      {object}  api.ErrorResponse
// @Router    /trainings/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid training ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	tr, err := h.service.Update(c.Request.Context(), claims, id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tr)
}

// Delete godoc
// @Summary   Delete training
// @Tags      training
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Training ID"
// @Success   200  {object}  api.MessageResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /trainings/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid training ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Training deleted"})
}

package class

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

// List godoc
// @Summary   List classes
// @Tags      class
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  Class
// @Router    /classes [get]
func (h *Handler) List(c *gin.Context) {
	limit, offset := api.Pagination(c)
	classes, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

// ListMine godoc
// @Summary      List own classes
// @Description  Classes where the caller is the trainer.
// @Tags         class
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Class
// @Router       /my-classes [get]
func (h *Handler) ListMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	limit, offset := api.Pagination(c)
	classes, err := h.service.ListMine(c.Request.Context(), claims, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

// Get godoc
// @Summary   Get class
// @Tags      class
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Class ID"
// @Success   200  {object}  Class
// @Failure   404  {object}  api.ErrorResponse
// @Router    /classes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	cls, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cls)
}

// GetDetails godoc
// @Summary   Get class with trainer and reservation count
// @Tags      class
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Class ID"
// @Success   200  {object}  ClassDetails
// @Failure   404  {object}  api.ErrorResponse
// @Router    /classes/{id}/details [get]
func (h *Handler) GetDetails(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// Create godoc
// @Summary   Create class
// @Tags      class
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateRequest  true  "Class data"
// @Success   201      {object}  Class
// @Failure   400      {object}  api.ErrorResponse
// @Router    /classes [post]
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

	cls, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, cls)
}

// Update godoc
// @Summary   Update class
// @Tags      class
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Class ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  Class
// @Failure   403      {object}  api.ErrorResponse
// @Failure   404      {object}  api.ErrorResponse
// @Router    /classes/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	cls, err := h.service.Update(c.Request.Context(), claims, id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cls)
}

// Delete godoc
// @Summary      Delete class
// @Description  Also removes every reservation for the class.
// @Tags         class
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Class ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /classes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Class deleted"})
}

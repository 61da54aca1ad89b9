package opinion

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
// @Summary   Submit opinion
// @Tags      opinion
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateRequest  true  "Opinion data"
// @Success   201      {object}  Opinion
// @Router    /opinions [post]
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

	op, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, op)
}

// Get godoc
// @Summary   Get opinion
// @Tags      opinion
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Opinion ID"
// @Success   200  {object}  Opinion
// @Failure   403  {object}  api.ErrorResponse
// @Router    /opinions/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid opinion ID"})
		return
	}

	op, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, op)
}

// ListMine godoc
// @Summary   List own opinions
// @Tags      opinion
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  Opinion
// @Router    /my-opinions [get]
func (h *Handler) ListMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	limit, offset := api.Pagination(c)
	opinions, err := h.service.ListMine(c.Request.Context(), claims, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, opinions)
}

// Update godoc
// @Summary   Edit own opinion
// @Tags      opinion
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Opinion ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  Opinion
// @Failure   409      {object}  api.ErrorResponse
// @Router    /opinions/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid opinion ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	op, err := h.service.Update(c.Request.Context(), claims, id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, op)
}

// Delete godoc
// @Summary   Delete opinion
// @Tags      opinion
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Opinion ID"
// @Success   200  {object}  api.MessageResponse
// @Failure   403  {object}  api.ErrorResponse
// @Router    /opinions/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid opinion ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Opinion deleted"})
}

// List godoc
// @Summary   List all opinions
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Param     status  query    string  false  "Filter by status"
// @Success   200     {array}  OpinionDetails
// @Router    /admin/opinions [get]
func (h *Handler) List(c *gin.Context) {
	limit, offset := api.Pagination(c)
	opinions, err := h.service.List(c.Request.Context(), Status(c.Query("status")), limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, opinions)
}

// GetDetails godoc
// @Summary   Get opinion with author details
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Opinion ID"
// @Success   200  {object}  OpinionDetails
// @Failure   404  {object}  api.ErrorResponse
// @Router    /admin/opinions/{id}/details [get]
func (h *Handler) GetDetails(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid opinion ID"})
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// Answer godoc
// @Summary   Answer opinion
// @Tags      admin
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Opinion ID"
// @Param     request  body      AnswerRequest  true  "Reply text"
// @Success   200      {object}  Opinion
// @Failure   409      {object}  api.ErrorResponse
// @Router    /admin/opinions/{id}/answer [put]
func (h *Handler) Answer(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid opinion ID"})
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	op, err := h.service.Answer(c.Request.Context(), claims, id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, op)
}

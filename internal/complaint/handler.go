package complaint

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
// @Summary   File complaint against trainer
// @Tags      complaint
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateRequest  true  "Complaint data"
// @Success   201      {object}  Complaint
// @Failure   404      {object}  api.ErrorResponse
// @Router    /complaints [post]
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

	cp, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, cp)
}

// Get godoc
// @Summary   Get complaint
// @Tags      complaint
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Complaint ID"
// @Success   200  {object}  Complaint
// @Failure   403  {object}  api.ErrorResponse
// @Router    /complaints/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid complaint ID"})
		return
	}

	cp, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cp)
}

// ListMine godoc
// @Summary   List own complaints
// @Tags      complaint
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  Complaint
// @Router    /my-complaints [get]
func (h *Handler) ListMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	limit, offset := api.Pagination(c)
	complaints, err := h.service.ListMine(c.Request.Context(), claims, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// ListAboutMe godoc
// @Summary   List complaints against the calling trainer
// @Tags      complaint
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  Complaint
// @Router    /complaints/received [get]
func (h *Handler) ListAboutMe(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	limit, offset := api.Pagination(c)
	complaints, err := h.service.ListAboutMe(c.Request.Context(), claims, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// Update godoc
// @Summary   Edit own complaint
// @Tags      complaint
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Complaint ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  Complaint
// @Failure   403      {object}  api.ErrorResponse
// @Router    /complaints/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid complaint ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	cp, err := h.service.Update(c.Request.Context(), claims, id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cp)
}

// Delete godoc
// @Summary   Delete complaint
// @Tags      complaint
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Complaint ID"
// @Success   200  {object}  api.MessageResponse
// @Failure   403  {object}  api.ErrorResponse
// @Router    /complaints/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid complaint ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Complaint deleted"})
}

// List godoc
// @Summary   List all complaints
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  ComplaintDetails
// @Router    /admin/complaints [get]
func (h *Handler) List(c *gin.Context) {
	limit, offset := api.Pagination(c)
	complaints, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// GetDetails godoc
// @Summary   Get complaint with names resolved
// @Tags      complaint
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Complaint ID"
// @Success   200  {object}  ComplaintDetails
// @Failure   404  {object}  api.ErrorResponse
// @Router    /complaints/{id}/details [get]
func (h *Handler) GetDetails(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid complaint ID"})
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), claims, id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

package evaluation

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

// ListServices godoc
// @Summary   List rateable services
// @Tags      evaluation
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  GymService
// @Router    /services [get]
func (h *Handler) ListServices(c *gin.Context) {
	limit, offset := api.Pagination(c)
	services, err := h.service.ListServices(c.Request.Context(), limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

// CreateService godoc
// @Summary   Create service
// @Tags      admin
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateServiceRequest  true  "Service data"
// @Success   201      {object}  GymService
// @Router    /admin/services [post]
func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

// SetServiceActive godoc
// @Summary   Activate or deactivate a service
// @Tags      admin
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id   path      int  true  "Service ID"
// @Success   200  {object}  api.MessageResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /admin/services/{id}/active [put]
func (h *Handler) SetServiceActive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid service ID"})
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	if err := h.service.SetServiceActive(c.Request.Context(), id, req.Active); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Service updated"})
}

// Create godoc
// @Summary   Evaluate a service
// @Tags      evaluation
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateRequest  true  "Evaluation data"
// @Success   201      {object}  Evaluation
// @Failure   409      {object}  api.ErrorResponse
// @Router    /evaluations [post]
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

	ev, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// Get godoc
// @Summary   Get evaluation
// @Tags      evaluation
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Evaluation ID"
// @Success   200  {object}  Evaluation
// @Failure   403  {object}  api.ErrorResponse
// @Router    /evaluations/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid evaluation ID"})
		return
	}

	ev, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ev)
}

// ListMine godoc
// @Summary   List own evaluations
// @Tags      evaluation
// @Security  BearerAuth
// @Produce   json
// @Success   200  {array}  Evaluation
// @Router    /my-evaluations [get]
func (h *Handler) ListMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	limit, offset := api.Pagination(c)
	evaluations, err := h.service.ListMine(c.Request.Context(), claims, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluations)
}

// ListByService godoc
// @Summary   List evaluations of a service
// @Tags      evaluation
// @Security  BearerAuth
// @Produce   json
// @Param     serviceID  path     int  true  "Service ID"
// @Success   200        {array}  Evaluation
// @Failure   404        {object}  api.ErrorResponse
// @Router    /evaluations/service/{serviceID} [get]
func (h *Handler) ListByService(c *gin.Context) {
	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid service ID"})
		return
	}

	limit, offset := api.Pagination(c)
	evaluations, err := h.service.ListByService(c.Request.Context(), serviceID, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluations)
}

// Stats godoc
// @Summary   Rating statistics of a service
// @Tags      evaluation
// @Security  BearerAuth
// @Produce   json
// @Param     serviceID  path      int  true  "Service ID"
// @Success   200        {object}  ServiceStats
// @Failure   404        {object}  api.ErrorResponse
// @Router    /evaluations/service/{serviceID}/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid service ID"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), serviceID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Update godoc
// @Summary   Update evaluation
// @Tags      evaluation
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Evaluation ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  Evaluation
// @Failure   403      {object}  api.ErrorResponse
// @Router    /evaluations/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid evaluation ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	ev, err := h.service.Update(c.Request.Context(), claims, id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ev)
}

// Delete godoc
// @Summary   Delete evaluation
// @Tags      evaluation
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Evaluation ID"
// @Success   200  {object}  api.MessageResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /evaluations/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid evaluation ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Evaluation deleted"})
}

package membership

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

// GetMine godoc
// @Summary   Get own active membership
// @Tags      membership
// @Security  BearerAuth
// @Produce   json
// @Success   200  {object}  Membership
// @Failure   404  {object}  api.ErrorResponse
// @Router    /my-membership [get]
func (h *Handler) GetMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	ms, err := h.service.GetMine(c.Request.Context(), claims)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ms)
}

// Get godoc
// @Summary   Get membership
// @Tags      membership
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Membership ID"
// @Success   200  {object}  Membership
// @Failure   403  {object}  api.ErrorResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /memberships/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership ID"})
		return
	}

	ms, err := h.service.Get(c.Request.Context(), claims, id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ms)
}

// List godoc
// @Summary   List memberships
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Param     status  query    string  false  "Filter by status"
// @Success   200     {array}  MembershipDetails
// @Router    /admin/memberships [get]
func (h *Handler) List(c *gin.Context) {
	limit, offset := api.Pagination(c)
	memberships, err := h.service.List(c.Request.Context(), Status(c.Query("status")), limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// GetDetails godoc
// @Summary   Get membership with member details
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Membership ID"
// @Success   200  {object}  MembershipDetails
// @Failure   404  {object}  api.ErrorResponse
// @Router    /admin/memberships/{id}/details [get]
func (h *Handler) GetDetails(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership ID"})
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
// @Summary   Create membership
// @Tags      admin
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateRequest  true  "Membership data"
// @Success   201      {object}  Membership
// @Failure   409      {object}  api.ErrorResponse
// @Router    /admin/memberships [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	ms, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, ms)
}

// Update godoc
// @Summary   Update membership
// @Tags      admin
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Membership ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  Membership
// @Failure   409      {object}  api.ErrorResponse
// @Router    /admin/memberships/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	ms, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ms)
}

// Delete godoc
// @Summary   Delete membership
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Membership ID"
// @Success   200  {object}  api.MessageResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /admin/memberships/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Membership deleted"})
}

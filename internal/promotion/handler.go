package promotion

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
// @Summary   List promotions
// @Tags      promotion
// @Security  BearerAuth
// @Produce   json
// @Param     active  query    bool  false  "Only active promotions"
// @Success   200     {array}  Promotion
// @Router    /promotions [get]
func (h *Handler) List(c *gin.Context) {
	limit, offset := api.Pagination(c)
	activeOnly := c.Query("active") == "true"

	promotions, err := h.service.List(c.Request.Context(), activeOnly, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, promotions)
}

// Get godoc
// @Summary   Get promotion
// @Tags      promotion
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Promotion ID"
// @Success   200  {object}  Promotion
// @Failure   404  {object}  api.ErrorResponse
// @Router    /promotions/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid promotion ID"})
		return
	}

	promo, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, promo)
}

// Create godoc
// @Summary   Create promotion
// @Tags      admin
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     request  body      CreateRequest  true  "Promotion data"
// @Success   201      {object}  Promotion
// @Failure   400      {object}  api.ErrorResponse
// @Router    /admin/promotions [post]
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

	promo, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, promo)
}

// Update godoc
// @Summary   Update promotion
// @Tags      admin
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Promotion ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  Promotion
// @Failure   404      {object}  api.ErrorResponse
// @Router    /admin/promotions/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid promotion ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	promo, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, promo)
}

// Delete godoc
// @Summary   Delete promotion
// @Tags      admin
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Promotion ID"
// @Success   200  {object}  api.MessageResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /admin/promotions/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid promotion ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Promotion deleted"})
}

package reservation

import (
	"net/http"
	"strconv"
	"time"

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
// @Summary      Reserve a class
// @Description  Books the caller into a class for a date. Admins may book on behalf of another user via user_id.
// @Tags         reservation
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Reservation data"
// @Success      201      {object}  Reservation
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /reservations [post]
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

	res, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// GetDetails godoc
// @Summary   Get reservation with class and member details
// @Tags      reservation
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Reservation ID"
// @Success   200  {object}  ReservationDetails
// @Failure   403  {object}  api.ErrorResponse
// @Failure   404  {object}  api.ErrorResponse
// @Router    /reservations/{id}/details [get]
func (h *Handler) GetDetails(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), claims, id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// ListMine godoc
// @Summary      List own reservations
// @Description  Optional status, from and to (RFC 3339 date) query filters.
// @Tags         reservation
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  ReservationDetails
// @Router       /my-reservations [get]
func (h *Handler) ListMine(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	limit, offset := api.Pagination(c)
	reservations, err := h.service.ListMine(c.Request.Context(), claims, filter, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListByClass godoc
// @Summary   List reservations of a class
// @Tags      reservation
// @Security  BearerAuth
// @Produce   json
// @Param     classID  path     int  true  "Class ID"
// @Success   200      {array}  ReservationDetails
// @Failure   403      {object}  api.ErrorResponse
// @Router    /reservations/class/{classID} [get]
func (h *Handler) ListByClass(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	limit, offset := api.Pagination(c)
	reservations, err := h.service.ListByClass(c.Request.Context(), claims, classID, limit, offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// Update godoc
// @Summary   Update reservation status or comment
// @Tags      reservation
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int            true  "Reservation ID"
// @Param     request  body      UpdateRequest  true  "Fields to change"
// @Success   200      {object}  Reservation
// @Failure   403      {object}  api.ErrorResponse
// @Router    /reservations/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	res, err := h.service.Update(c.Request.Context(), claims, id, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Cancel godoc
// @Summary   Cancel reservation
// @Tags      reservation
// @Security  BearerAuth
// @Produce   json
// @Param     id   path      int  true  "Reservation ID"
// @Success   200  {object}  Reservation
// @Failure   409  {object}  api.ErrorResponse
// @Router    /reservations/{id}/cancel [put]
func (h *Handler) Cancel(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), claims, id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// MarkAttendance godoc
// @Summary   Record attendance
// @Tags      reservation
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     id       path      int                true  "Reservation ID"
// @Param     request  body      AttendanceRequest  true  "Attendance flag"
// @Success   200      {object}  Reservation
// @Failure   403      {object}  api.ErrorResponse
// @Router    /reservations/{id}/attendance [put]
func (h *Handler) MarkAttendance(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindingMessage(err)})
		return
	}

	res, err := h.service.MarkAttendance(c.Request.Context(), claims, id, req.Attended)
	if err != nil {
		api.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func parseFilter(c *gin.Context) (ListFilter, error) {
	var filter ListFilter

	if status := c.Query("status"); status != "" {
		filter.Status = Status(status)
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}

	return filter, nil
}

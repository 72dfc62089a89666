package api

import (
	"errors"
	"net/http"
	"strconv"

	"tablebook/internal/domain/user"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book seats at a restaurant time slot, optionally pre-ordering menu items
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
		case errors.Is(err, commands.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Time slot not found",
			})
		case errors.Is(err, commands.ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Menu item not found",
			})
		case errors.Is(err, commands.ErrRestaurantInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Restaurant is not accepting bookings",
			})
		case errors.Is(err, commands.ErrSlotClosed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Time slot is closed",
			})
		case errors.Is(err, commands.ErrMenuItemUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Menu item is unavailable",
			})
		case errors.Is(err, commands.ErrBookingDateOutOfWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Booking date must be within the booking window",
			})
		case errors.Is(err, commands.ErrInsufficientCapacity):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Not enough seats available for this time slot",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking validation failed",
			})
		case errors.Is(err, commands.ErrBookingConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Could not allocate a booking reference, retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID (owner or admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actorID, role, bookingID)
	if err != nil {
		if errors.Is(err, queries.ErrBookingViewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description List bookings belonging to the authenticated user
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/my [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	limit, offset := paginationParams(c)
	items, err := h.bookingQueries.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingList(items))
}

// @Summary List bookings
// @Description List all bookings with optional status/restaurant/date filters (admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param restaurant_id query string false "Filter by restaurant"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var filter queries.BookingFilter
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if restaurantStr := c.Query("restaurant_id"); restaurantStr != "" {
		restaurantID, err := uuid.Parse(restaurantStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid restaurant ID",
			})
			return
		}
		filter.RestaurantID = &restaurantID
	}
	if date := c.Query("date"); date != "" {
		filter.Date = &date
	}

	limit, offset := paginationParams(c)
	items, err := h.bookingQueries.ListAll(c.Request.Context(), filter, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingList(items))
}

// @Summary Count pending bookings
// @Description Number of bookings awaiting an admin decision
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.PendingCountResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bookings/pending/count [get]
func (h *BookingHandler) PendingCount(c *gin.Context) {
	count, err := h.bookingQueries.PendingCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.PendingCountResponse{Count: count})
}

// @Summary Approve booking
// @Description Approve a pending booking (admin)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.DecideBookingRequest false "Optional note"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/approve [put]
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	h.decide(c, func(bookingID, adminID uuid.UUID, note string) error {
		return h.bookingCommands.ApproveBooking(c.Request.Context(), bookingID, adminID, note)
	})
}

// @Summary Reject booking
// @Description Reject a pending booking with a reason (admin)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.DecideBookingRequest true "Rejection note"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/reject [put]
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	h.decide(c, func(bookingID, adminID uuid.UUID, note string) error {
		return h.bookingCommands.RejectBooking(c.Request.Context(), bookingID, adminID, note)
	})
}

// @Summary Complete booking
// @Description Mark an approved booking as completed after the visit (admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/complete [put]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.decide(c, func(bookingID, adminID uuid.UUID, _ string) error {
		return h.bookingCommands.CompleteBooking(c.Request.Context(), bookingID, adminID)
	})
}

// @Summary Cancel booking
// @Description Cancel a pending or approved booking (owner or admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [put]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), bookingID, actorID, role); err != nil {
		h.renderTransitionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) decide(c *gin.Context, apply func(bookingID, adminID uuid.UUID, note string) error) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	var req reqdto.DecideBookingRequest
	// The decision body is optional; approve and complete work without one.
	_ = c.ShouldBindJSON(&req)

	if err := apply(bookingID, adminID, req.GetNote()); err != nil {
		h.renderTransitionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) renderTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrBookingAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You may only cancel your own bookings",
		})
	case errors.Is(err, commands.ErrInvalidStatusTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking status does not permit this action",
		})
	case errors.Is(err, commands.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking was modified concurrently, retry",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "A note explaining the decision is required",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func actorFromContext(c *gin.Context) (uuid.UUID, user.Role, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return actorID, role, true
}

func paginationParams(c *gin.Context) (limit, offset int) {
	limit = 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

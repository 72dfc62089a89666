package api

import (
	"errors"
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestaurantHandler struct {
	catalogQueries queries.CatalogQueries
	slotCommands   commands.SlotCommands
}

func NewRestaurantHandler(catalogQueries queries.CatalogQueries, slotCommands commands.SlotCommands) *RestaurantHandler {
	return &RestaurantHandler{
		catalogQueries: catalogQueries,
		slotCommands:   slotCommands,
	}
}

// @Summary List restaurants
// @Description List active restaurants
// @Tags restaurants
// @Produce json
// @Success 200 {array} resdto.RestaurantResponse
// @Router /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	views, err := h.catalogQueries.ListRestaurants(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRestaurantList(views))
}

// @Summary Get restaurant
// @Description Get restaurant details by ID
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} resdto.RestaurantResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID",
		})
		return
	}

	view, err := h.catalogQueries.GetRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, queries.ErrRestaurantViewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRestaurantView(view))
}

// @Summary List menu
// @Description List a restaurant's menu items
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {array} resdto.MenuItemResponse
// @Failure 400 {object} map[string]string
// @Router /restaurants/{id}/menu [get]
func (h *RestaurantHandler) ListMenu(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID",
		})
		return
	}

	views, err := h.catalogQueries.ListMenuItems(c.Request.Context(), restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromMenuItemList(views))
}

// @Summary List availability
// @Description List a restaurant's time slots for one date
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Router /restaurants/{id}/slots [get]
func (h *RestaurantHandler) ListSlots(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID",
		})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'date' is required",
		})
		return
	}

	views, err := h.catalogQueries.ListAvailability(c.Request.Context(), restaurantID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotList(views))
}

// @Summary List dietary preferences
// @Description List selectable dietary preferences
// @Tags restaurants
// @Produce json
// @Success 200 {array} resdto.DietaryPreferenceResponse
// @Router /dietary-preferences [get]
func (h *RestaurantHandler) ListDietaryPreferences(c *gin.Context) {
	views, err := h.catalogQueries.ListDietaryPreferences(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDietaryPreferenceList(views))
}

// @Summary Generate time slots
// @Description Generate or refresh capacity rows for the restaurant's booking horizon (admin)
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body reqdto.GenerateSlotsRequest false "Overrides"
// @Success 200 {object} resdto.GenerateSlotsResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /restaurants/{id}/slots/generate [post]
func (h *RestaurantHandler) GenerateSlots(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid restaurant ID",
		})
		return
	}

	var req reqdto.GenerateSlotsRequest
	// Body is optional; config defaults apply.
	_ = c.ShouldBindJSON(&req)
	req.RestaurantID = restaurantID

	result, err := h.slotCommands.GenerateSlots(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRestaurantNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
		case errors.Is(err, commands.ErrInvalidGenerationPlan):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid slot generation parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.GenerateSlotsResponse{
		RestaurantID: result.RestaurantID,
		SlotCount:    result.SlotCount,
		From:         result.From,
		Days:         result.Days,
	})
}

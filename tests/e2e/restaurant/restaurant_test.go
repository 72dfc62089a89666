//go:build e2e

package restaurant

import (
	"context"
	"net/http"
	"testing"
	"time"

	resdto "tablebook/internal/handler/dto/response"
	"tablebook/tests/common/authtest"
	"tablebook/tests/common/dbtest"
	"tablebook/tests/common/httptest"
	"tablebook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RestaurantSuite struct {
	e2e.SharedSuite
}

func TestRestaurantSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RestaurantSuite))
}

func (s *RestaurantSuite) TestCatalog() {
	s.Run("lists active restaurants", func() {
		dbtest.CreateTestRestaurant(s.T(), s.DB, "Bistro One", 30)
		dbtest.CreateTestRestaurant(s.T(), s.DB, "Bistro Two", 50)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/restaurants", nil, "")

		var list []resdto.RestaurantResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list, 2)
	})

	s.Run("gets restaurant details", func() {
		id := dbtest.CreateTestRestaurant(s.T(), s.DB, "Bistro One", 30)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/restaurants/"+id.String(), nil, "")

		var resp resdto.RestaurantResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		require.Equal(s.T(), "Bistro One", resp.Name)
		require.Equal(s.T(), "America/New_York", resp.Timezone)
		require.Equal(s.T(), int32(30), resp.TotalSeats)
	})

	s.Run("returns not found for an unknown restaurant", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/restaurants/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Restaurant not found")
	})

	s.Run("lists the menu", func() {
		id := dbtest.CreateTestRestaurant(s.T(), s.DB, "Bistro One", 30)
		dbtest.CreateTestMenuItem(s.T(), s.DB, id, "Carbonara", 1800, true)
		dbtest.CreateTestMenuItem(s.T(), s.DB, id, "Tiramisu", 900, true)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/restaurants/"+id.String()+"/menu", nil, "")

		var list []resdto.MenuItemResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list, 2)
	})

	s.Run("lists dietary preferences", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/dietary-preferences", nil, "")

		var list []resdto.DietaryPreferenceResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list, 4)
	})
}

func (s *RestaurantSuite) TestGenerateSlots() {
	s.Run("materializes the full booking horizon", func() {
		id := dbtest.CreateTestRestaurant(s.T(), s.DB, "Bistro One", 30)
		adminToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "admin@example.com", "admin")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/restaurants/"+id.String()+"/slots/generate", nil, adminToken)

		var resp resdto.GenerateSlotsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		require.Equal(s.T(), id, resp.RestaurantID)
		// 11:00-22:00 at 30 minute steps is 22 slots per day, over an
		// 8-day inclusive horizon.
		require.Equal(s.T(), 176, resp.SlotCount)
		require.Equal(s.T(), 7, resp.Days)

		date := resp.From
		listW := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/restaurants/"+id.String()+"/slots?date="+date, nil, "")

		var slots []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), listW, http.StatusOK, &slots)
		require.Len(s.T(), slots, 22)
		require.Equal(s.T(), int32(30), slots[0].TotalCapacity)
		require.Equal(s.T(), int32(30), slots[0].AvailableSeats)
	})

	s.Run("regenerating preserves seats already booked", func() {
		id := dbtest.CreateTestRestaurant(s.T(), s.DB, "Bistro One", 30)
		adminToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "admin@example.com", "admin")

		loc, err := time.LoadLocation("America/New_York")
		require.NoError(s.T(), err)
		d := time.Now().In(loc).AddDate(0, 0, 1)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

		// A slot with 10 of 30 seats taken.
		dbtest.CreateTestSlot(s.T(), s.DB, id, day, "19:00", 30)
		_, err = s.DB.Exec(context.Background(),
			"UPDATE time_slots SET available_seats = 20 WHERE restaurant_id = $1 AND slot_time = '19:00'", id)
		require.NoError(s.T(), err)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/restaurants/"+id.String()+"/slots/generate", nil, adminToken)
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		require.Equal(s.T(), 20, dbtest.GetAvailableSeats(s.T(), s.DB, id, day, "19:00"))
	})

	s.Run("capacity override applies to new capacity", func() {
		id := dbtest.CreateTestRestaurant(s.T(), s.DB, "Bistro One", 30)
		adminToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "admin@example.com", "admin")

		body := map[string]int{"days": 1, "capacity": 12}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/restaurants/"+id.String()+"/slots/generate", body, adminToken)

		var resp resdto.GenerateSlotsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		require.Equal(s.T(), 44, resp.SlotCount)
		require.Equal(s.T(), 1, resp.Days)
	})

	s.Run("rejects an unknown restaurant", func() {
		adminToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "admin@example.com", "admin")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/restaurants/"+uuid.NewString()+"/slots/generate", nil, adminToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Restaurant not found")
	})

	s.Run("denies customers", func() {
		id := dbtest.CreateTestRestaurant(s.T(), s.DB, "Bistro One", 30)
		customerToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "customer@example.com", "customer")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/restaurants/"+id.String()+"/slots/generate", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})
}

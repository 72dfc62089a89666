//go:build e2e

package booking

import (
	"context"
	"fmt"
	"net/http"
	stdhttptest "net/http/httptest"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/tests/common/authtest"
	"tablebook/tests/common/builder"
	"tablebook/tests/common/dbtest"
	"tablebook/tests/common/httptest"
	"tablebook/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

var referencePattern = regexp.MustCompile(`^BK[0-9A-Z]+$`)

type bookingEnv struct {
	restaurantID uuid.UUID
	slotDate     time.Time
	dateStr      string
	slotTime     string
	ownerToken   string
	adminToken   string
}

// bookableDate returns tomorrow as a calendar day in the restaurant's
// timezone, which is always inside the booking window.
func (s *BookingSuite) bookableDate() (time.Time, string) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(s.T(), err)

	d := time.Now().In(loc).AddDate(0, 0, 1)
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return day, day.Format("2006-01-02")
}

func (s *BookingSuite) setupEnv(capacity int) bookingEnv {
	t := s.T()

	restaurantID := dbtest.CreateTestRestaurant(t, s.DB, "Trattoria E2E", 100)
	slotDate, dateStr := s.bookableDate()
	dbtest.CreateTestSlot(t, s.DB, restaurantID, slotDate, "19:00", capacity)

	ownerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "diner@example.com", "customer")
	adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "manager@example.com", "admin")

	return bookingEnv{
		restaurantID: restaurantID,
		slotDate:     slotDate,
		dateStr:      dateStr,
		slotTime:     "19:00",
		ownerToken:   ownerToken,
		adminToken:   adminToken,
	}
}

func (s *BookingSuite) createBooking(env bookingEnv, partySize int, token string) resdto.BookingResponse {
	t := s.T()

	req := builder.NewBookingBuilder().
		WithRestaurantID(env.restaurantID).
		WithDate(env.dateStr).
		WithTime(env.slotTime).
		WithPartySize(partySize).
		BuildCreateRequestDTO()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", req, token)

	var resp resdto.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &resp)
	return resp
}

func (s *BookingSuite) getBooking(id uuid.UUID, token string) resdto.BookingResponse {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/bookings/"+id.String(), nil, token)

	var resp resdto.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
	return resp
}

func (s *BookingSuite) decide(action string, id uuid.UUID, body any, token string) *stdhttptest.ResponseRecorder {
	path := fmt.Sprintf("/api/bookings/%s/%s", id, action)
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPut, path, body, token)
}

func (s *BookingSuite) seats(env bookingEnv) int {
	return dbtest.GetAvailableSeats(s.T(), s.DB, env.restaurantID, env.slotDate, env.slotTime)
}

func (s *BookingSuite) TestCreateBooking() {
	s.Run("creates a pending booking and reserves seats", func() {
		env := s.setupEnv(10)

		resp := s.createBooking(env, 4, env.ownerToken)

		require.Regexp(s.T(), referencePattern, resp.Reference)
		require.Equal(s.T(), "pending", resp.Status)
		require.Equal(s.T(), int32(4), resp.PartySize)
		require.Equal(s.T(), env.dateStr, resp.Date)
		require.Equal(s.T(), "19:00", resp.Time)
		require.Equal(s.T(), 6, s.seats(env))

		fetched := s.getBooking(resp.ID, env.ownerToken)
		require.Equal(s.T(), resp.Reference, fetched.Reference)
	})

	s.Run("freezes menu prices at booking time", func() {
		env := s.setupEnv(10)
		itemID := dbtest.CreateTestMenuItem(s.T(), s.DB, env.restaurantID, "Margherita", 1500, true)

		req := builder.NewBookingBuilder().
			WithRestaurantID(env.restaurantID).
			WithDate(env.dateStr).
			WithPartySize(2).
			WithItems(reqdto.BookingItemRequest{MenuItemID: itemID, Quantity: 3}).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, env.ownerToken)
		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		require.Equal(s.T(), int32(4500), resp.TotalCents)

		// A later menu price change must not leak into the stored booking.
		_, err := s.DB.Exec(context.Background(),
			"UPDATE menu_items SET price_cents = 9999 WHERE id = $1", itemID)
		require.NoError(s.T(), err)

		fetched := s.getBooking(resp.ID, env.ownerToken)
		expectedItems := []resdto.BookingItemResponse{{
			MenuItemID:    itemID,
			Name:          "Margherita",
			Quantity:      3,
			PriceCents:    1500,
			SubtotalCents: 4500,
		}}
		require.Empty(s.T(), cmp.Diff(expectedItems, fetched.Items))
		require.Equal(s.T(), int32(4500), fetched.TotalCents)
	})

	s.Run("rejects an unknown restaurant", func() {
		env := s.setupEnv(10)

		req := builder.NewBookingBuilder().
			WithRestaurantID(uuid.New()).
			WithDate(env.dateStr).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, env.ownerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Restaurant not found")
	})

	s.Run("rejects a date beyond the booking window", func() {
		env := s.setupEnv(10)
		farDate := env.slotDate.AddDate(0, 0, 9)

		req := builder.NewBookingBuilder().
			WithRestaurantID(env.restaurantID).
			WithDate(farDate.Format("2006-01-02")).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, env.ownerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "booking window")
		require.Equal(s.T(), 10, s.seats(env))
	})

	s.Run("rejects a closed slot", func() {
		env := s.setupEnv(10)
		dbtest.CloseTestSlot(s.T(), s.DB, env.restaurantID, env.slotDate, env.slotTime)

		req := builder.NewBookingBuilder().
			WithRestaurantID(env.restaurantID).
			WithDate(env.dateStr).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, env.ownerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "closed")
	})

	s.Run("rolls back the reservation when the insert fails", func() {
		env := s.setupEnv(10)

		// An unknown dietary preference passes every pre-transaction check
		// and only fails on the foreign key, after the seats were reserved.
		req := builder.NewBookingBuilder().
			WithRestaurantID(env.restaurantID).
			WithDate(env.dateStr).
			WithPartySize(4).
			WithDietaryPreference(uuid.New()).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, env.ownerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "validation")

		require.Equal(s.T(), 10, s.seats(env))
	})

	s.Run("rejects an unavailable menu item", func() {
		env := s.setupEnv(10)
		itemID := dbtest.CreateTestMenuItem(s.T(), s.DB, env.restaurantID, "Seasonal Special", 2200, false)

		req := builder.NewBookingBuilder().
			WithRestaurantID(env.restaurantID).
			WithDate(env.dateStr).
			WithItems(reqdto.BookingItemRequest{MenuItemID: itemID, Quantity: 1}).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, env.ownerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "unavailable")
		require.Equal(s.T(), 10, s.seats(env))
	})

	s.Run("requires authentication", func() {
		env := s.setupEnv(10)

		req := builder.NewBookingBuilder().
			WithRestaurantID(env.restaurantID).
			WithDate(env.dateStr).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *BookingSuite) TestSlotCapacity() {
	s.Run("sequential bookings cannot oversell a slot", func() {
		env := s.setupEnv(6)
		secondToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "second@example.com", "customer")

		s.createBooking(env, 4, env.ownerToken)
		require.Equal(s.T(), 2, s.seats(env))

		req := builder.NewBookingBuilder().
			WithRestaurantID(env.restaurantID).
			WithDate(env.dateStr).
			WithPartySize(4).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, secondToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Not enough seats")
		require.Equal(s.T(), 2, s.seats(env))

		// The remaining seats are still bookable.
		s.createBooking(env, 2, secondToken)
		require.Equal(s.T(), 0, s.seats(env))
	})

	s.Run("concurrent reserves admit exactly one winner", func() {
		env := s.setupEnv(4)
		secondToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "second@example.com", "customer")

		req := builder.NewBookingBuilder().
			WithRestaurantID(env.restaurantID).
			WithDate(env.dateStr).
			WithPartySize(3).
			BuildCreateRequestDTO()

		tokens := []string{env.ownerToken, secondToken}
		codes := make([]int, len(tokens))

		var wg sync.WaitGroup
		for i, token := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", req, token)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		sort.Ints(codes)
		require.Equal(s.T(), []int{http.StatusConflict, http.StatusCreated}, codes)
		require.Equal(s.T(), 1, s.seats(env))
	})
}

func (s *BookingSuite) TestApproveBooking() {
	s.Run("approves a pending booking without touching inventory", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("approve", created.ID, nil, env.adminToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code, w.Body.String())

		fetched := s.getBooking(created.ID, env.adminToken)
		require.Equal(s.T(), "approved", fetched.Status)
		require.NotNil(s.T(), fetched.DecidedAt)
		require.Equal(s.T(), 6, s.seats(env))
	})

	s.Run("rejects a second approval of the same booking", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("approve", created.ID, nil, env.adminToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code)

		w = s.decide("approve", created.ID, nil, env.adminToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "does not permit")
	})

	s.Run("denies customers", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("approve", created.ID, nil, env.ownerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("returns not found for an unknown booking", func() {
		env := s.setupEnv(10)

		w := s.decide("approve", uuid.New(), nil, env.adminToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingSuite) TestRejectBooking() {
	s.Run("rejects with a note and releases seats", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)
		require.Equal(s.T(), 6, s.seats(env))

		body := map[string]string{"note": "Fully committed for a private event"}
		w := s.decide("reject", created.ID, body, env.adminToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code, w.Body.String())

		fetched := s.getBooking(created.ID, env.adminToken)
		require.Equal(s.T(), "rejected", fetched.Status)
		require.NotNil(s.T(), fetched.AdminNote)
		require.Equal(s.T(), "Fully committed for a private event", *fetched.AdminNote)
		require.Equal(s.T(), 10, s.seats(env))
	})

	s.Run("requires a note", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("reject", created.ID, nil, env.adminToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "note")

		fetched := s.getBooking(created.ID, env.adminToken)
		require.Equal(s.T(), "pending", fetched.Status)
		require.Equal(s.T(), 6, s.seats(env))
	})
}

func (s *BookingSuite) TestCancelBooking() {
	s.Run("owner cancels a pending booking and seats come back", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("cancel", created.ID, nil, env.ownerToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code, w.Body.String())

		fetched := s.getBooking(created.ID, env.ownerToken)
		require.Equal(s.T(), "cancelled", fetched.Status)
		require.Equal(s.T(), 10, s.seats(env))
	})

	s.Run("releases seats exactly once on repeat cancellation", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("cancel", created.ID, nil, env.ownerToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code)
		require.Equal(s.T(), 10, s.seats(env))

		w = s.decide("cancel", created.ID, nil, env.ownerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "does not permit")
		require.Equal(s.T(), 10, s.seats(env))
	})

	s.Run("denies cancelling someone else's booking", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)
		strangerToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "stranger@example.com", "customer")

		w := s.decide("cancel", created.ID, nil, strangerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "own bookings")
		require.Equal(s.T(), 6, s.seats(env))
	})

	s.Run("admin cancels an approved booking", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("approve", created.ID, nil, env.adminToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code)

		w = s.decide("cancel", created.ID, nil, env.adminToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code, w.Body.String())

		fetched := s.getBooking(created.ID, env.adminToken)
		require.Equal(s.T(), "cancelled", fetched.Status)
		require.Equal(s.T(), 10, s.seats(env))
	})
}

func (s *BookingSuite) TestCompleteBooking() {
	s.Run("completes an approved booking and keeps seats reserved", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("approve", created.ID, nil, env.adminToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code)

		w = s.decide("complete", created.ID, nil, env.adminToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code, w.Body.String())

		fetched := s.getBooking(created.ID, env.adminToken)
		require.Equal(s.T(), "completed", fetched.Status)
		require.Equal(s.T(), 6, s.seats(env))
	})

	s.Run("refuses to complete a pending booking", func() {
		env := s.setupEnv(10)
		created := s.createBooking(env, 4, env.ownerToken)

		w := s.decide("complete", created.ID, nil, env.adminToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "does not permit")
	})
}

func (s *BookingSuite) TestListBookings() {
	s.Run("lists only the caller's own bookings", func() {
		env := s.setupEnv(20)
		otherToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "other@example.com", "customer")

		mine := s.createBooking(env, 2, env.ownerToken)
		s.createBooking(env, 2, otherToken)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/my", nil, env.ownerToken)
		var list []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list, 1)
		require.Equal(s.T(), mine.ID, list[0].ID)
	})

	s.Run("admin list filters by status", func() {
		env := s.setupEnv(20)
		created := s.createBooking(env, 2, env.ownerToken)
		approved := s.createBooking(env, 2, env.ownerToken)

		w := s.decide("approve", approved.ID, nil, env.adminToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings?status=pending", nil, env.adminToken)
		var list []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list, 1)
		require.Equal(s.T(), created.ID, list[0].ID)
	})

	s.Run("counts pending bookings", func() {
		env := s.setupEnv(20)
		s.createBooking(env, 2, env.ownerToken)
		s.createBooking(env, 2, env.ownerToken)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/pending/count", nil, env.adminToken)
		var resp resdto.PendingCountResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		require.Equal(s.T(), int64(2), resp.Count)
	})
}

package transport

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	availability "mesaYaSync/internal/modules/availability/domain"
	"mesaYaSync/internal/modules/sync/application/port"
	"mesaYaSync/internal/modules/sync/application/usecase"
	"mesaYaSync/internal/shared/httputil"
)

// AvailabilityHandler serves slot generation and occupancy queries computed
// from the restaurant profile and the live mirror.
type AvailabilityHandler struct {
	profiles *usecase.RestaurantProfileCache
	mirror   *usecase.ReservationMirror
	mapper   *httputil.ErrorMapper
}

func NewAvailabilityHandler(profiles *usecase.RestaurantProfileCache, mirror *usecase.ReservationMirror) *AvailabilityHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(port.ErrFetchUnauthorized, http.StatusBadGateway, "upstream rejected credential").
		WithMapping(port.ErrFetchNotFound, http.StatusBadGateway, "upstream resource missing").
		WithMapping(port.ErrFetchFailed, http.StatusBadGateway, "upstream fetch failed")
	return &AvailabilityHandler{profiles: profiles, mirror: mirror, mapper: mapper}
}

type slotsResponse struct {
	DayOfWeek int      `json:"dayOfWeek"`
	Date      string   `json:"date,omitempty"`
	Blocked   bool     `json:"blocked"`
	Reason    string   `json:"reason,omitempty"`
	Times     []string `json:"times"`
}

// Slots answers GET /api/v1/availability/slots?dayOfWeek=N or ?date=YYYY-MM-DD.
// When a date is given its weekday is derived and explicit day blocks apply.
func (h *AvailabilityHandler) Slots(c echo.Context) error {
	profile, err := h.profiles.Get(c.Request().Context())
	if err != nil {
		info := h.mapper.Map(err)
		return echo.NewHTTPError(info.Status, info.Message)
	}

	response := slotsResponse{Times: []string{}}

	var day time.Weekday
	if date := strings.TrimSpace(c.QueryParam("date")); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		day = parsed.Weekday()
		response.Date = date
		if reason, blocked := availability.BlockReason(profile.BlockedDates, date); blocked {
			response.DayOfWeek = int(day)
			response.Blocked = true
			response.Reason = reason
			return c.JSON(http.StatusOK, response)
		}
	} else {
		raw := strings.TrimSpace(c.QueryParam("dayOfWeek"))
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 6 {
			return echo.NewHTTPError(http.StatusBadRequest, "dayOfWeek must be 0 (Sunday) through 6 (Saturday)")
		}
		day = time.Weekday(parsed)
	}
	response.DayOfWeek = int(day)

	if times := availability.AvailableTimeSlots(profile.OpeningHours, day); times != nil {
		response.Times = times
	}
	return c.JSON(http.StatusOK, response)
}

// Occupancy answers GET /api/v1/availability/occupancy?date=YYYY-MM-DD or
// ?month=YYYY-MM, computed over the current mirror contents. maxCapacity from
// the restaurant profile can be overridden by query parameter.
func (h *AvailabilityHandler) Occupancy(c echo.Context) error {
	profile, err := h.profiles.Get(c.Request().Context())
	if err != nil {
		info := h.mapper.Map(err)
		return echo.NewHTTPError(info.Status, info.Message)
	}

	maxCapacity := profile.MaxCapacity
	if raw := strings.TrimSpace(c.QueryParam("maxCapacity")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "maxCapacity must be a positive integer")
		}
		maxCapacity = parsed
	}
	if maxCapacity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "restaurant capacity not configured")
	}

	items := h.mirror.Reservations()

	if date := strings.TrimSpace(c.QueryParam("date")); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		return c.JSON(http.StatusOK, availability.ComputeDayOccupancy(items, date, maxCapacity))
	}
	if month := strings.TrimSpace(c.QueryParam("month")); month != "" {
		occupancy, ok := availability.ComputeMonthOccupancy(items, month, maxCapacity)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month, expected YYYY-MM")
		}
		return c.JSON(http.StatusOK, occupancy)
	}
	return echo.NewHTTPError(http.StatusBadRequest, "date or month query parameter required")
}

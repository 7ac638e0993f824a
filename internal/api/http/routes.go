package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/daylight/internal/locations"
	"github.com/i474232898/daylight/internal/solar"
)

var validate = validator.New()

// requestTimeout bounds how long a handler waits for observations. Fetches
// that outlive it still complete and populate the cache.
const requestTimeout = 15 * time.Second

// Service is the subset of solar.Service the routes need.
type Service interface {
	Observe(ctx context.Context, loc solar.Location, date time.Time) solar.Observation
	CompareDayOverDay(ctx context.Context, loc solar.Location, date time.Time) solar.Comparison
	CompareWeekOverWeek(ctx context.Context, loc solar.Location, date time.Time) solar.Comparison
	Overview(ctx context.Context, loc solar.Location, date time.Time) (day, week solar.Comparison)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Service, registry *locations.Registry) {
	h := &handlers{service: service, registry: registry, now: time.Now}

	v1 := app.Group("/api/v1")
	v1.Get("/locations", h.listLocations)
	v1.Get("/locations/:id/observation", h.observation)
	v1.Get("/locations/:id/comparison/day", h.dayComparison)
	v1.Get("/locations/:id/comparison/week", h.weekComparison)
	v1.Get("/locations/:id/overview", h.overview)
	v1.Get("/summary", h.summary)
	v1.Get("/observation", h.adhocObservation)
}

type handlers struct {
	service  Service
	registry *locations.Registry
	now      func() time.Time
}

func (h *handlers) listLocations(c *fiber.Ctx) error {
	primary := h.registry.Primary().ID
	all := h.registry.All()
	out := make([]fiber.Map, 0, len(all))
	for _, l := range all {
		out = append(out, fiber.Map{
			"id":        l.ID,
			"name":      l.Name,
			"latitude":  l.Latitude,
			"longitude": l.Longitude,
			"timezone":  l.TimeZone,
			"primary":   l.ID == primary,
		})
	}
	return c.JSON(out)
}

func (h *handlers) observation(c *fiber.Ctx) error {
	loc, date, err := h.locationAndDate(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	return c.JSON(fiber.Map{
		"location":    loc,
		"observation": toObservationView(h.service.Observe(ctx, loc, date)),
	})
}

func (h *handlers) dayComparison(c *fiber.Ctx) error {
	loc, date, err := h.locationAndDate(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	return c.JSON(fiber.Map{
		"location":   loc,
		"comparison": toComparisonView(h.service.CompareDayOverDay(ctx, loc, date)),
	})
}

func (h *handlers) weekComparison(c *fiber.Ctx) error {
	loc, date, err := h.locationAndDate(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	return c.JSON(fiber.Map{
		"location":   loc,
		"comparison": toComparisonView(h.service.CompareWeekOverWeek(ctx, loc, date)),
	})
}

func (h *handlers) overview(c *fiber.Ctx) error {
	loc, date, err := h.locationAndDate(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	day, week := h.service.Overview(ctx, loc, date)
	return c.JSON(fiber.Map{
		"location": loc,
		"day":      toComparisonView(day),
		"week":     toComparisonView(week),
	})
}

func (h *handlers) summary(c *fiber.Ctx) error {
	loc := h.registry.Primary()
	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	day := h.service.CompareDayOverDay(ctx, loc, h.now())
	return c.JSON(fiber.Map{
		"location": loc.Name,
		"date":     day.Current.Date,
		"summary":  day.Summary(),
	})
}

func (h *handlers) adhocObservation(c *fiber.Ctx) error {
	q, err := parseCoordinateQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	loc := q.toLocation()
	date, err := h.parseDateQuery(c, loc)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	return c.JSON(fiber.Map{
		"location":    loc,
		"observation": toObservationView(h.service.Observe(ctx, loc, date)),
	})
}

func (h *handlers) locationAndDate(c *fiber.Ctx) (solar.Location, time.Time, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return solar.Location{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid location id")
	}
	loc, err := h.registry.ByID(id)
	if err != nil {
		if errors.Is(err, locations.ErrNotFound) {
			return solar.Location{}, time.Time{}, fiber.NewError(fiber.StatusNotFound, "unknown location")
		}
		return solar.Location{}, time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "failed to look up location")
	}
	date, err := h.parseDateQuery(c, loc)
	if err != nil {
		return solar.Location{}, time.Time{}, err
	}
	return loc, date, nil
}

// parseDateQuery reads the optional `date` parameter as a calendar date in the
// location's zone, defaulting to now.
func (h *handlers) parseDateQuery(c *fiber.Ctx, loc solar.Location) (time.Time, error) {
	s := c.Query("date")
	if s == "" {
		return h.now(), nil
	}
	date, err := solar.ParseDate(s, loc.TZ())
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date; use yyyy-mm-dd")
	}
	return date, nil
}

// coordinateQuery holds query parameters for an ad-hoc location.
type coordinateQuery struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	TimeZone  string  `validate:"required,timezone"`
}

func (q coordinateQuery) toLocation() solar.Location {
	name := strconv.FormatFloat(q.Latitude, 'f', 4, 64) + "," + strconv.FormatFloat(q.Longitude, 'f', 4, 64)
	// The zone is part of the identity: cached observations carry it.
	return solar.Location{
		ID:        locations.StableID(name+"@"+q.TimeZone, q.Latitude, q.Longitude),
		Name:      name,
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
		TimeZone:  q.TimeZone,
	}
}

func parseCoordinateQuery(c *fiber.Ctx) (coordinateQuery, error) {
	var q coordinateQuery

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		return q, errors.New("lat and lng query parameters are required")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("invalid lat")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return q, errors.New("invalid lng")
	}
	q.Latitude = lat
	q.Longitude = lng
	q.TimeZone = c.Query("tz")

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

func TestMetricsMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewMetricsMiddleware(DefaultMetricsConfig()).Handler())
	app.Get("/api/v1/person/random", func(c *fiber.Ctx) error {
		return apperrors.NotFound("person")
	})
	app.Delete("/api/v1/person/:id", func(c *fiber.Ctx) error {
		return c.SendString("{}")
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendString("")
	})

	t.Run("labels by route pattern", func(t *testing.T) {
		counter := httpRequestsTotal.WithLabelValues("DELETE", "/api/v1/person/:id", "200")
		before := testutil.ToFloat64(counter)

		for _, id := range []string{"1", "2", "3"} {
			_, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/person/"+id, nil))
			require.NoError(t, err)
		}

		assert.Equal(t, before+3, testutil.ToFloat64(counter))
	})

	t.Run("records status of returned errors", func(t *testing.T) {
		counter := httpRequestsTotal.WithLabelValues("GET", "/api/v1/person/random", "404")
		before := testutil.ToFloat64(counter)

		_, err := app.Test(httptest.NewRequest("GET", "/api/v1/person/random", nil))
		require.NoError(t, err)

		assert.Equal(t, before+1, testutil.ToFloat64(counter))
	})

	t.Run("skips scrape endpoint", func(t *testing.T) {
		counter := httpRequestsTotal.WithLabelValues("GET", "/metrics", "200")
		before := testutil.ToFloat64(counter)

		_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
		require.NoError(t, err)

		assert.Equal(t, before, testutil.ToFloat64(counter))
	})

	t.Run("label values survive later requests", func(t *testing.T) {
		for _, req := range []struct{ method, target string }{
			{"DELETE", "/api/v1/person/1"},
			{"GET", "/api/v1/person/random"},
			{"DELETE", "/api/v1/person/2"},
			{"GET", "/api/v1/person/random"},
		} {
			_, err := app.Test(httptest.NewRequest(req.method, req.target, nil))
			require.NoError(t, err)
		}

		_, err := prometheus.DefaultGatherer.Gather()
		require.NoError(t, err)

		for _, method := range []string{"GET", "DELETE"} {
			assert.Equal(t, float64(0), testutil.ToFloat64(httpActiveRequests.WithLabelValues(method)))
		}
	})

	t.Run("active requests settle at zero", func(t *testing.T) {
		assert.Equal(t, float64(0), testutil.ToFloat64(httpActiveRequests.WithLabelValues("GET")))
	})
}

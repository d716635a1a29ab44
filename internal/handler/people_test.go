package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/domain"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
	"github.com/awesomepeople/people/api/internal/repository/memory"
	"github.com/awesomepeople/people/api/internal/service"
	"github.com/awesomepeople/people/api/internal/testutil"
)

// MockPersonQueries mocks the query service
type MockPersonQueries struct {
	mock.Mock
}

func (m *MockPersonQueries) Create(ctx context.Context, name string) (*domain.Person, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockPersonQueries) List(ctx context.Context, order domain.SortOrder) ([]domain.Person, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Person), args.Error(1)
}

func (m *MockPersonQueries) Delete(ctx context.Context, id int64) (*domain.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

// MockRandomPicker mocks the random service
type MockRandomPicker struct {
	mock.Mock
}

func (m *MockRandomPicker) PickRandom(ctx context.Context) (*domain.Person, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func setupPeopleTestApp(queries PersonQueries, random RandomPicker) *fiber.App {
	logger := zap.NewNop()
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger)})
	NewPeopleHandler(queries, random, logger).RegisterRoutes(app.Group("/api/v1"))
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestPeopleHandler_CreatePersonWithoutJSONContentType(t *testing.T) {
	for _, contentType := range []string{"", "text/plain"} {
		t.Run("content type "+strconv.Quote(contentType), func(t *testing.T) {
			queries := new(MockPersonQueries)

			req := httptest.NewRequest("POST", "/api/v1/person", bytes.NewBufferString(`{"name":""}`))
			if contentType != "" {
				req.Header.Set("Content-Type", contentType)
			}

			app := setupPeopleTestApp(queries, new(MockRandomPicker))
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeBody[ErrorResponse](t, resp)
			assert.Equal(t, "Bad Request", body.Error)
			assert.Contains(t, body.Message, "Invalid request body")
			queries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPeopleHandler_CreatePerson(t *testing.T) {
	t.Run("creates person", func(t *testing.T) {
		queries := new(MockPersonQueries)
		queries.On("Create", mock.Anything, "Ada").Return(testutil.NewTestPerson(1, "Ada"), nil)

		app := setupPeopleTestApp(queries, new(MockRandomPicker))
		resp, err := app.Test(jsonRequest("POST", "/api/v1/person", `{"name":"Ada"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, domain.Person{ID: 1, Name: "Ada"}, decodeBody[domain.Person](t, resp))
		queries.AssertExpectations(t)
	})

	t.Run("ignores client supplied id", func(t *testing.T) {
		queries := new(MockPersonQueries)
		queries.On("Create", mock.Anything, "Ada").Return(testutil.NewTestPerson(7, "Ada"), nil)

		app := setupPeopleTestApp(queries, new(MockRandomPicker))
		resp, err := app.Test(jsonRequest("POST", "/api/v1/person", `{"id":99,"name":"Ada"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, int64(7), decodeBody[domain.Person](t, resp).ID)
	})

	t.Run("rejects missing and blank names", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"name":""}`, `{"name":"   "}`} {
			queries := new(MockPersonQueries)
			app := setupPeopleTestApp(queries, new(MockRandomPicker))

			resp, err := app.Test(jsonRequest("POST", "/api/v1/person", body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

			got := decodeBody[map[string]any](t, resp)
			assert.Equal(t, "Bad Request", got["error"])
			assert.Equal(t, "Request validation failed", got["message"])
			assert.NotEmpty(t, got["errors"])

			queries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		queries := new(MockPersonQueries)
		app := setupPeopleTestApp(queries, new(MockRandomPicker))

		resp, err := app.Test(jsonRequest("POST", "/api/v1/person", `{"name":`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		queries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is a server error", func(t *testing.T) {
		queries := new(MockPersonQueries)
		queries.On("Create", mock.Anything, "Ada").Return(nil, apperrors.Storage("failed to insert person"))

		app := setupPeopleTestApp(queries, new(MockRandomPicker))
		resp, err := app.Test(jsonRequest("POST", "/api/v1/person", `{"name":"Ada"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		got := decodeBody[ErrorResponse](t, resp)
		assert.Equal(t, "Internal Server Error", got.Error)
		assert.Equal(t, "failed to insert person", got.Message)
	})
}

func TestPeopleHandler_ListPeople(t *testing.T) {
	tests := []struct {
		name  string
		query string
		order domain.SortOrder
	}{
		{"no sort", "", domain.SortNone},
		{"ascending", "?sort=ascending", domain.SortAscending},
		{"descending", "?sort=descending", domain.SortDescending},
		{"unknown sort is ignored", "?sort=sideways", domain.SortNone},
		{"sort is case sensitive", "?sort=Ascending", domain.SortNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			people := []domain.Person{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Grace"}}

			queries := new(MockPersonQueries)
			queries.On("List", mock.Anything, tt.order).Return(people, nil)

			app := setupPeopleTestApp(queries, new(MockRandomPicker))
			resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/people"+tt.query, nil))
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, people, decodeBody[[]domain.Person](t, resp))
			queries.AssertExpectations(t)
		})
	}

	t.Run("empty list renders as array", func(t *testing.T) {
		queries := new(MockPersonQueries)
		queries.On("List", mock.Anything, domain.SortNone).Return(nil, nil)

		app := setupPeopleTestApp(queries, new(MockRandomPicker))
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("storage failure", func(t *testing.T) {
		queries := new(MockPersonQueries)
		queries.On("List", mock.Anything, domain.SortNone).Return(nil, apperrors.Storage("failed to list people"))

		app := setupPeopleTestApp(queries, new(MockRandomPicker))
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestPeopleHandler_DeletePerson(t *testing.T) {
	t.Run("returns deleted person", func(t *testing.T) {
		queries := new(MockPersonQueries)
		queries.On("Delete", mock.Anything, int64(3)).Return(testutil.NewTestPerson(3, "Linus"), nil)

		app := setupPeopleTestApp(queries, new(MockRandomPicker))
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/person/3", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, domain.Person{ID: 3, Name: "Linus"}, decodeBody[domain.Person](t, resp))
	})

	t.Run("missing person is not found", func(t *testing.T) {
		queries := new(MockPersonQueries)
		queries.On("Delete", mock.Anything, int64(42)).Return(nil, apperrors.NotFound("person"))

		app := setupPeopleTestApp(queries, new(MockRandomPicker))
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/person/42", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, ErrorResponse{Error: "Not Found", Message: "person not found"}, decodeBody[ErrorResponse](t, resp))
	})

	t.Run("non integer id is a bad request", func(t *testing.T) {
		queries := new(MockPersonQueries)

		app := setupPeopleTestApp(queries, new(MockRandomPicker))
		for _, id := range []string{"abc", "1.5", "99999999999999999999"} {
			resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/person/"+id, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
		}
		queries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPeopleHandler_RandomPerson(t *testing.T) {
	t.Run("returns a person", func(t *testing.T) {
		random := new(MockRandomPicker)
		random.On("PickRandom", mock.Anything).Return(testutil.NewTestPerson(2, "Grace"), nil)

		app := setupPeopleTestApp(new(MockPersonQueries), random)
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/person/random", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, domain.Person{ID: 2, Name: "Grace"}, decodeBody[domain.Person](t, resp))
	})

	t.Run("empty store is not found", func(t *testing.T) {
		random := new(MockRandomPicker)
		random.On("PickRandom", mock.Anything).Return(nil, apperrors.NotFound("person"))

		app := setupPeopleTestApp(new(MockPersonQueries), random)
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/person/random", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPeopleHandler_WithServices(t *testing.T) {
	store := memory.NewPersonRepository()
	queries := service.NewQueryService(store, nil, zap.NewNop())
	random := service.NewRandomService(store, domain.RandomUniform, zap.NewNop())
	app := setupPeopleTestApp(queries, random)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/person/random", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var created []domain.Person
	for _, name := range []string{"bob", "Alice", "Émile"} {
		resp, err := app.Test(jsonRequest("POST", "/api/v1/person", `{"name":"`+name+`"}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created = append(created, decodeBody[domain.Person](t, resp))
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/people?sort=ascending", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "bob", "Émile"}, testutil.Names(decodeBody[[]domain.Person](t, resp)))

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/person/random", nil))
	require.NoError(t, err)
	assert.Contains(t, created, decodeBody[domain.Person](t, resp))

	for _, p := range created {
		target := "/api/v1/person/" + strconv.FormatInt(p.ID, 10)
		resp, err := app.Test(httptest.NewRequest("DELETE", target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("DELETE", target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/people", nil))
	require.NoError(t, err)
	assert.Empty(t, decodeBody[[]domain.Person](t, resp))
}

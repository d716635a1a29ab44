package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/dto"
	apperrors "github.com/awesomepeople/people/api/internal/pkg/errors"
)

// PersonQueries defines the person operations the handler delegates to
type PersonQueries interface {
	Create(ctx context.Context, name string) (*domain.Person, error)
	List(ctx context.Context, order domain.SortOrder) ([]domain.Person, error)
	Delete(ctx context.Context, id int64) (*domain.Person, error)
}

// RandomPicker picks one person at random
type RandomPicker interface {
	PickRandom(ctx context.Context) (*domain.Person, error)
}

// PeopleHandler handles person endpoints
type PeopleHandler struct {
	queries PersonQueries
	random  RandomPicker
	logger  *zap.Logger
}

// NewPeopleHandler creates a new people handler
func NewPeopleHandler(queries PersonQueries, random RandomPicker, logger *zap.Logger) *PeopleHandler {
	return &PeopleHandler{
		queries: queries,
		random:  random,
		logger:  logger,
	}
}

// CreatePerson handles POST /api/v1/person
func (h *PeopleHandler) CreatePerson(c *fiber.Ctx) error {
	var req dto.CreatePersonRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	person, err := h.queries.Create(c.UserContext(), req.ToInput().Name)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(person)
}

// ListPeople handles GET /api/v1/people
func (h *PeopleHandler) ListPeople(c *fiber.Ctx) error {
	order := domain.ParseSortOrder(c.Query("sort"))

	people, err := h.queries.List(c.UserContext(), order)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if people == nil {
		people = []domain.Person{}
	}

	return c.JSON(people)
}

// DeletePerson handles DELETE /api/v1/person/:id
func (h *PeopleHandler) DeletePerson(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return respondError(c, h.logger, apperrors.BadRequest("Person ID must be an integer"))
	}

	person, err := h.queries.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(person)
}

// RandomPerson handles GET /api/v1/person/random
func (h *PeopleHandler) RandomPerson(c *fiber.Ctx) error {
	person, err := h.random.PickRandom(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(person)
}

// RegisterRoutes registers person routes on the versioned API group.
// The literal random route is registered ahead of the :id route.
func (h *PeopleHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/person", h.CreatePerson)
	router.Get("/people", h.ListPeople)
	router.Get("/person/random", h.RandomPerson)
	router.Delete("/person/:id", h.DeletePerson)
}

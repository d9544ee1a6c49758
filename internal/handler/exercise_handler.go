package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/DrNour/Nour-translation-app/internal/dto"
	"github.com/DrNour/Nour-translation-app/internal/middleware"
	"github.com/DrNour/Nour-translation-app/internal/models"
	"github.com/DrNour/Nour-translation-app/internal/service"
	"github.com/DrNour/Nour-translation-app/internal/utils"
)

// ExerciseHandler manages exercise endpoints.
type ExerciseHandler struct {
	service service.ExerciseService
	logger  zerolog.Logger
}

// NewExerciseHandler builds an exercise handler instance.
func NewExerciseHandler(service service.ExerciseService, logger zerolog.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		service: service,
		logger:  logger.With().Str("component", "exercise_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. Creation is
// limited to instructors via the supplied guard.
func (h *ExerciseHandler) Register(router fiber.Router, instructorOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", instructorOnly, h.create)
}

func (h *ExerciseHandler) list(c *fiber.Ctx) error {
	exercises, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	if !callerIsInstructor(c) {
		summaries := make([]dto.ExerciseSummary, 0, len(exercises))
		for _, exercise := range exercises {
			summaries = append(summaries, exercise.Summary())
		}
		return utils.SendSuccess(c, "exercises retrieved", summaries)
	}

	return utils.SendSuccess(c, "exercises retrieved", exercises)
}

func (h *ExerciseHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	exercise, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	if !callerIsInstructor(c) {
		return utils.SendSuccess(c, "exercise retrieved", exercise.Summary())
	}

	return utils.SendSuccess(c, "exercise retrieved", exercise)
}

// callerIsInstructor decides which view of an exercise is served. Everyone
// else gets the summary: the reference translation is the solution, so it
// never reaches students.
func callerIsInstructor(c *fiber.Ctx) bool {
	role, ok := middleware.UserRoleFromContext(c)
	return ok && role == models.RoleInstructor
}

func (h *ExerciseHandler) create(c *fiber.Ctx) error {
	var payload dto.ExerciseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	createdBy, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	exercise, err := h.service.Create(c.Context(), payload, createdBy)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exercise created", exercise)
}

func (h *ExerciseHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrExerciseNotFound), errors.Is(err, service.ErrInstructorNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("exercise request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/PY-Dev20/traint-5x5/internal/i18n"
	"github.com/PY-Dev20/traint-5x5/internal/models"
	"github.com/PY-Dev20/traint-5x5/internal/services"
	"github.com/gofiber/fiber/v2"
)

type catalogApplicationService interface {
	ListExercises(ctx context.Context, locale i18n.Locale) ([]models.ExerciseView, error)
	GetExercise(ctx context.Context, exerciseID int64, locale i18n.Locale) (*models.ExerciseView, error)
	ListPrograms(ctx context.Context, locale i18n.Locale) ([]models.ProgramView, error)
	GetProgram(ctx context.Context, programID int64, locale i18n.Locale) (*models.ProgramView, error)
	Enroll(ctx context.Context, userID, programID int64) (*models.UserPlan, bool, error)
}

type CatalogHandler struct {
	service catalogApplicationService
	logger  *slog.Logger
}

func NewCatalogHandler(service catalogApplicationService, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{service: service, logger: logger}
}

type enrollRequest struct {
	Program *int64 `json:"program" validate:"required,gt=0"`
}

func (h *CatalogHandler) ListExercises(c *fiber.Ctx) error {
	exercises, err := h.service.ListExercises(c.UserContext(), requestLocale(c))
	if err != nil {
		return h.mapCatalogError(c, err)
	}
	if exercises == nil {
		exercises = []models.ExerciseView{}
	}
	return c.JSON(exercises)
}

func (h *CatalogHandler) GetExercise(c *fiber.Ctx) error {
	exerciseID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || exerciseID <= 0 {
		return h.mapCatalogError(c, services.ErrExerciseNotFound)
	}

	exercise, err := h.service.GetExercise(c.UserContext(), exerciseID, requestLocale(c))
	if err != nil {
		return h.mapCatalogError(c, err)
	}
	return c.JSON(exercise)
}

func (h *CatalogHandler) ListPrograms(c *fiber.Ctx) error {
	programs, err := h.service.ListPrograms(c.UserContext(), requestLocale(c))
	if err != nil {
		return h.mapCatalogError(c, err)
	}
	if programs == nil {
		programs = []models.ProgramView{}
	}
	return c.JSON(programs)
}

func (h *CatalogHandler) GetProgram(c *fiber.Ctx) error {
	programID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || programID <= 0 {
		return h.mapCatalogError(c, services.ErrProgramNotFound)
	}

	program, err := h.service.GetProgram(c.UserContext(), programID, requestLocale(c))
	if err != nil {
		return h.mapCatalogError(c, err)
	}
	return c.JSON(program)
}

// Enroll answers 201 with a new plan and 200 with the plan that already
// existed for the caller and program.
func (h *CatalogHandler) Enroll(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req enrollRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.mapCatalogError(c, bodyParseError(err))
		}
	}
	if verr := validateRequest(req); verr != nil {
		return h.mapCatalogError(c, verr)
	}

	plan, created, err := h.service.Enroll(c.UserContext(), userID, *req.Program)
	if err != nil {
		return h.mapCatalogError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(plan)
}

func (h *CatalogHandler) mapCatalogError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(validation.Fields)
	case errors.Is(err, services.ErrExerciseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	case errors.Is(err, services.ErrProgramNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	default:
		h.logger.Error("catalog request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process catalog request"})
	}
}

func requestLocale(c *fiber.Ctx) i18n.Locale {
	return i18n.NormalizeLocale(c.Query("lang"))
}

func bodyParseError(err error) *services.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "program" {
		return services.NewValidationError(
			"program",
			"Incorrect type. Expected pk value, received "+typeErr.Value+".",
		)
	}
	return services.NewValidationError("non_field_errors", "Invalid request body")
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if userID <= 0 {
		return 0, strconv.ErrRange
	}
	return userID, nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

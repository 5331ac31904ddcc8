package routes

import (
	"log/slog"

	"github.com/PY-Dev20/traint-5x5/internal/cache"
	"github.com/PY-Dev20/traint-5x5/internal/config"
	"github.com/PY-Dev20/traint-5x5/internal/handlers"
	"github.com/PY-Dev20/traint-5x5/internal/media"
	"github.com/PY-Dev20/traint-5x5/internal/middleware"
	"github.com/PY-Dev20/traint-5x5/internal/repository"
	"github.com/PY-Dev20/traint-5x5/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Dependencies are the optional collaborators built in main. A nil Cache
// disables view caching and a nil Media falls back to local media paths.
type Dependencies struct {
	Cache  *cache.ViewCache
	Media  media.Resolver
	Logger *slog.Logger
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, db repository.DBTX, deps Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := deps.Media
	if resolver == nil {
		var err error
		resolver, err = media.NewResolver(media.Config{})
		if err != nil {
			return err
		}
	}

	exerciseRepo := repository.NewExerciseRepository(db)
	programRepo := repository.NewProgramRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	coachRepo := repository.NewCoachRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userPlanRepo := repository.NewUserPlanRepository(db)

	composer := services.NewProgramComposer(
		sessionRepo,
		exerciseRepo,
		coachRepo,
		categoryRepo,
		resolver,
		logger,
	)
	var views services.ViewCache
	if deps.Cache != nil {
		views = deps.Cache
	}
	catalogService := services.NewCatalogService(
		exerciseRepo,
		programRepo,
		userPlanRepo,
		composer,
		views,
		logger,
	)
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	authRequired := middleware.AuthRequired(cfg.JWTSecret)

	api := app.Group("/api")

	exercises := api.Group("/exercises")
	exercises.Get("", catalogHandler.ListExercises)
	exercises.Get("/:id", catalogHandler.GetExercise)

	programs := api.Group("/programs")
	programs.Get("", catalogHandler.ListPrograms)
	programs.Post("/user-plans", authRequired, catalogHandler.Enroll)
	programs.Get("/:id", catalogHandler.GetProgram)

	api.Post("/user-plans", authRequired, catalogHandler.Enroll)

	return nil
}

package routes

import (
	"pluain/backend/chat"
	"pluain/backend/config"
	"pluain/backend/controllers"
	"pluain/backend/evaluation"
	"pluain/backend/middleware"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// Deps is everything the handlers need. Built once in main.
type Deps struct {
	Cfg      *config.Config
	Logger   *utils.Logger
	Progress *store.ProgressStore
	Roadmap  *store.RoadmapStore
	Sessions *store.SessionStore
	Room     *chat.Room
	Rand     evaluation.Rand
}

func SetupRoutes(app *fiber.App, d Deps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return utils.OK(c, fiber.Map{
			"status":  "ok",
			"version": d.Cfg.AppVersion,
			"storage": d.Cfg.StorageDriver,
		})
	})

	authMiddleware := middleware.AuthMiddleware(d.Cfg, d.Sessions)

	// Auth routes
	authController := controllers.NewAuthController(d.Sessions, d.Cfg, d.Logger)
	api.Post("/auth/login", authController.Login)
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/logout", authMiddleware, authController.Logout)
	api.Get("/auth/session", authMiddleware, authController.Session)

	// Stage routes
	stagesController := controllers.NewStagesController(d.Progress, d.Logger)
	stages := api.Group("/stages", authMiddleware)
	stages.Get("/", stagesController.GetStages)
	stages.Get("/:id", stagesController.GetStage)
	stages.Get("/:id/progress", stagesController.GetStageProgress)
	stages.Post("/:id/complete", stagesController.CompleteStage)

	// Notes routes
	notesController := controllers.NewNotesController(d.Progress, d.Logger)
	notes := api.Group("/notes", authMiddleware)
	notes.Get("/", notesController.GetNotes)
	notes.Post("/", notesController.CreateNote)
	notes.Get("/:id", notesController.GetNote)
	notes.Put("/:id", notesController.UpdateNote)
	notes.Delete("/:id", notesController.DeleteNote)

	// Chat routes
	chatController := controllers.NewChatController(d.Progress, d.Room, d.Logger)
	chatGroup := api.Group("/chat", authMiddleware)
	chatGroup.Get("/", chatController.GetHistory)
	chatGroup.Delete("/", chatController.ClearHistory)
	chatGroup.Post("/messages", chatController.SendMessage)
	chatGroup.Get("/presence", chatController.GetPresence)

	// Feedback and suggestions
	communityController := controllers.NewCommunityController(d.Progress, d.Logger)
	api.Get("/feedback", authMiddleware, communityController.GetFeedback)
	api.Post("/feedback", authMiddleware, communityController.SubmitFeedback)
	suggestions := api.Group("/suggestions", authMiddleware)
	suggestions.Get("/", communityController.GetSuggestions)
	suggestions.Post("/", communityController.CreateSuggestion)
	suggestions.Post("/:id/vote", communityController.VoteSuggestion)

	// Profile routes
	profileController := controllers.NewProfileController(d.Progress, d.Sessions, d.Logger, d.Rand)
	profile := api.Group("/profile", authMiddleware)
	profile.Get("/", profileController.GetProfile)
	profile.Put("/", profileController.UpdateProfile)
	profile.Put("/settings", profileController.UpdateSettings)
	profile.Post("/education", profileController.AddEducation)
	profile.Post("/courses", profileController.AddCourse)
	profile.Get("/achievements", profileController.GetAchievements)

	// Evaluation routes
	evaluationController := controllers.NewEvaluationController(d.Progress, d.Rand)
	api.Get("/statistics", authMiddleware, evaluationController.GetStatistics)
	api.Get("/evaluation/overview", authMiddleware, evaluationController.GetOverview)

	// Roadmap routes
	roadmapController := controllers.NewRoadmapController(d.Roadmap, d.Logger)
	roadmap := api.Group("/roadmap", authMiddleware)
	roadmap.Get("/", roadmapController.GetRoadmap)
	roadmap.Delete("/", roadmapController.ResetRoadmap)
	roadmap.Post("/skills/:skillId", roadmapController.CompleteSkill)
	roadmap.Post("/stages/:id/complete", roadmapController.CompleteStage)

	exportController := controllers.NewExportController(d.Progress, d.Roadmap, d.Cfg, d.Logger)
	api.Get("/export", authMiddleware, exportController.Export)
}

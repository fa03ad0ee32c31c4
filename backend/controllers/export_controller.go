package controllers

import (
	"time"

	"pluain/backend/config"
	"pluain/backend/middleware"
	"pluain/backend/models"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	Progress *store.ProgressStore
	Roadmap  *store.RoadmapStore
	Cfg      *config.Config
	Logger   *utils.Logger
}

func NewExportController(progress *store.ProgressStore, roadmap *store.RoadmapStore, cfg *config.Config, logger *utils.Logger) *ExportController {
	return &ExportController{Progress: progress, Roadmap: roadmap, Cfg: cfg, Logger: logger}
}

// Export godoc
// @Summary Export all data
// @Description Debug dump of the session user, the progress document and the roadmap
// @Tags export
// @Produce json
// @Success 200 {object} models.Export
// @Security ApiKeyAuth
// @Router /export [get]
func (ec *ExportController) Export(c *fiber.Ctx) error {
	doc, err := ec.Progress.Document()
	if err != nil {
		ec.Logger.Error("failed to snapshot document", "error", err)
		return utils.InternalServerError(c, "Could not export data")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pluain-export.json"`)
	return c.JSON(models.Export{
		User:      middleware.CurrentUser(c),
		Data:      doc,
		Roadmap:   ec.Roadmap.Progress(),
		Version:   ec.Cfg.AppVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

package controllers

import (
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type StagesController struct {
	Progress *store.ProgressStore
	Logger   *utils.Logger
}

func NewStagesController(progress *store.ProgressStore, logger *utils.Logger) *StagesController {
	return &StagesController{Progress: progress, Logger: logger}
}

// GetStages godoc
// @Summary List curriculum stages
// @Description Returns the stage catalog ordered by level, with the user's progress
// @Tags stages
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stages [get]
func (sc *StagesController) GetStages(c *fiber.Ctx) error {
	return utils.OK(c, fiber.Map{
		"stages":       sc.Progress.Stages(),
		"userProgress": sc.Progress.UserProgress(),
	})
}

// GetStage godoc
// @Summary Get a stage
// @Tags stages
// @Produce json
// @Param id path string true "Stage ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stages/{id} [get]
func (sc *StagesController) GetStage(c *fiber.Ctx) error {
	stage, ok := sc.Progress.GetStage(c.Params("id"))
	if !ok {
		return utils.NotFound(c, "Stage not found")
	}
	return utils.OK(c, stage)
}

// GetStageProgress godoc
// @Summary Stage progress
// @Description completed stages report 100, everything else 0
// @Tags stages
// @Produce json
// @Param id path string true "Stage ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stages/{id}/progress [get]
func (sc *StagesController) GetStageProgress(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := sc.Progress.GetStage(id); !ok {
		return utils.NotFound(c, "Stage not found")
	}
	return utils.OK(c, sc.Progress.GetStageProgress(id))
}

// CompleteStage godoc
// @Summary Complete a stage
// @Description Marks the stage completed, credits XP once and unlocks dependent stages
// @Tags stages
// @Produce json
// @Param id path string true "Stage ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stages/{id}/complete [post]
func (sc *StagesController) CompleteStage(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := sc.Progress.CompleteStage(id)
	if err != nil {
		sc.Logger.Error("failed to persist stage completion", "stage", id, "error", err)
		return utils.InternalServerError(c, "Could not save progress")
	}
	if !ok {
		return utils.NotFound(c, "Stage not found")
	}

	stage, _ := sc.Progress.GetStage(id)
	return utils.OK(c, fiber.Map{
		"stage":        stage,
		"userProgress": sc.Progress.UserProgress(),
	}, "Fase concluída!")
}

package controllers

import (
	"pluain/backend/evaluation"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type EvaluationController struct {
	Progress *store.ProgressStore
	Rand     evaluation.Rand
}

func NewEvaluationController(progress *store.ProgressStore, rng evaluation.Rand) *EvaluationController {
	if rng == nil {
		rng = evaluation.DefaultRand
	}
	return &EvaluationController{Progress: progress, Rand: rng}
}

// GetStatistics godoc
// @Summary Learning statistics
// @Description streak is completed stages capped at 30, not a day count
// @Tags evaluation
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /statistics [get]
func (ec *EvaluationController) GetStatistics(c *fiber.Ctx) error {
	return utils.OK(c, ec.Progress.GetStatistics())
}

// GetOverview godoc
// @Summary Evaluation dashboard
// @Description Completion percent, per-track skill progress and study time. Entries flagged placeholder are generated.
// @Tags evaluation
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /evaluation/overview [get]
func (ec *EvaluationController) GetOverview(c *fiber.Ctx) error {
	overview := evaluation.Overview(
		ec.Progress.GetStatistics(),
		ec.Progress.Stages(),
		ec.Progress.CompletedStageIDs(),
		ec.Rand,
	)
	return utils.OK(c, overview)
}

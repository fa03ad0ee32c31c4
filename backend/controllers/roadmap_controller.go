package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type RoadmapController struct {
	Roadmap *store.RoadmapStore
	Logger  *utils.Logger
}

func NewRoadmapController(roadmap *store.RoadmapStore, logger *utils.Logger) *RoadmapController {
	return &RoadmapController{Roadmap: roadmap, Logger: logger}
}

// GetRoadmap godoc
// @Summary Fullstack roadmap
// @Description Twelve phases with status, skill progress, coins, level and overall journey percent
// @Tags roadmap
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /roadmap [get]
func (rc *RoadmapController) GetRoadmap(c *fiber.Ctx) error {
	return utils.OK(c, rc.Roadmap.Overview())
}

// CompleteSkill godoc
// @Summary Tick a skill
// @Description skillId has the form "<stageId>-<skillIndex>". Ticking twice is harmless.
// @Tags roadmap
// @Produce json
// @Param skillId path string true "Skill ID" example(3-0)
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /roadmap/skills/{skillId} [post]
func (rc *RoadmapController) CompleteSkill(c *fiber.Ctx) error {
	skillID := c.Params("skillId")

	var stageID, index int
	if _, err := fmt.Sscanf(skillID, "%d-%d", &stageID, &index); err != nil || store.SkillID(stageID, index) != skillID {
		return utils.BadRequest(c, "Invalid skill ID")
	}
	stage, ok := rc.Roadmap.Stage(stageID)
	if !ok || index < 0 || index >= len(stage.Skills) {
		return utils.NotFound(c, "Skill not found")
	}
	if rc.Roadmap.IsLocked(stageID) {
		return utils.Conflict(c, "Stage is locked")
	}

	if _, err := rc.Roadmap.CompleteSkill(skillID); err != nil {
		rc.Logger.Error("failed to save skill", "skill", skillID, "error", err)
		return utils.InternalServerError(c, "Could not save progress")
	}

	message := ""
	if rc.Roadmap.StageReady(stageID) && !rc.Roadmap.IsCompleted(stageID) {
		message = "Pronta para Completar!"
	}
	return utils.OK(c, rc.Roadmap.Overview(), message)
}

// CompleteStage godoc
// @Summary Complete a phase
// @Description Requires the phase to be unlocked and every skill ticked. Credits its coins once.
// @Tags roadmap
// @Produce json
// @Param id path int true "Stage ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /roadmap/stages/{id}/complete [post]
func (rc *RoadmapController) CompleteStage(c *fiber.Ctx) error {
	stageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid stage ID")
	}
	done, err := rc.Roadmap.CompleteStageIfReady(stageID)
	switch {
	case errors.Is(err, store.ErrStageNotFound):
		return utils.NotFound(c, "Stage not found")
	case errors.Is(err, store.ErrStageCompleted):
		return utils.Conflict(c, "Stage already completed")
	case errors.Is(err, store.ErrStageLocked):
		return utils.Conflict(c, "Stage is locked")
	case errors.Is(err, store.ErrStageNotReady):
		return utils.Conflict(c, "Complete every skill first")
	case err != nil:
		rc.Logger.Error("failed to save stage", "stage", stageID, "error", err)
		return utils.InternalServerError(c, "Could not save progress")
	}

	message := fmt.Sprintf("Fase %d concluída! +%d moedas", stageID, done.Stage.Coins)
	if done.AllCompleted {
		message = "🎉 Parabéns! Você é um Desenvolvedor Fullstack! 🎉"
	}
	return utils.OK(c, rc.Roadmap.Overview(), message)
}

// ResetRoadmap godoc
// @Summary Reset the roadmap
// @Tags roadmap
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /roadmap [delete]
func (rc *RoadmapController) ResetRoadmap(c *fiber.Ctx) error {
	if err := rc.Roadmap.Reset(); err != nil {
		rc.Logger.Error("failed to reset roadmap", "error", err)
		return utils.InternalServerError(c, "Could not reset progress")
	}
	return utils.OK(c, rc.Roadmap.Overview(), "Progresso resetado! Boa sorte na nova jornada! 🎮")
}

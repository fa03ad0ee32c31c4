package controllers

import (
	"sort"
	"strings"

	"pluain/backend/evaluation"
	"pluain/backend/models"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CommunityController serves feedback and the suggestion board.
type CommunityController struct {
	Progress *store.ProgressStore
	Logger   *utils.Logger
}

func NewCommunityController(progress *store.ProgressStore, logger *utils.Logger) *CommunityController {
	return &CommunityController{Progress: progress, Logger: logger}
}

type FeedbackRequest struct {
	Rating   int    `json:"rating" example:"5" minimum:"1" maximum:"5"`
	Text     string `json:"text" example:"Adorei a trilha de React"`
	Platform string `json:"platform" example:"web"`
}

type SuggestionRequest struct {
	Title    string                    `json:"title" example:"Modo escuro"`
	Content  string                    `json:"content" example:"Um tema escuro para estudar à noite"`
	Category models.SuggestionCategory `json:"category" example:"feature" enums:"feature,improvement,content,bug"`
}

type VoteRequest struct {
	Delta int `json:"delta" example:"1" enums:"1,-1"`
}

// GetFeedback godoc
// @Summary Feedback history
// @Tags feedback
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /feedback [get]
func (cc *CommunityController) GetFeedback(c *fiber.Ctx) error {
	return utils.OK(c, cc.Progress.GetFeedbackHistory())
}

// SubmitFeedback godoc
// @Summary Send feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param feedback body FeedbackRequest true "Feedback"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /feedback [post]
func (cc *CommunityController) SubmitFeedback(c *fiber.Ctx) error {
	var input FeedbackRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	input.Text = strings.TrimSpace(input.Text)
	errs := map[string]string{}
	if input.Rating < 1 || input.Rating > 5 {
		errs["rating"] = "rating must be between 1 and 5"
	}
	if input.Text == "" {
		errs["text"] = "text is required"
	}
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}
	if input.Platform == "" {
		input.Platform = "web"
	}

	fb, err := cc.Progress.AddFeedback(models.Feedback{
		Rating:   input.Rating,
		Text:     input.Text,
		Platform: input.Platform,
	})
	if err != nil {
		cc.Logger.Error("failed to save feedback", "error", err)
		return utils.InternalServerError(c, "Erro ao enviar feedback. Tente novamente.")
	}
	return utils.Created(c, fb, "Feedback enviado com sucesso! Obrigado!")
}

// GetSuggestions godoc
// @Summary Suggestion board
// @Description Most voted first. An empty board is seeded with community samples.
// @Tags suggestions
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /suggestions [get]
func (cc *CommunityController) GetSuggestions(c *fiber.Ctx) error {
	if _, err := cc.Progress.SeedSuggestions(evaluation.SampleSuggestions()); err != nil {
		cc.Logger.Error("failed to seed suggestions", "error", err)
		return utils.InternalServerError(c, "Could not load suggestions")
	}

	suggestions := cc.Progress.GetAllSuggestions()
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Votes > suggestions[j].Votes
	})
	return utils.OK(c, suggestions)
}

// CreateSuggestion godoc
// @Summary Propose a suggestion
// @Description Category defaults to feature. Votes always start at zero.
// @Tags suggestions
// @Accept json
// @Produce json
// @Param suggestion body SuggestionRequest true "Suggestion"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /suggestions [post]
func (cc *CommunityController) CreateSuggestion(c *fiber.Ctx) error {
	var input SuggestionRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	if input.Category == "" {
		input.Category = models.CategoryFeature
	}

	errs := map[string]string{}
	if input.Title == "" {
		errs["title"] = "title is required"
	}
	if input.Content == "" {
		errs["content"] = "content is required"
	}
	if !input.Category.Valid() {
		errs["category"] = "category must be one of feature, improvement, content, bug"
	}
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}

	sg, err := cc.Progress.AddSuggestion(models.Suggestion{
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
	})
	if err != nil {
		cc.Logger.Error("failed to save suggestion", "error", err)
		return utils.InternalServerError(c, "Erro ao enviar sugestão. Tente novamente.")
	}
	return utils.Created(c, sg, "Sugestão enviada com sucesso!")
}

// VoteSuggestion godoc
// @Summary Vote on a suggestion
// @Tags suggestions
// @Accept json
// @Produce json
// @Param id path string true "Suggestion ID"
// @Param vote body VoteRequest true "+1 or -1"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /suggestions/{id}/vote [post]
func (cc *CommunityController) VoteSuggestion(c *fiber.Ctx) error {
	var input VoteRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Delta != 1 && input.Delta != -1 {
		return utils.ValidationError(c, map[string]string{"delta": "delta must be 1 or -1"})
	}

	id := c.Params("id")
	ok, err := cc.Progress.VoteSuggestion(id, input.Delta)
	if err != nil {
		cc.Logger.Error("failed to save vote", "suggestion", id, "error", err)
		return utils.InternalServerError(c, "Could not save vote")
	}
	if !ok {
		return utils.NotFound(c, "Suggestion not found")
	}

	for _, sg := range cc.Progress.GetAllSuggestions() {
		if sg.ID == id {
			return utils.OK(c, sg)
		}
	}
	return utils.NotFound(c, "Suggestion not found")
}

package controllers

import (
	"strings"

	"pluain/backend/models"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type NotesController struct {
	Progress *store.ProgressStore
	Logger   *utils.Logger
}

func NewNotesController(progress *store.ProgressStore, logger *utils.Logger) *NotesController {
	return &NotesController{Progress: progress, Logger: logger}
}

type CreateNoteRequest struct {
	Title   string `json:"title" example:"CSS Grid"`
	Content string `json:"content" example:"grid-template-areas simplifica layouts"`
}

// GetNotes godoc
// @Summary List or search notes
// @Description Most recent first. With q, returns notes whose title or content contains q, case-insensitively.
// @Tags notes
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /notes [get]
func (nc *NotesController) GetNotes(c *fiber.Ctx) error {
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		return utils.OK(c, nc.Progress.SearchNotes(q))
	}
	return utils.OK(c, nc.Progress.Notes())
}

// GetNote godoc
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notes/{id} [get]
func (nc *NotesController) GetNote(c *fiber.Ctx) error {
	note, ok := nc.Progress.GetNote(c.Params("id"))
	if !ok {
		return utils.NotFound(c, "Note not found")
	}
	return utils.OK(c, note)
}

// CreateNote godoc
// @Summary Create a note
// @Description An empty title becomes "Nova Anotação"
// @Tags notes
// @Accept json
// @Produce json
// @Param note body CreateNoteRequest true "Note"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notes [post]
func (nc *NotesController) CreateNote(c *fiber.Ctx) error {
	var input CreateNoteRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	note, err := nc.Progress.CreateNote(strings.TrimSpace(input.Title), input.Content)
	if err != nil {
		nc.Logger.Error("failed to save note", "error", err)
		return utils.InternalServerError(c, "Could not save note")
	}
	return utils.Created(c, note, "Anotação criada!")
}

// UpdateNote godoc
// @Summary Update a note
// @Description Only the fields present in the body change
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Param note body models.NoteUpdate true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notes/{id} [put]
func (nc *NotesController) UpdateNote(c *fiber.Ctx) error {
	var input models.NoteUpdate
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	note, err := nc.Progress.UpdateNote(c.Params("id"), input)
	if err != nil {
		nc.Logger.Error("failed to save note", "note", c.Params("id"), "error", err)
		return utils.InternalServerError(c, "Could not save note")
	}
	if note == nil {
		return utils.NotFound(c, "Note not found")
	}
	return utils.OK(c, note, "Anotação salva!")
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags notes
// @Param id path string true "Note ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /notes/{id} [delete]
func (nc *NotesController) DeleteNote(c *fiber.Ctx) error {
	ok, err := nc.Progress.DeleteNote(c.Params("id"))
	if err != nil {
		nc.Logger.Error("failed to delete note", "note", c.Params("id"), "error", err)
		return utils.InternalServerError(c, "Could not delete note")
	}
	if !ok {
		return utils.NotFound(c, "Note not found")
	}
	return utils.NoContent(c)
}

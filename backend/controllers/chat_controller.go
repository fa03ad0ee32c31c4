package controllers

import (
	"strings"

	"pluain/backend/chat"
	"pluain/backend/middleware"
	"pluain/backend/models"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ChatController struct {
	Progress *store.ProgressStore
	Room     *chat.Room
	Logger   *utils.Logger
}

func NewChatController(progress *store.ProgressStore, room *chat.Room, logger *utils.Logger) *ChatController {
	return &ChatController{Progress: progress, Room: room, Logger: logger}
}

type SendMessageRequest struct {
	Content string `json:"content" example:"Alguém pode me ajudar com async/await?"`
}

// GetHistory godoc
// @Summary Chat history
// @Description Oldest first, at most 100 messages. An empty room is seeded with the welcome messages.
// @Tags chat
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /chat [get]
func (cc *ChatController) GetHistory(c *fiber.Ctx) error {
	if err := cc.Room.SeedWelcome(); err != nil {
		cc.Logger.Error("failed to seed chat", "error", err)
		return utils.InternalServerError(c, "Could not load chat")
	}
	return utils.OK(c, fiber.Map{
		"messages": cc.Progress.ChatHistory(),
		"online":   cc.Room.Online(),
	})
}

// SendMessage godoc
// @Summary Post a message
// @Description Stores the message as the user's own; a simulated member may answer a few seconds later
// @Tags chat
// @Accept json
// @Produce json
// @Param message body SendMessageRequest true "Message"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /chat/messages [post]
func (cc *ChatController) SendMessage(c *fiber.Ctx) error {
	var input SendMessageRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return utils.BadRequest(c, "Message is empty")
	}

	msg := models.ChatMessage{Type: models.ChatOwn, Content: content}
	if user := middleware.CurrentUser(c); user != nil {
		msg.User = user.Name
	}

	saved, err := cc.Progress.AddChatMessage(msg)
	if err != nil {
		cc.Logger.Error("failed to store chat message", "error", err)
		return utils.InternalServerError(c, "Could not send message")
	}

	return utils.Created(c, fiber.Map{
		"message":        saved,
		"replyScheduled": cc.Room.OnUserMessage(content),
	})
}

// ClearHistory godoc
// @Summary Clear chat history
// @Tags chat
// @Success 204
// @Security ApiKeyAuth
// @Router /chat [delete]
func (cc *ChatController) ClearHistory(c *fiber.Ctx) error {
	if err := cc.Progress.ClearChatHistory(); err != nil {
		cc.Logger.Error("failed to clear chat", "error", err)
		return utils.InternalServerError(c, "Could not clear chat")
	}
	return utils.NoContent(c)
}

// GetPresence godoc
// @Summary Simulated online count
// @Tags chat
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /chat/presence [get]
func (cc *ChatController) GetPresence(c *fiber.Ctx) error {
	return utils.OK(c, fiber.Map{"online": cc.Room.Online()})
}

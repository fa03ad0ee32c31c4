package controllers

import (
	"strings"
	"time"

	"pluain/backend/config"
	"pluain/backend/middleware"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Sessions *store.SessionStore
	Cfg      *config.Config
	Logger   *utils.Logger
}

func NewAuthController(sessions *store.SessionStore, cfg *config.Config, logger *utils.Logger) *AuthController {
	return &AuthController{Sessions: sessions, Cfg: cfg, Logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"qualquer-senha"`
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Maria Souza"`
	Email    string `json:"email" example:"maria@example.com"`
	Age      int    `json:"age" example:"21"`
	Password string `json:"password" example:"qualquer-senha"`
}

// simulateLatency holds the request for the configured login delay, or
// until the client goes away.
func (ac *AuthController) simulateLatency(c *fiber.Ctx) {
	if ac.Cfg.LoginDelay <= 0 {
		return
	}
	timer := time.NewTimer(ac.Cfg.LoginDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-c.UserContext().Done():
	}
}

func (ac *AuthController) issue(c *fiber.Ctx, status int, user interface{}, sessionID, email, message string) error {
	token, err := utils.GenerateJWTToken(sessionID, email, ac.Cfg)
	if err != nil {
		ac.Logger.Error("failed to sign session token", "error", err)
		return utils.InternalServerError(c, "Could not generate token")
	}
	return c.Status(status).JSON(utils.SuccessResponse{
		Success: true,
		Message: message,
		Data: fiber.Map{
			"token": token,
			"user":  user,
		},
	})
}

// [+] Login godoc
// @Summary Mocked login
// @Description Any non-empty email and password open a session. No credential is checked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	ac.simulateLatency(c)

	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Por favor, preencha todos os campos.")
	}

	user, err := ac.Sessions.Login(input.Email)
	if err != nil {
		ac.Logger.Error("failed to store session", "error", err)
		return utils.InternalServerError(c, "Could not start session")
	}
	return ac.issue(c, fiber.StatusOK, user, user.ID, user.Email, "Login realizado com sucesso!")
}

// [+] Register godoc
// @Summary Mocked registration
// @Description Opens a session for the given name, email and age. Nothing is persisted besides the session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	ac.simulateLatency(c)

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Age <= 0 || input.Password == "" {
		return utils.BadRequest(c, "Por favor, preencha todos os campos.")
	}

	user, err := ac.Sessions.Register(input.Name, input.Email, input.Age)
	if err != nil {
		ac.Logger.Error("failed to store session", "error", err)
		return utils.InternalServerError(c, "Could not start session")
	}
	return ac.issue(c, fiber.StatusCreated, user, user.ID, user.Email, "Conta criada com sucesso!")
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/session [get]
func (ac *AuthController) Session(c *fiber.Ctx) error {
	return utils.OK(c, middleware.CurrentUser(c))
}

// Logout godoc
// @Summary Close the session
// @Description Removes the stored session; tokens issued for it stop working.
// @Tags auth
// @Success 204
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Sessions.Logout(); err != nil {
		ac.Logger.Error("failed to remove session", "error", err)
		return utils.InternalServerError(c, "Could not close session")
	}
	return utils.NoContent(c)
}

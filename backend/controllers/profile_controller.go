package controllers

import (
	"strings"

	"pluain/backend/evaluation"
	"pluain/backend/middleware"
	"pluain/backend/models"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Progress *store.ProgressStore
	Sessions *store.SessionStore
	Logger   *utils.Logger
	Rand     evaluation.Rand
}

func NewProfileController(progress *store.ProgressStore, sessions *store.SessionStore, logger *utils.Logger, rng evaluation.Rand) *ProfileController {
	if rng == nil {
		rng = evaluation.DefaultRand
	}
	return &ProfileController{Progress: progress, Sessions: sessions, Logger: logger, Rand: rng}
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" example:"Maria Souza"`
	Age      *int    `json:"age,omitempty" example:"22"`
	Bio      *string `json:"bio,omitempty" example:"Aprendendo fullstack"`
	Location *string `json:"location,omitempty" example:"Recife, PE"`
}

type EducationRequest struct {
	Title       string `json:"title" example:"Análise e Desenvolvimento de Sistemas"`
	Institution string `json:"institution" example:"IFPE"`
	Period      string `json:"period" example:"2023 - 2025"`
	Description string `json:"description"`
}

type CourseRequest struct {
	Title       string `json:"title" example:"Go para iniciantes"`
	Provider    string `json:"provider" example:"Alura"`
	Duration    string `json:"duration" example:"20h"`
	Status      string `json:"status" example:"em andamento"`
	Description string `json:"description"`
}

// GetProfile godoc
// @Summary Get profile
// @Description Session user, stored profile data and statistics
// @Tags profile
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [get]
func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	return utils.OK(c, fiber.Map{
		"user":       middleware.CurrentUser(c),
		"profile":    pc.Progress.GetProfile(),
		"statistics": pc.Progress.GetStatistics(),
	})
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Name and age go to the session, bio and location to the profile. Absent fields are unchanged.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [put]
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	var input UpdateProfileRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	errs := map[string]string{}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errs["name"] = "name cannot be empty"
	}
	if input.Age != nil && *input.Age <= 0 {
		errs["age"] = "age must be positive"
	}
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}

	user := middleware.CurrentUser(c)
	if input.Name != nil || input.Age != nil {
		name, age := "", 0
		if input.Name != nil {
			name = strings.TrimSpace(*input.Name)
		}
		if input.Age != nil {
			age = *input.Age
		}
		updated, err := pc.Sessions.UpdateIdentity(name, age)
		if err != nil {
			pc.Logger.Error("failed to update session user", "error", err)
			return utils.InternalServerError(c, "Could not save profile")
		}
		if updated != nil {
			user = updated
		}
	}

	if err := pc.Progress.UpdateProfile(models.ProfileUpdate{Bio: input.Bio, Location: input.Location}); err != nil {
		pc.Logger.Error("failed to update profile", "error", err)
		return utils.InternalServerError(c, "Could not save profile")
	}

	return utils.OK(c, fiber.Map{
		"user":    user,
		"profile": pc.Progress.GetProfile(),
	}, "Perfil atualizado com sucesso!")
}

// UpdateSettings godoc
// @Summary Replace settings
// @Tags profile
// @Accept json
// @Produce json
// @Param settings body models.Settings true "Settings"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /profile/settings [put]
func (pc *ProfileController) UpdateSettings(c *fiber.Ctx) error {
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if settings.Theme == "" {
		settings.Theme = "light"
	}

	if err := pc.Progress.UpdateProfile(models.ProfileUpdate{Settings: &settings}); err != nil {
		pc.Logger.Error("failed to update settings", "error", err)
		return utils.InternalServerError(c, "Could not save settings")
	}
	return utils.OK(c, settings, "Configurações salvas!")
}

// AddEducation godoc
// @Summary Add an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Param education body EducationRequest true "Education"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile/education [post]
func (pc *ProfileController) AddEducation(c *fiber.Ctx) error {
	var input EducationRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	errs := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(input.Institution) == "" {
		errs["institution"] = "institution is required"
	}
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}

	edu, err := pc.Progress.AddEducation(models.Education{
		Title:       input.Title,
		Institution: input.Institution,
		Period:      input.Period,
		Description: input.Description,
	})
	if err != nil {
		pc.Logger.Error("failed to add education", "error", err)
		return utils.InternalServerError(c, "Could not save education")
	}
	return utils.Created(c, edu)
}

// AddCourse godoc
// @Summary Add a course
// @Tags profile
// @Accept json
// @Produce json
// @Param course body CourseRequest true "Course"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile/courses [post]
func (pc *ProfileController) AddCourse(c *fiber.Ctx) error {
	var input CourseRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	errs := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(input.Provider) == "" {
		errs["provider"] = "provider is required"
	}
	if len(errs) > 0 {
		return utils.ValidationError(c, errs)
	}

	course, err := pc.Progress.AddCourse(models.Course{
		Title:       input.Title,
		Provider:    input.Provider,
		Duration:    input.Duration,
		Status:      input.Status,
		Description: input.Description,
	})
	if err != nil {
		pc.Logger.Error("failed to add course", "error", err)
		return utils.InternalServerError(c, "Could not save course")
	}
	return utils.Created(c, course)
}

// GetAchievements godoc
// @Summary Achievement badges
// @Description The social badge is a placeholder and may flip between requests
// @Tags profile
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /profile/achievements [get]
func (pc *ProfileController) GetAchievements(c *fiber.Ctx) error {
	return utils.OK(c, evaluation.Achievements(pc.Progress.GetStatistics(), pc.Rand))
}

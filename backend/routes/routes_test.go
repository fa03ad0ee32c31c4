package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pluain/backend/chat"
	"pluain/backend/config"
	"pluain/backend/models"
	"pluain/backend/storage"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

type testApp struct {
	t     *testing.T
	app   *fiber.App
	token string
}

// fixedRand keeps placeholder numbers stable.
type fixedRand struct{}

func (fixedRand) IntN(int) int     { return 0 }
func (fixedRand) Float64() float64 { return 0.9 }

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:     "testsecret",
		StorageDriver: "memory",
		AppVersion:    "test",
	}
	logger := utils.NewNopLogger()
	kv := storage.NewMemory()

	progress, err := store.NewProgressStore(kv, logger)
	require.NoError(t, err)
	roadmap, err := store.NewRoadmapStore(kv, logger)
	require.NoError(t, err)
	sessions, err := store.NewSessionStore(kv, logger)
	require.NoError(t, err)
	room := chat.NewRoom(progress, logger, chat.Config{Rand: fixedRand{}})
	t.Cleanup(room.Stop)

	app := fiber.New()
	SetupRoutes(app, Deps{
		Cfg:      cfg,
		Logger:   logger,
		Progress: progress,
		Roadmap:  roadmap,
		Sessions: sessions,
		Room:     room,
		Rand:     fixedRand{},
	})
	return &testApp{t: t, app: app}
}

func (ta *testApp) do(method, path string, body interface{}) (int, envelope) {
	ta.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ta.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if ta.token != "" {
		req.Header.Set("Authorization", "Bearer "+ta.token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(ta.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(ta.t, err)
	if len(raw) > 0 {
		require.NoError(ta.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (ta *testApp) login() models.SessionUser {
	ta.t.Helper()

	status, env := ta.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "maria@example.com",
		"password": "whatever",
	})
	require.Equal(ta.t, http.StatusOK, status)

	var data struct {
		Token string             `json:"token"`
		User  models.SessionUser `json:"user"`
	}
	require.NoError(ta.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(ta.t, data.Token)
	ta.token = data.Token
	return data.User
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t)

	status, env := ta.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ta := newTestApp(t)

	for _, path := range []string{"/api/stages", "/api/notes", "/api/chat", "/api/roadmap", "/api/export", "/api/auth/session"} {
		status, _ := ta.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestLogin(t *testing.T) {
	ta := newTestApp(t)

	status, env := ta.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "maria@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Por favor, preencha todos os campos.", env.Message)

	user := ta.login()
	assert.Equal(t, "maria", user.Name)
	assert.Equal(t, 100, user.Coins)

	status, env = ta.do(http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID, decode[models.SessionUser](t, env.Data).ID)
}

func TestRegister(t *testing.T) {
	ta := newTestApp(t)

	status, _ := ta.do(http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": "João", "email": "joao@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, status, "age is required")

	status, env := ta.do(http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": "João", "email": "joao@example.com", "age": 20, "password": "x",
	})
	require.Equal(t, http.StatusCreated, status)
	var data struct {
		User models.SessionUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "João", data.User.Name)
	assert.Equal(t, 20, data.User.Age)
}

func TestLogoutRevokesToken(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, _ := ta.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = ta.do(http.MethodGet, "/api/stages", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestStages(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, env := ta.do(http.MethodGet, "/api/stages", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[struct {
		Stages []models.Stage `json:"stages"`
	}](t, env.Data)
	require.Len(t, list.Stages, 9)
	assert.Equal(t, "html-basics", list.Stages[0].ID)

	status, _ = ta.do(http.MethodGet, "/api/stages/cobol", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = ta.do(http.MethodPost, "/api/stages/cobol/complete", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = ta.do(http.MethodPost, "/api/stages/html-basics/complete", nil)
	require.Equal(t, http.StatusOK, status)
	done := decode[struct {
		Stage        models.Stage        `json:"stage"`
		UserProgress models.UserProgress `json:"userProgress"`
	}](t, env.Data)
	assert.Equal(t, models.StageCompleted, done.Stage.Status)
	assert.Equal(t, 100, done.UserProgress.TotalXP)

	status, env = ta.do(http.MethodGet, "/api/stages/css-styling/progress", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StageAvailable, decode[models.StageProgress](t, env.Data).Status)

	status, env = ta.do(http.MethodGet, "/api/statistics", nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[models.Statistics](t, env.Data)
	assert.Equal(t, 1, stats.CompletedStages)
	assert.Equal(t, 1, stats.Streak)
}

func TestStages_CompletedIDsSurviveLaterRequests(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, _ := ta.do(http.MethodPost, "/api/stages/html-basics/complete", nil)
	require.Equal(t, http.StatusOK, status)

	_, _ = ta.do(http.MethodGet, "/api/notes?q=zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", nil)
	_, _ = ta.do(http.MethodGet, "/api/stages/css-styling/progress", nil)
	_, _ = ta.do(http.MethodGet, "/api/stages/javascript-core", nil)

	status, env := ta.do(http.MethodGet, "/api/stages", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[struct {
		UserProgress models.UserProgress `json:"userProgress"`
	}](t, env.Data)
	assert.Equal(t, []string{"html-basics"}, list.UserProgress.CompletedStages)
	assert.Equal(t, 100, list.UserProgress.TotalXP)

	status, env = ta.do(http.MethodPost, "/api/stages/html-basics/complete", nil)
	require.Equal(t, http.StatusOK, status)
	again := decode[struct {
		UserProgress models.UserProgress `json:"userProgress"`
	}](t, env.Data)
	assert.Equal(t, 100, again.UserProgress.TotalXP, "re-completing pays nothing")

	status, env = ta.do(http.MethodGet, "/api/stages/html-basics/progress", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StageCompleted, decode[models.StageProgress](t, env.Data).Status)
}

func TestNotesCRUD(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, env := ta.do(http.MethodPost, "/api/notes", map[string]string{"title": "", "content": ""})
	require.Equal(t, http.StatusCreated, status)
	blank := decode[models.Note](t, env.Data)
	assert.Equal(t, store.DefaultNoteTitle, blank.Title)

	status, env = ta.do(http.MethodPost, "/api/notes", map[string]string{"title": "Flexbox", "content": "justify-content"})
	require.Equal(t, http.StatusCreated, status)
	note := decode[models.Note](t, env.Data)

	status, env = ta.do(http.MethodGet, "/api/notes?q=FLEX", nil)
	require.Equal(t, http.StatusOK, status)
	found := decode[[]models.Note](t, env.Data)
	require.Len(t, found, 1)
	assert.Equal(t, note.ID, found[0].ID)

	status, env = ta.do(http.MethodPut, "/api/notes/"+note.ID, map[string]string{"content": "align-items"})
	require.Equal(t, http.StatusOK, status)
	updated := decode[models.Note](t, env.Data)
	assert.Equal(t, "Flexbox", updated.Title)
	assert.Equal(t, "align-items", updated.Content)

	status, _ = ta.do(http.MethodPut, "/api/notes/missing", map[string]string{"content": "x"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ta.do(http.MethodDelete, "/api/notes/"+note.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = ta.do(http.MethodGet, "/api/notes/"+note.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = ta.do(http.MethodDelete, "/api/notes/"+note.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = ta.do(http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Note](t, env.Data), 1)
}

func TestChat(t *testing.T) {
	ta := newTestApp(t)
	user := ta.login()

	status, env := ta.do(http.MethodGet, "/api/chat", nil)
	require.Equal(t, http.StatusOK, status)
	history := decode[struct {
		Messages []models.ChatMessage `json:"messages"`
		Online   int                  `json:"online"`
	}](t, env.Data)
	assert.Len(t, history.Messages, 4)
	assert.Equal(t, 1, history.Online)

	status, _ = ta.do(http.MethodPost, "/api/chat/messages", map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = ta.do(http.MethodPost, "/api/chat/messages", map[string]string{"content": "Olá!"})
	require.Equal(t, http.StatusCreated, status)
	sent := decode[struct {
		Message        models.ChatMessage `json:"message"`
		ReplyScheduled bool               `json:"replyScheduled"`
	}](t, env.Data)
	assert.Equal(t, models.ChatOwn, sent.Message.Type)
	assert.Equal(t, user.Name, sent.Message.User)
	assert.False(t, sent.ReplyScheduled, "simulation is off in tests")

	status, _ = ta.do(http.MethodDelete, "/api/chat", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env = ta.do(http.MethodGet, "/api/chat/presence", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"online":1}`, string(env.Data))
}

func TestFeedback(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, env := ta.do(http.MethodPost, "/api/feedback", map[string]interface{}{"rating": 0, "text": ""})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	details := decode[map[string]string](t, env.Details)
	assert.Contains(t, details, "rating")
	assert.Contains(t, details, "text")

	status, env = ta.do(http.MethodPost, "/api/feedback", map[string]interface{}{"rating": 5, "text": "Muito bom"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "web", decode[models.Feedback](t, env.Data).Platform)

	status, env = ta.do(http.MethodGet, "/api/feedback", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Feedback](t, env.Data), 1)
}

func TestSuggestions(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, env := ta.do(http.MethodGet, "/api/suggestions", nil)
	require.Equal(t, http.StatusOK, status)
	seeded := decode[[]models.Suggestion](t, env.Data)
	require.Len(t, seeded, 4)

	status, _ = ta.do(http.MethodPost, "/api/suggestions", map[string]string{"title": "x", "content": "y", "category": "wish"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, env = ta.do(http.MethodPost, "/api/suggestions", map[string]string{"title": "Trilha Go", "content": "Conteúdo de Go"})
	require.Equal(t, http.StatusCreated, status)
	created := decode[models.Suggestion](t, env.Data)
	assert.Equal(t, models.CategoryFeature, created.Category)

	vote := fmt.Sprintf("/api/suggestions/%s/vote", created.ID)
	status, _ = ta.do(http.MethodPost, vote, map[string]int{"delta": 2})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	status, env = ta.do(http.MethodPost, vote, map[string]int{"delta": 1})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[models.Suggestion](t, env.Data).Votes)

	status, env = ta.do(http.MethodGet, "/api/suggestions", nil)
	require.Equal(t, http.StatusOK, status)
	board := decode[[]models.Suggestion](t, env.Data)
	require.Len(t, board, 5)
	assert.Equal(t, created.ID, board[0].ID, "most voted first")

	status, _ = ta.do(http.MethodPost, "/api/suggestions/missing/vote", map[string]int{"delta": -1})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProfile(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, env := ta.do(http.MethodPut, "/api/profile", map[string]interface{}{"name": "Maria Souza", "age": 23, "bio": "Estudando"})
	require.Equal(t, http.StatusOK, status)
	updated := decode[struct {
		User    models.SessionUser `json:"user"`
		Profile models.Profile     `json:"profile"`
	}](t, env.Data)
	assert.Equal(t, "Maria Souza", updated.User.Name)
	assert.Equal(t, 23, updated.User.Age)
	assert.Equal(t, "Estudando", updated.Profile.Bio)

	status, _ = ta.do(http.MethodPut, "/api/profile", map[string]interface{}{"name": " "})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = ta.do(http.MethodPut, "/api/profile/settings", map[string]interface{}{"theme": "dark", "profilePublic": true})
	assert.Equal(t, http.StatusOK, status)

	status, _ = ta.do(http.MethodPost, "/api/profile/education", map[string]string{"title": "ADS"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	status, _ = ta.do(http.MethodPost, "/api/profile/education", map[string]string{"title": "ADS", "institution": "IFPE"})
	assert.Equal(t, http.StatusCreated, status)
	status, _ = ta.do(http.MethodPost, "/api/profile/courses", map[string]string{"title": "Go", "provider": "Alura"})
	assert.Equal(t, http.StatusCreated, status)

	status, env = ta.do(http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, status)
	profile := decode[struct {
		User    models.SessionUser `json:"user"`
		Profile models.Profile     `json:"profile"`
	}](t, env.Data)
	assert.Equal(t, "Maria Souza", profile.User.Name)
	require.NotNil(t, profile.Profile.Settings)
	assert.Equal(t, "dark", profile.Profile.Settings.Theme)
	assert.Len(t, profile.Profile.Education, 1)
	assert.Len(t, profile.Profile.Courses, 1)

	status, env = ta.do(http.MethodGet, "/api/profile/achievements", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Achievement](t, env.Data), 8)
}

func TestEvaluationOverview(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, env := ta.do(http.MethodGet, "/api/evaluation/overview", nil)
	require.Equal(t, http.StatusOK, status)
	overview := decode[models.EvaluationOverview](t, env.Data)
	assert.Equal(t, 0, overview.CompletionPercent)
	assert.Len(t, overview.Skills, 4)
	assert.True(t, overview.Time.Placeholder)
}

func TestRoadmap(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	status, _ := ta.do(http.MethodPost, "/api/roadmap/stages/1/complete", nil)
	assert.Equal(t, http.StatusConflict, status, "skills not ticked")
	status, _ = ta.do(http.MethodPost, "/api/roadmap/stages/2/complete", nil)
	assert.Equal(t, http.StatusConflict, status, "locked")
	status, _ = ta.do(http.MethodPost, "/api/roadmap/stages/99/complete", nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = ta.do(http.MethodPost, "/api/roadmap/skills/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = ta.do(http.MethodPost, "/api/roadmap/skills/2-0", nil)
	assert.Equal(t, http.StatusConflict, status, "locked stage")

	stage := store.RoadmapStages()[0]
	var env envelope
	for i := range stage.Skills {
		status, env = ta.do(http.MethodPost, "/api/roadmap/skills/"+store.SkillID(1, i), nil)
		require.Equal(t, http.StatusOK, status)
	}
	assert.Equal(t, "Pronta para Completar!", env.Message)

	status, env = ta.do(http.MethodPost, "/api/roadmap/stages/1/complete", nil)
	require.Equal(t, http.StatusOK, status)
	overview := decode[models.RoadmapOverview](t, env.Data)
	assert.Equal(t, 50, overview.Coins)
	assert.Equal(t, 1, overview.CurrentStage)
	assert.Equal(t, models.StageCompleted, overview.Stages[0].Status)
	assert.Equal(t, models.StageAvailable, overview.Stages[1].Status)
	weight := 0
	for _, st := range store.RoadmapStages() {
		weight += st.Percentage
	}
	assert.InDelta(t, 8*100/float64(weight), overview.JourneyProgress, 0.001)

	status, _ = ta.do(http.MethodPost, "/api/roadmap/stages/1/complete", nil)
	assert.Equal(t, http.StatusConflict, status)

	status, env = ta.do(http.MethodDelete, "/api/roadmap", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[models.RoadmapOverview](t, env.Data).Coins)
}

func TestRoadmap_SkillIDsSurviveLaterRequests(t *testing.T) {
	ta := newTestApp(t)
	ta.login()

	for i := range store.RoadmapStages()[0].Skills {
		status, _ := ta.do(http.MethodPost, "/api/roadmap/skills/"+store.SkillID(1, i), nil)
		require.Equal(t, http.StatusOK, status)
		_, _ = ta.do(http.MethodGet, "/api/notes?q=999", nil)
	}

	status, env := ta.do(http.MethodGet, "/api/roadmap", nil)
	require.Equal(t, http.StatusOK, status)
	overview := decode[models.RoadmapOverview](t, env.Data)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, overview.Stages[0].CompletedSkills)
	assert.True(t, overview.Stages[0].Ready)

	status, env = ta.do(http.MethodPost, "/api/roadmap/stages/1/complete", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Fase 1 concluída! +50 moedas", env.Message)
}

func TestExport(t *testing.T) {
	ta := newTestApp(t)
	user := ta.login()

	_, _ = ta.do(http.MethodPost, "/api/notes", map[string]string{"title": "exportada"})

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	req.Header.Set("Authorization", "Bearer "+ta.token)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var export models.Export
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&export))
	require.NotNil(t, export.User)
	assert.Equal(t, user.ID, export.User.ID)
	assert.Equal(t, "test", export.Version)
	assert.Len(t, export.Data.Notes, 1)
	assert.Len(t, export.Data.Stages, 9)
	assert.NotEmpty(t, export.Timestamp)
}

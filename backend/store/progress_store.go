package store

import (
	"encoding/json"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"pluain/backend/models"
	"pluain/backend/storage"
	"pluain/backend/utils"
)

const (
	// DataKey addresses the progress document.
	DataKey = "pluainData"

	DefaultNoteTitle = "Nova Anotação"
	ChatHistoryLimit = 100
	streakCap        = 30
)

// ProgressStore is the single owner of the progress document. Every
// read and write of stages, notes, chat, feedback, suggestions and profile
// goes through it, and every mutation is persisted before returning.
//
// Not-found conditions are reported through ok/nil results; errors only
// ever come from the storage backend.
type ProgressStore struct {
	mu     sync.Mutex
	kv     storage.KeyValue
	logger *utils.Logger
	now    func() time.Time
	ids    idSource
	doc    models.Document
}

type options struct {
	now func() time.Time
}

// Option configures ProgressStore and SessionStore.
type Option func(*options)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewProgressStore loads the document from kv, fills in any absent
// section with defaults and writes the result back.
func NewProgressStore(kv storage.KeyValue, logger *utils.Logger, opts ...Option) (*ProgressStore, error) {
	s := &ProgressStore{
		kv:     kv,
		logger: logger.With("store", DataKey),
		now:    buildOptions(opts).now,
	}

	if _, err := readJSON(kv, DataKey, &s.doc); err != nil {
		if !errors.Is(err, ErrCorruptDocument) {
			return nil, err
		}
		s.logger.Warn("discarding unreadable progress document", "error", err)
		s.doc = models.Document{}
	}

	s.init()
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ProgressStore) init() {
	if s.doc.Stages == nil {
		s.doc.Stages = DefaultStages()
	}
	for id, stage := range s.doc.Stages {
		if stage == nil {
			delete(s.doc.Stages, id)
		}
	}
	if s.doc.UserProgress == nil {
		s.doc.UserProgress = &models.UserProgress{
			CompletedStages: []string{},
			UnlockedStages:  []string{EntryStage},
			TotalXP:         0,
			Achievements:    []string{"first-step"},
		}
	}
	if s.doc.Notes == nil {
		s.doc.Notes = []models.Note{}
	}
	if s.doc.ChatHistory == nil {
		s.doc.ChatHistory = []models.ChatMessage{}
	}
	if s.doc.Feedback == nil {
		s.doc.Feedback = []models.Feedback{}
	}
	if s.doc.Suggestions == nil {
		s.doc.Suggestions = []models.Suggestion{}
	}
	if s.doc.Profile == nil {
		s.doc.Profile = &models.Profile{
			Education: []models.Education{},
			Courses:   []models.Course{},
		}
	}
}

func (s *ProgressStore) save() error {
	return writeJSON(s.kv, DataKey, s.doc)
}

func (s *ProgressStore) nextID(taken func(string) bool) string {
	return s.ids.next(s.now(), taken)
}

// ---------------------------------------------------------------------------
// Stages
// ---------------------------------------------------------------------------

func cloneStage(st *models.Stage) models.Stage {
	c := *st
	c.Skills = slices.Clone(st.Skills)
	c.Prerequisites = slices.Clone(st.Prerequisites)
	return c
}

func (s *ProgressStore) GetStage(id string) (models.Stage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.doc.Stages[id]
	if !ok {
		return models.Stage{}, false
	}
	return cloneStage(st), true
}

func (s *ProgressStore) GetAllStages() map[string]models.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.Stage, len(s.doc.Stages))
	for id, st := range s.doc.Stages {
		out[id] = cloneStage(st)
	}
	return out
}

// Stages returns the catalog ordered by level.
func (s *ProgressStore) Stages() []models.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Stage, 0, len(s.doc.Stages))
	for _, id := range s.orderedStageIDs() {
		out = append(out, cloneStage(s.doc.Stages[id]))
	}
	return out
}

func (s *ProgressStore) orderedStageIDs() []string {
	ids := make([]string, 0, len(s.doc.Stages))
	for id := range s.doc.Stages {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.doc.Stages[ids[i]], s.doc.Stages[ids[j]]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		return a.ID < b.ID
	})
	return ids
}

// CompleteStage marks the stage completed, credits its XP reward on the
// first completion only and unlocks every stage that lists it as a
// prerequisite. The other prerequisites of those stages are not checked.
// Returns false for an unknown id.
func (s *ProgressStore) CompleteStage(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stage, ok := s.doc.Stages[id]
	if !ok {
		return false, nil
	}

	// id may alias a request buffer that is reused once the caller returns.
	id = strings.Clone(id)

	progress := s.doc.UserProgress
	if !slices.Contains(progress.CompletedStages, id) {
		progress.CompletedStages = append(progress.CompletedStages, id)
		progress.TotalXP += stage.XPReward
	}

	for _, nextID := range s.orderedStageIDs() {
		next := s.doc.Stages[nextID]
		if !slices.Contains(next.Prerequisites, id) {
			continue
		}
		if !slices.Contains(progress.UnlockedStages, nextID) {
			progress.UnlockedStages = append(progress.UnlockedStages, nextID)
		}
		if next.Status == models.StageLocked {
			next.Status = models.StageAvailable
		}
	}

	stage.Status = models.StageCompleted

	if err := s.save(); err != nil {
		return true, err
	}
	s.logger.Debug("stage completed", "stage", id, "total_xp", progress.TotalXP)
	return true, nil
}

func (s *ProgressStore) GetStageProgress(id string) models.StageProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress := s.doc.UserProgress
	switch {
	case slices.Contains(progress.CompletedStages, id):
		return models.StageProgress{Status: models.StageCompleted, Progress: 100}
	case slices.Contains(progress.UnlockedStages, id):
		return models.StageProgress{Status: models.StageAvailable, Progress: 0}
	default:
		return models.StageProgress{Status: models.StageLocked, Progress: 0}
	}
}

// CompletedStageIDs returns the ids of completed stages in completion order.
func (s *ProgressStore) CompletedStageIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.doc.UserProgress.CompletedStages)
}

func (s *ProgressStore) UserProgress() models.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *s.doc.UserProgress
	p.CompletedStages = slices.Clone(p.CompletedStages)
	p.UnlockedStages = slices.Clone(p.UnlockedStages)
	p.Achievements = slices.Clone(p.Achievements)
	return p
}

// ---------------------------------------------------------------------------
// Notes
// ---------------------------------------------------------------------------

func (s *ProgressStore) noteIndex(id string) int {
	return slices.IndexFunc(s.doc.Notes, func(n models.Note) bool { return n.ID == id })
}

func cloneNote(n models.Note) models.Note {
	n.Tags = slices.Clone(n.Tags)
	return n
}

// CreateNote inserts a new note at the front of the list.
func (s *ProgressStore) CreateNote(title, content string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		title = DefaultNoteTitle
	}
	now := s.now()
	note := models.Note{
		ID:        s.nextID(func(id string) bool { return s.noteIndex(id) >= 0 }),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []string{},
	}

	s.doc.Notes = slices.Insert(s.doc.Notes, 0, note)
	if err := s.save(); err != nil {
		return note, err
	}
	return cloneNote(note), nil
}

// UpdateNote merges the given fields and refreshes UpdatedAt. Returns nil
// when no note has that id.
func (s *ProgressStore) UpdateNote(id string, update models.NoteUpdate) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return nil, nil
	}

	note := &s.doc.Notes[i]
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Tags != nil {
		note.Tags = slices.Clone(*update.Tags)
	}
	note.UpdatedAt = s.now()

	updated := cloneNote(*note)
	if err := s.save(); err != nil {
		return &updated, err
	}
	return &updated, nil
}

func (s *ProgressStore) DeleteNote(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return false, nil
	}
	s.doc.Notes = slices.Delete(s.doc.Notes, i, i+1)
	if err := s.save(); err != nil {
		return true, err
	}
	return true, nil
}

// Notes returns every note, most recent first.
func (s *ProgressStore) Notes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Note, len(s.doc.Notes))
	for i, n := range s.doc.Notes {
		out[i] = cloneNote(n)
	}
	return out
}

func (s *ProgressStore) GetNote(id string) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return models.Note{}, false
	}
	return cloneNote(s.doc.Notes[i]), true
}

// SearchNotes matches query case-insensitively against title or content.
func (s *ProgressStore) SearchNotes(query string) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	out := []models.Note{}
	for _, n := range s.doc.Notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, cloneNote(n))
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Chat
// ---------------------------------------------------------------------------

// AddChatMessage stamps the message (keeping a caller-supplied id), appends
// it and drops the oldest entries beyond ChatHistoryLimit.
func (s *ProgressStore) AddChatMessage(msg models.ChatMessage) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg = s.appendChatMessage(msg)
	if err := s.save(); err != nil {
		return msg, err
	}
	return msg, nil
}

// SeedChatHistory adds msgs only while the history is empty. Reports
// whether anything was added.
func (s *ProgressStore) SeedChatHistory(msgs []models.ChatMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.doc.ChatHistory) > 0 || len(msgs) == 0 {
		return false, nil
	}
	for _, msg := range msgs {
		s.appendChatMessage(msg)
	}
	if err := s.save(); err != nil {
		return true, err
	}
	return true, nil
}

func (s *ProgressStore) appendChatMessage(msg models.ChatMessage) models.ChatMessage {
	if msg.ID == "" {
		msg.ID = s.nextID(nil)
	}
	msg.Timestamp = s.now()

	history := append(s.doc.ChatHistory, msg)
	if len(history) > ChatHistoryLimit {
		history = slices.Clone(history[len(history)-ChatHistoryLimit:])
	}
	s.doc.ChatHistory = history
	return msg
}

func (s *ProgressStore) ChatHistory() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.doc.ChatHistory)
}

func (s *ProgressStore) ClearChatHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.ChatHistory = []models.ChatMessage{}
	return s.save()
}

// ---------------------------------------------------------------------------
// Feedback and suggestions
// ---------------------------------------------------------------------------

func (s *ProgressStore) AddFeedback(f models.Feedback) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = s.nextID(nil)
	f.CreatedAt = s.now()
	s.doc.Feedback = append(s.doc.Feedback, f)
	if err := s.save(); err != nil {
		return f, err
	}
	return f, nil
}

func (s *ProgressStore) GetFeedbackHistory() []models.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.doc.Feedback)
}

// AddSuggestion stores the suggestion with its votes reset to zero.
func (s *ProgressStore) AddSuggestion(sg models.Suggestion) (models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sg.ID = s.nextID(nil)
	sg.Votes = 0
	sg.CreatedAt = s.now()
	s.doc.Suggestions = append(s.doc.Suggestions, sg)
	if err := s.save(); err != nil {
		return sg, err
	}
	return sg, nil
}

// SeedSuggestions adds samples only while the board is empty. Reports
// whether anything was added.
func (s *ProgressStore) SeedSuggestions(samples []models.Suggestion) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.doc.Suggestions) > 0 || len(samples) == 0 {
		return false, nil
	}
	for _, sg := range samples {
		sg.ID = s.nextID(nil)
		sg.Votes = 0
		sg.CreatedAt = s.now()
		s.doc.Suggestions = append(s.doc.Suggestions, sg)
	}
	if err := s.save(); err != nil {
		return true, err
	}
	return true, nil
}

func (s *ProgressStore) GetAllSuggestions() []models.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.doc.Suggestions)
}

// VoteSuggestion adds delta to the suggestion's votes. Votes are unbounded
// in both directions. Unknown ids are a no-op reported as false.
func (s *ProgressStore) VoteSuggestion(id string, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.doc.Suggestions, func(sg models.Suggestion) bool { return sg.ID == id })
	if i < 0 {
		return false, nil
	}
	s.doc.Suggestions[i].Votes += delta
	if err := s.save(); err != nil {
		return true, err
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

func (s *ProgressStore) GetProfile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *s.doc.Profile
	if p.Settings != nil {
		settings := *p.Settings
		p.Settings = &settings
	}
	p.Education = slices.Clone(p.Education)
	p.Courses = slices.Clone(p.Courses)
	return p
}

func (s *ProgressStore) UpdateProfile(update models.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.doc.Profile
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.Settings != nil {
		settings := *update.Settings
		profile.Settings = &settings
	}
	return s.save()
}

func (s *ProgressStore) AddEducation(e models.Education) (models.Education, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID(nil)
	e.CreatedAt = s.now()
	s.doc.Profile.Education = append(s.doc.Profile.Education, e)
	if err := s.save(); err != nil {
		return e, err
	}
	return e, nil
}

func (s *ProgressStore) AddCourse(c models.Course) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID(nil)
	c.CreatedAt = s.now()
	s.doc.Profile.Courses = append(s.doc.Profile.Courses, c)
	if err := s.save(); err != nil {
		return c, err
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Statistics and export
// ---------------------------------------------------------------------------

func (s *ProgressStore) GetStatistics() models.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := len(s.doc.UserProgress.CompletedStages)
	return models.Statistics{
		TotalStages:      len(s.doc.Stages),
		CompletedStages:  completed,
		TotalXP:          s.doc.UserProgress.TotalXP,
		TotalNotes:       len(s.doc.Notes),
		TotalFeedback:    len(s.doc.Feedback),
		TotalSuggestions: len(s.doc.Suggestions),
		Streak:           placeholderStreak(completed),
	}
}

// placeholderStreak is not a consecutive-day streak: it is the number of
// completed stages capped at 30.
func placeholderStreak(completed int) int {
	return min(completed, streakCap)
}

// Document returns a deep copy of the whole persisted document.
func (s *ProgressStore) Document() (models.Document, error) {
	s.mu.Lock()
	raw, err := json.Marshal(s.doc)
	s.mu.Unlock()
	if err != nil {
		return models.Document{}, err
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

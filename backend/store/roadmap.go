package store

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"pluain/backend/models"
	"pluain/backend/storage"
	"pluain/backend/utils"
)

// RoadmapKey addresses the gamified roadmap progress. It is independent of
// DataKey and the two catalogs are never reconciled.
const RoadmapKey = "fullstackProgress"

const coinsPerLevel = 100

var (
	ErrStageNotFound  = errors.New("stage not found")
	ErrStageCompleted = errors.New("stage already completed")
	ErrStageLocked    = errors.New("stage is locked")
	ErrStageNotReady  = errors.New("stage has pending skills")
)

// SkillID names the skill at index within stage, e.g. "3-0".
func SkillID(stageID, index int) string {
	return fmt.Sprintf("%d-%d", stageID, index)
}

func parseSkillID(skillID string) (stageID, index int, ok bool) {
	stagePart, indexPart, found := strings.Cut(skillID, "-")
	if !found {
		return 0, 0, false
	}
	stageID, err := strconv.Atoi(stagePart)
	if err != nil {
		return 0, 0, false
	}
	index, err = strconv.Atoi(indexPart)
	if err != nil {
		return 0, 0, false
	}
	return stageID, index, SkillID(stageID, index) == skillID
}

type RoadmapStore struct {
	mu     sync.Mutex
	kv     storage.KeyValue
	logger *utils.Logger
	stages []models.RoadmapStage
	state  models.RoadmapProgress
}

func NewRoadmapStore(kv storage.KeyValue, logger *utils.Logger) (*RoadmapStore, error) {
	s := &RoadmapStore{
		kv:     kv,
		logger: logger.With("store", RoadmapKey),
		stages: RoadmapStages(),
	}

	if _, err := readJSON(kv, RoadmapKey, &s.state); err != nil {
		if !errors.Is(err, ErrCorruptDocument) {
			return nil, err
		}
		s.logger.Warn("discarding unreadable roadmap progress", "error", err)
		s.state = models.RoadmapProgress{}
	}
	s.normalize()
	return s, nil
}

func (s *RoadmapStore) normalize() {
	if s.state.CompletedStages == nil {
		s.state.CompletedStages = []int{}
	}
	if s.state.CompletedSkills == nil {
		s.state.CompletedSkills = []string{}
	}
	if s.state.Level <= 0 {
		s.state.Level = 1
	}
}

func (s *RoadmapStore) save() error {
	return writeJSON(s.kv, RoadmapKey, s.state)
}

func (s *RoadmapStore) stage(id int) (models.RoadmapStage, bool) {
	if id < 1 || id > len(s.stages) {
		return models.RoadmapStage{}, false
	}
	return s.stages[id-1], true
}

func (s *RoadmapStore) Stage(id int) (models.RoadmapStage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stage(id)
	if !ok {
		return models.RoadmapStage{}, false
	}
	st.Skills = slices.Clone(st.Skills)
	return st, true
}

// CompleteSkill records a skill as done. Unknown or already completed
// skills are a no-op reported as false.
func (s *RoadmapStore) CompleteSkill(skillID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stageID, index, ok := parseSkillID(skillID)
	if !ok {
		return false, nil
	}
	st, ok := s.stage(stageID)
	if !ok || index < 0 || index >= len(st.Skills) {
		return false, nil
	}
	if slices.Contains(s.state.CompletedSkills, skillID) {
		return false, nil
	}

	// Rebuilt rather than kept: skillID may alias a request buffer.
	s.state.CompletedSkills = append(s.state.CompletedSkills, SkillID(stageID, index))
	if err := s.save(); err != nil {
		return true, err
	}
	return true, nil
}

func (s *RoadmapStore) completedSkillIndexes(st models.RoadmapStage) []int {
	done := []int{}
	for i := range st.Skills {
		if slices.Contains(s.state.CompletedSkills, SkillID(st.ID, i)) {
			done = append(done, i)
		}
	}
	return done
}

func (s *RoadmapStore) stageReady(st models.RoadmapStage) bool {
	return len(s.completedSkillIndexes(st)) == len(st.Skills)
}

// StageReady reports whether every skill of the stage is completed.
func (s *RoadmapStore) StageReady(stageID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stage(stageID)
	return ok && s.stageReady(st)
}

func (s *RoadmapStore) isLocked(stageID int) bool {
	return stageID-1 > s.state.CurrentStage
}

// IsLocked reports whether the stage lies beyond the next one to unlock.
func (s *RoadmapStore) IsLocked(stageID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLocked(stageID)
}

func (s *RoadmapStore) IsCompleted(stageID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.state.CompletedStages, stageID)
}

// CompleteStage credits the stage's coins, recomputes the level and
// advances the current stage when stageID is the next one in sequence.
// Unknown or already completed stages are a no-op reported as false.
// Readiness and locking are not checked, see CompleteStageIfReady.
func (s *RoadmapStore) CompleteStage(stageID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stage(stageID)
	if !ok || slices.Contains(s.state.CompletedStages, stageID) {
		return false, nil
	}
	return true, s.completeStage(st)
}

// StageCompletion is the outcome of a guarded stage completion.
type StageCompletion struct {
	Stage        models.RoadmapStage
	AllCompleted bool
}

// CompleteStageIfReady completes the stage only when it is unlocked, not
// yet completed and every one of its skills is ticked. The checks and the
// update happen under one lock.
func (s *RoadmapStore) CompleteStageIfReady(stageID int) (StageCompletion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stage(stageID)
	switch {
	case !ok:
		return StageCompletion{}, ErrStageNotFound
	case slices.Contains(s.state.CompletedStages, stageID):
		return StageCompletion{}, ErrStageCompleted
	case s.isLocked(stageID):
		return StageCompletion{}, ErrStageLocked
	case !s.stageReady(st):
		return StageCompletion{}, ErrStageNotReady
	}

	if err := s.completeStage(st); err != nil {
		return StageCompletion{}, err
	}
	st.Skills = slices.Clone(st.Skills)
	return StageCompletion{Stage: st, AllCompleted: s.allCompleted()}, nil
}

func (s *RoadmapStore) completeStage(st models.RoadmapStage) error {
	s.state.CompletedStages = append(s.state.CompletedStages, st.ID)
	s.state.Coins += st.Coins
	s.state.Level = s.state.Coins/coinsPerLevel + 1
	if st.ID == s.state.CurrentStage+1 {
		s.state.CurrentStage = st.ID
	}

	if err := s.save(); err != nil {
		return err
	}
	s.logger.Debug("roadmap stage completed", "stage", st.ID, "coins", s.state.Coins, "level", s.state.Level)
	return nil
}

func (s *RoadmapStore) journeyProgress() float64 {
	done, weight := 0.0, 0
	for _, st := range s.stages {
		fraction := float64(len(s.completedSkillIndexes(st))) / float64(len(st.Skills))
		done += fraction * float64(st.Percentage)
		weight += st.Percentage
	}
	if weight == 0 {
		return 0
	}
	return done * 100 / float64(weight)
}

// JourneyProgress is the overall percent of the journey covered by
// completed skills. Each stage weighs its milestone percentage, scaled so
// a finished roadmap reads 100.
func (s *RoadmapStore) JourneyProgress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journeyProgress()
}

func (s *RoadmapStore) allCompleted() bool {
	for _, st := range s.stages {
		if !slices.Contains(s.state.CompletedStages, st.ID) {
			return false
		}
	}
	return true
}

func (s *RoadmapStore) AllCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allCompleted()
}

func (s *RoadmapStore) Overview() models.RoadmapOverview {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]models.RoadmapStageView, 0, len(s.stages))
	for _, st := range s.stages {
		done := s.completedSkillIndexes(st)

		status := models.StageAvailable
		switch {
		case slices.Contains(s.state.CompletedStages, st.ID):
			status = models.StageCompleted
		case s.isLocked(st.ID):
			status = models.StageLocked
		}

		stage := st
		stage.Skills = slices.Clone(st.Skills)
		views = append(views, models.RoadmapStageView{
			RoadmapStage:    stage,
			Status:          status,
			SkillProgress:   float64(len(done)) / float64(len(st.Skills)) * 100,
			CompletedSkills: done,
			Ready:           len(done) == len(st.Skills),
		})
	}

	return models.RoadmapOverview{
		Stages:          views,
		CurrentStage:    s.state.CurrentStage,
		Coins:           s.state.Coins,
		Level:           s.state.Level,
		JourneyProgress: s.journeyProgress(),
		Completed:       s.allCompleted(),
	}
}

func (s *RoadmapStore) Progress() models.RoadmapProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.state
	p.CompletedStages = slices.Clone(p.CompletedStages)
	p.CompletedSkills = slices.Clone(p.CompletedSkills)
	return p
}

// Reset starts the journey over and removes the persisted progress.
func (s *RoadmapStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.RoadmapProgress{}
	s.normalize()
	if err := removeKey(s.kv, RoadmapKey); err != nil {
		return err
	}
	s.logger.Info("roadmap progress reset")
	return nil
}

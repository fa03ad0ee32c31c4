package models

import "time"

type StageStatus string

const (
	StageLocked    StageStatus = "locked"
	StageAvailable StageStatus = "available"
	StageCompleted StageStatus = "completed"
)

// Stage is one unit of the curriculum catalog.
type Stage struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Icon          string      `json:"icon"`
	Level         int         `json:"level"`
	Description   string      `json:"description"`
	Skills        []string    `json:"skills"`
	Prerequisites []string    `json:"prerequisites"`
	XPReward      int         `json:"xpReward"`
	Status        StageStatus `json:"status"`
}

type UserProgress struct {
	CompletedStages []string `json:"completedStages"`
	UnlockedStages  []string `json:"unlockedStages"`
	TotalXP         int      `json:"totalXP"`
	Achievements    []string `json:"achievements"`
}

type StageProgress struct {
	Status   StageStatus `json:"status"`
	Progress int         `json:"progress"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tags      []string  `json:"tags"`
}

// NoteUpdate carries the fields to merge into a note; nil means unchanged.
type NoteUpdate struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

type ChatMessageType string

const (
	ChatSystem ChatMessageType = "system"
	ChatOwn    ChatMessageType = "own"
	ChatOther  ChatMessageType = "other"
)

type ChatMessage struct {
	ID        string          `json:"id"`
	Type      ChatMessageType `json:"type"`
	User      string          `json:"user,omitempty"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
}

type Feedback struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
}

type SuggestionCategory string

const (
	CategoryFeature     SuggestionCategory = "feature"
	CategoryImprovement SuggestionCategory = "improvement"
	CategoryContent     SuggestionCategory = "content"
	CategoryBug         SuggestionCategory = "bug"
)

func (c SuggestionCategory) Valid() bool {
	switch c {
	case CategoryFeature, CategoryImprovement, CategoryContent, CategoryBug:
		return true
	}
	return false
}

type Suggestion struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Category  SuggestionCategory `json:"category"`
	Votes     int                `json:"votes"`
	CreatedAt time.Time          `json:"createdAt"`
}

type Settings struct {
	Theme                    string `json:"theme"`
	EmailNotifications       bool   `json:"emailNotifications"`
	PushNotifications        bool   `json:"pushNotifications"`
	AchievementNotifications bool   `json:"achievementNotifications"`
	ProfilePublic            bool   `json:"profilePublic"`
	ShowProgressPublic       bool   `json:"showProgressPublic"`
}

type Education struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Institution string    `json:"institution"`
	Period      string    `json:"period"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Provider    string    `json:"provider"`
	Duration    string    `json:"duration"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Profile struct {
	Bio       string      `json:"bio,omitempty"`
	Location  string      `json:"location,omitempty"`
	Settings  *Settings   `json:"settings,omitempty"`
	Education []Education `json:"education"`
	Courses   []Course    `json:"courses"`
}

// ProfileUpdate is shallow-merged into the profile: every non-nil field
// replaces the stored one.
type ProfileUpdate struct {
	Bio      *string   `json:"bio,omitempty"`
	Location *string   `json:"location,omitempty"`
	Settings *Settings `json:"settings,omitempty"`
}

type Statistics struct {
	TotalStages      int `json:"totalStages"`
	CompletedStages  int `json:"completedStages"`
	TotalXP          int `json:"totalXP"`
	TotalNotes       int `json:"totalNotes"`
	TotalFeedback    int `json:"totalFeedback"`
	TotalSuggestions int `json:"totalSuggestions"`
	// Streak is min(completed stages, 30), not a day count.
	Streak int `json:"streak"`
}

// Document is the whole persisted state under the "pluainData" key.
// Nil sections mean the section was absent and gets defaults on load.
type Document struct {
	Stages       map[string]*Stage `json:"stages"`
	UserProgress *UserProgress     `json:"userProgress"`
	Notes        []Note            `json:"notes"`
	ChatHistory  []ChatMessage     `json:"chatHistory"`
	Feedback     []Feedback        `json:"feedback"`
	Suggestions  []Suggestion      `json:"suggestions"`
	Profile      *Profile          `json:"profile"`
}

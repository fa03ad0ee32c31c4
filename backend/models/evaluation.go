package models

// Placeholder fields below mark values that are generated rather than
// measured; clients should render them as illustrative only.

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type SkillProgress struct {
	Name        string `json:"name"`
	Progress    int    `json:"progress"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type TimeStats struct {
	Today       float64 `json:"today"`
	ThisWeek    float64 `json:"thisWeek"`
	Total       float64 `json:"total"`
	Placeholder bool    `json:"placeholder"`
}

type EvaluationOverview struct {
	Statistics        Statistics      `json:"statistics"`
	CompletionPercent int             `json:"completionPercent"`
	Skills            []SkillProgress `json:"skills"`
	Time              TimeStats       `json:"time"`
}

// Export is the debug dump of every persisted document.
type Export struct {
	User      *SessionUser    `json:"user"`
	Data      Document        `json:"data"`
	Roadmap   RoadmapProgress `json:"roadmap"`
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
}

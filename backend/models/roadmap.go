package models

// RoadmapStage is a phase of the gamified fullstack roadmap.
type RoadmapStage struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	// Percentage is how far along the journey this phase sits.
	Percentage int `json:"percentage"`
	Coins      int `json:"coins"`
}

// RoadmapProgress is persisted under the "fullstackProgress" key.
type RoadmapProgress struct {
	CurrentStage    int      `json:"currentStage"`
	CompletedStages []int    `json:"completedStages"`
	CompletedSkills []string `json:"completedSkills"`
	Coins           int      `json:"coins"`
	Level           int      `json:"level"`
}

type RoadmapStageView struct {
	RoadmapStage
	Status StageStatus `json:"status"`
	// SkillProgress is the percent of this stage's skills completed.
	SkillProgress   float64 `json:"skillProgress"`
	CompletedSkills []int   `json:"completedSkills"`
	Ready           bool    `json:"ready"`
}

type RoadmapOverview struct {
	Stages          []RoadmapStageView `json:"stages"`
	CurrentStage    int                `json:"currentStage"`
	Coins           int                `json:"coins"`
	Level           int                `json:"level"`
	JourneyProgress float64            `json:"journeyProgress"`
	Completed       bool               `json:"completed"`
}

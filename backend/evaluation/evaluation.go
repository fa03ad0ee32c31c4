// Package evaluation derives the dashboard numbers shown on the evaluation
// and profile screens. Several of them are placeholders with no real
// measurement behind them; those are generated here from a random source
// and flagged with Placeholder so clients can label them.
package evaluation

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"pluain/backend/models"
)

// Rand is the subset of *rand.Rand (math/rand/v2) used for placeholders.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the math/rand/v2 global source, which is safe for
// concurrent use.
var DefaultRand Rand = globalRand{}

type track struct {
	name     string
	keywords []string
}

var tracks = []track{
	{name: "HTML/CSS", keywords: []string{"html", "css"}},
	{name: "JavaScript", keywords: []string{"javascript"}},
	{name: "React", keywords: []string{"react"}},
	{name: "Node.js", keywords: []string{"node"}},
}

func (t track) matches(stage models.Stage) bool {
	title := strings.ToLower(stage.Title)
	for _, kw := range t.keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// SkillProgress reports, per track, the floored percent of matching stages
// that are completed. A track with no matching stage gets a random 20..99
// and is marked as placeholder.
func SkillProgress(stages []models.Stage, completed []string, rng Rand) []models.SkillProgress {
	out := make([]models.SkillProgress, 0, len(tracks))
	for _, t := range tracks {
		relevant, done := 0, 0
		for _, st := range stages {
			if !t.matches(st) {
				continue
			}
			relevant++
			if slices.Contains(completed, st.ID) {
				done++
			}
		}

		if relevant == 0 {
			out = append(out, models.SkillProgress{Name: t.name, Progress: rng.IntN(80) + 20, Placeholder: true})
			continue
		}
		out = append(out, models.SkillProgress{Name: t.name, Progress: done * 100 / relevant})
	}
	return out
}

func randomHours(rng Rand, lo, hi float64) float64 {
	return math.Round((rng.Float64()*(hi-lo)+lo)*10) / 10
}

// PlaceholderTimeStats fabricates study hours. Nothing tracks time yet.
func PlaceholderTimeStats(rng Rand) models.TimeStats {
	return models.TimeStats{
		Today:       randomHours(rng, 1, 5),
		ThisWeek:    randomHours(rng, 8, 25),
		Total:       randomHours(rng, 30, 100),
		Placeholder: true,
	}
}

// CompletionPercent is completed/total stages, floored. Zero when the
// catalog is empty.
func CompletionPercent(stats models.Statistics) int {
	if stats.TotalStages == 0 {
		return 0
	}
	return stats.CompletedStages * 100 / stats.TotalStages
}

// Achievements evaluates the badge list against the statistics. The
// "social" badge is a coin flip since chat participation is not counted.
func Achievements(stats models.Statistics, rng Rand) []models.Achievement {
	return []models.Achievement{
		{
			ID:          "first-step",
			Name:        "Primeiro Passo",
			Description: "Completou sua primeira fase",
			Icon:        "👶",
			Unlocked:    stats.CompletedStages >= 1,
		},
		{
			ID:          "learner",
			Name:        "Aprendiz",
			Description: "Completou 3 fases",
			Icon:        "📚",
			Unlocked:    stats.CompletedStages >= 3,
		},
		{
			ID:          "developer",
			Name:        "Desenvolvedor",
			Description: "Completou 5 fases",
			Icon:        "💻",
			Unlocked:    stats.CompletedStages >= 5,
		},
		{
			ID:          "streak-master",
			Name:        "Mestre da Consistência",
			Description: "Manteve sequência de 7 dias",
			Icon:        "🔥",
			Unlocked:    stats.Streak >= 7,
		},
		{
			ID:          "note-taker",
			Name:        "Anotador",
			Description: "Criou 10 anotações",
			Icon:        "📝",
			Unlocked:    stats.TotalNotes >= 10,
		},
		{
			ID:          "social",
			Name:        "Social",
			Description: "Participou do chat 5 vezes",
			Icon:        "💬",
			Unlocked:    rng.Float64() > 0.5,
			Placeholder: true,
		},
		{
			ID:          "feedback-giver",
			Name:        "Colaborador",
			Description: "Enviou feedback ou sugestão",
			Icon:        "🤝",
			Unlocked:    stats.TotalFeedback >= 1 || stats.TotalSuggestions >= 1,
		},
		{
			ID:          "fullstack",
			Name:        "Full Stack",
			Description: "Completou todas as fases",
			Icon:        "🏆",
			Unlocked:    stats.TotalStages > 0 && stats.CompletedStages >= stats.TotalStages,
		},
	}
}

// Overview bundles everything the evaluation screen renders.
func Overview(stats models.Statistics, stages []models.Stage, completed []string, rng Rand) models.EvaluationOverview {
	return models.EvaluationOverview{
		Statistics:        stats,
		CompletionPercent: CompletionPercent(stats),
		Skills:            SkillProgress(stages, completed, rng),
		Time:              PlaceholderTimeStats(rng),
	}
}

// SampleSuggestions are the community ideas seeded into an empty board.
// They go through the normal add path, so they start with zero votes.
func SampleSuggestions() []models.Suggestion {
	return []models.Suggestion{
		{
			Title:    "Sistema de Mentoria",
			Content:  "Seria interessante ter um sistema onde desenvolvedores experientes pudessem mentorar iniciantes através de videochamadas ou chat privado.",
			Category: models.CategoryFeature,
		},
		{
			Title:    "Modo Escuro Aprimorado",
			Content:  "Melhorar o tema escuro com mais opções de personalização e diferentes tons de cores.",
			Category: models.CategoryImprovement,
		},
		{
			Title:    "Certificados de Conclusão",
			Content:  "Adicionar certificados digitais que podem ser compartilhados no LinkedIn quando completar todas as fases.",
			Category: models.CategoryFeature,
		},
		{
			Title:    "Mais Conteúdo sobre TypeScript",
			Content:  "Incluir uma trilha específica para TypeScript com exercícios práticos e projetos reais.",
			Category: models.CategoryContent,
		},
	}
}

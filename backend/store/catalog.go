package store

import "pluain/backend/models"

// EntryStage is the only stage unlocked on a fresh document.
const EntryStage = "html-basics"

// DefaultStages returns a fresh copy of the nine-stage web curriculum.
func DefaultStages() map[string]*models.Stage {
	stages := []models.Stage{
		{
			ID:          "html-basics",
			Title:       "HTML5 Fundamentals",
			Icon:        "🌐",
			Level:       1,
			Description: "Aprenda os fundamentos do HTML5 e estruture suas primeiras páginas web.",
			Skills: []string{
				"Tags básicas do HTML",
				"Estrutura semântica",
				"Formulários HTML5",
				"Multimídia (audio, video)",
				"Canvas e SVG",
			},
			Prerequisites: []string{},
			XPReward:      100,
			Status:        models.StageAvailable,
		},
		{
			ID:          "css-styling",
			Title:       "CSS3 & Design",
			Icon:        "🎨",
			Level:       2,
			Description: "Domine CSS3, Flexbox, Grid e crie layouts responsivos incríveis.",
			Skills: []string{
				"CSS3 básico e avançado",
				"Flexbox Layout",
				"CSS Grid",
				"Animações CSS",
				"Design Responsivo",
			},
			Prerequisites: []string{"html-basics"},
			XPReward:      150,
			Status:        models.StageLocked,
		},
		{
			ID:          "javascript-core",
			Title:       "JavaScript Essencial",
			Icon:        "⚡",
			Level:       3,
			Description: "Fundamentos do JavaScript: variáveis, funções, DOM e programação orientada a objetos.",
			Skills: []string{
				"Sintaxe JavaScript",
				"Manipulação do DOM",
				"Eventos e Event Listeners",
				"JavaScript assíncrono",
				"ES6+ Features",
			},
			Prerequisites: []string{"html-basics", "css-styling"},
			XPReward:      200,
			Status:        models.StageLocked,
		},
		{
			ID:          "javascript-advanced",
			Title:       "JavaScript Avançado",
			Icon:        "🚀",
			Level:       4,
			Description: "Conceitos avançados: closures, promises, async/await, módulos e padrões de projeto.",
			Skills: []string{
				"Closures e Scope",
				"Promises e Async/Await",
				"Módulos ES6",
				"Design Patterns",
				"Performance Optimization",
			},
			Prerequisites: []string{"javascript-core"},
			XPReward:      250,
			Status:        models.StageLocked,
		},
		{
			ID:          "react-basics",
			Title:       "React Fundamentals",
			Icon:        "⚛️",
			Level:       5,
			Description: "Aprenda React do zero: componentes, estado, props e hooks.",
			Skills: []string{
				"Componentes React",
				"JSX e Virtual DOM",
				"State e Props",
				"React Hooks",
				"Context API",
			},
			Prerequisites: []string{"javascript-advanced"},
			XPReward:      300,
			Status:        models.StageLocked,
		},
		{
			ID:          "react-advanced",
			Title:       "React Avançado",
			Icon:        "🏗️",
			Level:       6,
			Description: "React avançado: performance, testes, padrões avançados e ecosystem.",
			Skills: []string{
				"React Performance",
				"Custom Hooks",
				"Higher-Order Components",
				"React Testing Library",
				"State Management (Redux/Zustand)",
			},
			Prerequisites: []string{"react-basics"},
			XPReward:      350,
			Status:        models.StageLocked,
		},
		{
			ID:          "nodejs-backend",
			Title:       "Node.js Backend",
			Icon:        "🌲",
			Level:       7,
			Description: "Construa APIs REST com Node.js, Express e trabalhe com bancos de dados.",
			Skills: []string{
				"Node.js Fundamentos",
				"Express.js Framework",
				"REST APIs",
				"Autenticação JWT",
				"MongoDB/PostgreSQL",
			},
			Prerequisites: []string{"javascript-advanced"},
			XPReward:      400,
			Status:        models.StageLocked,
		},
		{
			ID:          "database-design",
			Title:       "Banco de Dados",
			Icon:        "🗄️",
			Level:       8,
			Description: "Design de bancos relacionais e NoSQL, otimização de queries.",
			Skills: []string{
				"SQL Avançado",
				"Modelagem de Dados",
				"MongoDB",
				"Otimização de Queries",
				"Database Migration",
			},
			Prerequisites: []string{"nodejs-backend"},
			XPReward:      300,
			Status:        models.StageLocked,
		},
		{
			ID:          "fullstack-project",
			Title:       "Projeto Full Stack",
			Icon:        "🏆",
			Level:       9,
			Description: "Crie uma aplicação completa integrando frontend, backend e banco de dados.",
			Skills: []string{
				"Arquitetura Full Stack",
				"Deploy e DevOps",
				"Testes E2E",
				"Performance Monitoring",
				"Projeto Portfolio",
			},
			Prerequisites: []string{"react-advanced", "database-design"},
			XPReward:      500,
			Status:        models.StageLocked,
		},
	}

	catalog := make(map[string]*models.Stage, len(stages))
	for i := range stages {
		catalog[stages[i].ID] = &stages[i]
	}
	return catalog
}

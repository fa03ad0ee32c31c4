package store

import "pluain/backend/models"

// RoadmapStages returns the twelve phases of the fullstack roadmap in
// journey order. Stage ids start at 1.
func RoadmapStages() []models.RoadmapStage {
	return []models.RoadmapStage{
		{
			ID:          1,
			Title:       "Fundamentos Básicos",
			Icon:        "🎯",
			Description: "Conhecimentos essenciais para iniciar na área de tecnologia",
			Skills: []string{
				"Conhecimento em Windows e Linux",
				"Pacote Office (Word, Excel, PowerPoint)",
				"Manutenção básica de hardware",
				"Protocolos TCP/IP básicos",
				"Noções de segurança da informação",
			},
			Percentage: 8,
			Coins:      50,
		},
		{
			ID:          2,
			Title:       "HTML & CSS",
			Icon:        "🎨",
			Description: "Estrutura e estilização de páginas web",
			Skills: []string{
				"HTML5 semântico",
				"CSS3 e Flexbox",
				"CSS Grid",
				"Responsive Design",
				"Animações CSS",
				"Preprocessadores (Sass/Less)",
			},
			Percentage: 15,
			Coins:      75,
		},
		{
			ID:          3,
			Title:       "JavaScript Básico",
			Icon:        "⚡",
			Description: "Lógica de programação e JavaScript fundamentals",
			Skills: []string{
				"Variáveis e tipos de dados",
				"Funções e escopo",
				"Arrays e objetos",
				"Loops e condicionais",
				"DOM manipulation",
				"Event handling",
			},
			Percentage: 25,
			Coins:      100,
		},
		{
			ID:          4,
			Title:       "JavaScript Avançado",
			Icon:        "🚀",
			Description: "Conceitos avançados de JavaScript",
			Skills: []string{
				"ES6+ features",
				"Promises e Async/Await",
				"Closures e Hoisting",
				"Prototypes e Classes",
				"Modules (Import/Export)",
				"Error handling",
			},
			Percentage: 35,
			Coins:      125,
		},
		{
			ID:          5,
			Title:       "React.js",
			Icon:        "⚛️",
			Description: "Biblioteca para construção de interfaces",
			Skills: []string{
				"Components e JSX",
				"Props e State",
				"Hooks (useState, useEffect)",
				"Context API",
				"React Router",
				"State Management",
			},
			Percentage: 45,
			Coins:      150,
		},
		{
			ID:          6,
			Title:       "Node.js & Express",
			Icon:        "🟢",
			Description: "Backend com JavaScript",
			Skills: []string{
				"Node.js fundamentals",
				"Express.js framework",
				"RESTful APIs",
				"Middleware",
				"File system operations",
				"NPM e package.json",
			},
			Percentage: 55,
			Coins:      175,
		},
		{
			ID:          7,
			Title:       "Banco de Dados",
			Icon:        "🗄️",
			Description: "Armazenamento e gerenciamento de dados",
			Skills: []string{
				"SQL básico",
				"PostgreSQL/MySQL",
				"MongoDB (NoSQL)",
				"ORMs (Prisma, Sequelize)",
				"Database design",
				"Migrations e seeds",
			},
			Percentage: 65,
			Coins:      200,
		},
		{
			ID:          8,
			Title:       "APIs & Integração",
			Icon:        "🔗",
			Description: "Comunicação entre sistemas",
			Skills: []string{
				"REST APIs",
				"GraphQL",
				"Authentication (JWT)",
				"API testing",
				"Third-party integrations",
				"Webhooks",
			},
			Percentage: 75,
			Coins:      225,
		},
		{
			ID:          9,
			Title:       "DevOps & Deploy",
			Icon:        "☁️",
			Description: "Deployment e infraestrutura",
			Skills: []string{
				"Git e GitHub",
				"Docker básico",
				"CI/CD pipelines",
				"Cloud platforms (AWS, Vercel)",
				"Environment variables",
				"Monitoring e logs",
			},
			Percentage: 85,
			Coins:      250,
		},
		{
			ID:          10,
			Title:       "Ferramentas",
			Icon:        "🏗️",
			Description: "Conhecimento em linguagens de baixo nível",
			Skills:      []string{"C", "C++", "C#", "Go", "Java"},
			Percentage:  95,
			Coins:       300,
		},
		{
			ID:          11,
			Title:       "Frameworks Avançados",
			Icon:        "🏗️",
			Description: "Ferramentas e frameworks modernos",
			Skills: []string{
				"Next.js ou Nuxt.js",
				"TypeScript",
				"Testing (Jest, Cypress)",
				"State management avançado",
				"Performance optimization",
				"SEO e acessibilidade",
				"Spring boot",
			},
			Percentage: 95,
			Coins:      300,
		},
		{
			ID:          12,
			Title:       "Desenvolvedor Fullstack",
			Icon:        "👑",
			Description: "Parabéns! Você é um desenvolvedor fullstack completo!",
			Skills: []string{
				"Arquitetura de software",
				"Microservices",
				"Scalability",
				"Security best practices",
				"Code review e mentoria",
				"Continuous learning",
			},
			Percentage: 100,
			Coins:      500,
		},
	}
}

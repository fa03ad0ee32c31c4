// Package chat simulates the community chat room: occasional bot replies
// to the user's messages, a fluctuating online counter and the odd
// unprompted message from another "student". Nothing here talks to real
// users; every message ends up in the progress document's chat history.
package chat

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"pluain/backend/models"
	"pluain/backend/utils"
)

// MessageStore is the part of the progress store the room writes to.
type MessageStore interface {
	AddChatMessage(msg models.ChatMessage) (models.ChatMessage, error)
	SeedChatHistory(msgs []models.ChatMessage) (bool, error)
}

// Rand is satisfied by *rand.Rand from math/rand/v2.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

type Config struct {
	// Simulate turns the bots on. When false the room only seeds the
	// welcome messages and reports a fixed online count.
	Simulate bool

	ReplyChance      float64
	ReplyDelayMin    time.Duration
	ReplyDelayMax    time.Duration
	PresenceInterval time.Duration
	AmbientInterval  time.Duration
	AmbientChance    float64
	MaxOnline        int

	Rand Rand
}

func (c Config) withDefaults() Config {
	if c.ReplyChance == 0 {
		c.ReplyChance = 0.3
	}
	if c.ReplyDelayMin == 0 {
		c.ReplyDelayMin = 2 * time.Second
	}
	if c.ReplyDelayMax < c.ReplyDelayMin {
		c.ReplyDelayMax = c.ReplyDelayMin + 3*time.Second
	}
	if c.PresenceInterval == 0 {
		c.PresenceInterval = 30 * time.Second
	}
	if c.AmbientInterval == 0 {
		c.AmbientInterval = time.Minute
	}
	if c.AmbientChance == 0 {
		c.AmbientChance = 0.1
	}
	if c.MaxOnline <= 0 {
		c.MaxOnline = 15
	}
	if c.Rand == nil {
		c.Rand = globalRand{}
	}
	return c
}

var (
	botUsers = []string{"DevMentor", "CodeHelper", "WebWizard", "TechGuru", "StackMaster"}

	botReplies = []string{
		"Interessante! Pode me contar mais sobre isso?",
		"Boa pergunta! Também estou aprendendo sobre isso.",
		"Parabéns pelo progresso! Continue assim! 🎉",
		"Isso me lembra de quando eu estava aprendendo... É normal ter dúvidas.",
		"Ótima observação! Já tentou aplicar na prática?",
		"Legal! Compartilha depois como foi a experiência.",
		"Verdade! Esse conceito é bem importante.",
		"Excelente! Você está no caminho certo.",
	}

	ambientUsers = []string{"StudyBuddy", "CodeNewbie", "FullStackFan", "ReactLover", "JSExplorer"}

	ambientMessages = []string{
		"Alguém pode me ajudar com CSS Grid?",
		"Acabei de terminar meu primeiro projeto React! 🚀",
		"Qual editor de código vocês recomendam?",
		"Estou com dificuldade em async/await, alguém tem dicas?",
		"Compartilhando: ótimo tutorial sobre Node.js que encontrei",
		"Boa noite pessoal, continuando os estudos! 📚",
		"Quem mais está fazendo a trilha de JavaScript?",
		"Dica: sempre testem o código no mobile também!",
	}
)

// WelcomeMessages are seeded into an empty history.
func WelcomeMessages() []models.ChatMessage {
	return []models.ChatMessage{
		{ID: "system-1", Type: models.ChatSystem, Content: "Bem-vindo ao chat! Seja respeitoso e ajude outros desenvolvedores."},
		{ID: "user-1", Type: models.ChatOther, User: "DevMaster", Content: "Pessoal, alguém sabe uma boa fonte para aprender React Hooks?"},
		{ID: "user-2", Type: models.ChatOther, User: "CodeNinja", Content: "Recomendo a documentação oficial do React, é muito bem explicada!"},
		{ID: "user-3", Type: models.ChatOther, User: "WebDev2024", Content: "Acabei de completar a fase de JavaScript Avançado! 🎉"},
	}
}

// Room owns the simulated activity. Pending replies and tickers stop when
// the room is stopped or the context passed to Run is cancelled.
type Room struct {
	store  MessageStore
	logger *utils.Logger
	cfg    Config

	rngMu sync.Mutex
	rng   Rand

	online atomic.Int32

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

func NewRoom(store MessageStore, logger *utils.Logger, cfg Config) *Room {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	r := &Room{
		store:  store,
		logger: logger.With("component", "chat"),
		cfg:    cfg,
		rng:    cfg.Rand,
		ctx:    ctx,
		cancel: cancel,
	}
	r.online.Store(int32(r.randomOnline()))
	return r
}

func (r *Room) intN(n int) int {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.IntN(n)
}

func (r *Room) chance(p float64) bool {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Float64() < p
}

func (r *Room) randomOnline() int {
	return r.intN(r.cfg.MaxOnline) + 1
}

func (r *Room) pick(list []string) string {
	return list[r.intN(len(list))]
}

// Online is the simulated number of people in the room.
func (r *Room) Online() int {
	return int(r.online.Load())
}

// SeedWelcome fills an empty history with the welcome messages.
func (r *Room) SeedWelcome() error {
	seeded, err := r.store.SeedChatHistory(WelcomeMessages())
	if seeded {
		r.logger.Debug("chat history seeded")
	}
	return err
}

// OnUserMessage rolls for a bot reply to something the user posted and,
// on success, schedules it after a random delay. Reports whether a reply
// was scheduled.
func (r *Room) OnUserMessage(content string) bool {
	if !r.cfg.Simulate || !r.chance(r.cfg.ReplyChance) {
		return false
	}

	delay := r.cfg.ReplyDelayMin
	if span := r.cfg.ReplyDelayMax - r.cfg.ReplyDelayMin; span > 0 {
		delay += time.Duration(r.intN(int(span)))
	}

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return false
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-r.ctx.Done():
			return
		case <-timer.C:
		}
		r.post(r.pick(botUsers), r.pick(botReplies))
	}()

	r.logger.Debug("bot reply scheduled", "delay", delay, "prompt_len", len(content))
	return true
}

func (r *Room) post(user, content string) {
	msg := models.ChatMessage{Type: models.ChatOther, User: user, Content: content}
	if _, err := r.store.AddChatMessage(msg); err != nil {
		r.logger.Warn("failed to store simulated message", "user", user, "error", err)
	}
}

// Run drives the presence counter and ambient messages until ctx is
// cancelled or Stop is called, then waits for pending replies to drain.
func (r *Room) Run(ctx context.Context) error {
	defer r.Stop()

	if !r.cfg.Simulate {
		select {
		case <-ctx.Done():
		case <-r.ctx.Done():
		}
		return nil
	}

	presence := time.NewTicker(r.cfg.PresenceInterval)
	defer presence.Stop()
	ambient := time.NewTicker(r.cfg.AmbientInterval)
	defer ambient.Stop()

	r.logger.Info("chat simulation started", "online", r.Online())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.ctx.Done():
			return nil
		case <-presence.C:
			r.online.Store(int32(r.randomOnline()))
		case <-ambient.C:
			if r.chance(r.cfg.AmbientChance) {
				r.post(r.pick(ambientUsers), r.pick(ambientMessages))
			}
		}
	}
}

// Stop cancels pending replies and waits for their goroutines.
func (r *Room) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

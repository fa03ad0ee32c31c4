package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pluain/backend/models"
	"pluain/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memoryHistory struct {
	mu   sync.Mutex
	msgs []models.ChatMessage
	err  error
}

func (h *memoryHistory) AddChatMessage(msg models.ChatMessage) (models.ChatMessage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return msg, h.err
	}
	h.msgs = append(h.msgs, msg)
	return msg, nil
}

func (h *memoryHistory) SeedChatHistory(msgs []models.ChatMessage) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return false, h.err
	}
	if len(h.msgs) > 0 {
		return false, nil
	}
	h.msgs = append(h.msgs, msgs...)
	return true, nil
}

func (h *memoryHistory) ChatHistory() []models.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.ChatMessage(nil), h.msgs...)
}

type fixedRand struct {
	n int
	f float64
}

func (r fixedRand) IntN(n int) int   { return min(r.n, n-1) }
func (r fixedRand) Float64() float64 { return r.f }

func fastConfig(rng Rand) Config {
	return Config{
		Simulate:         true,
		ReplyChance:      0.3,
		ReplyDelayMin:    time.Millisecond,
		ReplyDelayMax:    2 * time.Millisecond,
		PresenceInterval: 5 * time.Millisecond,
		AmbientInterval:  5 * time.Millisecond,
		AmbientChance:    0.1,
		Rand:             rng,
	}
}

func TestSeedWelcome(t *testing.T) {
	history := &memoryHistory{}
	room := NewRoom(history, utils.NewNopLogger(), Config{})
	defer room.Stop()

	require.NoError(t, room.SeedWelcome())
	msgs := history.ChatHistory()
	require.Len(t, msgs, 4)
	assert.Equal(t, "system-1", msgs[0].ID)
	assert.Equal(t, models.ChatSystem, msgs[0].Type)
	assert.Equal(t, "DevMaster", msgs[1].User)

	require.NoError(t, room.SeedWelcome())
	assert.Len(t, history.ChatHistory(), 4, "seeding twice adds nothing")
}

func TestSeedWelcome_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	room := NewRoom(&memoryHistory{err: boom}, utils.NewNopLogger(), Config{})
	defer room.Stop()

	assert.ErrorIs(t, room.SeedWelcome(), boom)
}

func TestOnUserMessage_RepliesWhenRollSucceeds(t *testing.T) {
	history := &memoryHistory{}
	room := NewRoom(history, utils.NewNopLogger(), fastConfig(fixedRand{n: 2, f: 0.1}))
	defer room.Stop()

	assert.True(t, room.OnUserMessage("como uso flexbox?"))
	assert.Eventually(t, func() bool { return len(history.ChatHistory()) == 1 }, time.Second, time.Millisecond)

	reply := history.ChatHistory()[0]
	assert.Equal(t, models.ChatOther, reply.Type)
	assert.Equal(t, botUsers[2], reply.User)
	assert.Equal(t, botReplies[2], reply.Content)
}

func TestOnUserMessage_NoReplyWhenRollFails(t *testing.T) {
	history := &memoryHistory{}
	room := NewRoom(history, utils.NewNopLogger(), fastConfig(fixedRand{f: 0.9}))
	defer room.Stop()

	assert.False(t, room.OnUserMessage("oi"))
}

func TestOnUserMessage_DisabledSimulation(t *testing.T) {
	cfg := fastConfig(fixedRand{})
	cfg.Simulate = false
	room := NewRoom(&memoryHistory{}, utils.NewNopLogger(), cfg)
	defer room.Stop()

	assert.False(t, room.OnUserMessage("oi"))
}

func TestStop_DropsPendingReplies(t *testing.T) {
	history := &memoryHistory{}
	cfg := fastConfig(fixedRand{f: 0})
	cfg.ReplyDelayMin = time.Hour
	cfg.ReplyDelayMax = time.Hour
	room := NewRoom(history, utils.NewNopLogger(), cfg)

	require.True(t, room.OnUserMessage("oi"))
	room.Stop()

	assert.Empty(t, history.ChatHistory())
	assert.False(t, room.OnUserMessage("oi de novo"), "a stopped room schedules nothing")
}

func TestRun_AmbientMessagesAndPresence(t *testing.T) {
	history := &memoryHistory{}
	room := NewRoom(history, utils.NewNopLogger(), fastConfig(fixedRand{n: 6, f: 0.05}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- room.Run(ctx) }()

	assert.Eventually(t, func() bool { return len(history.ChatHistory()) >= 2 }, time.Second, time.Millisecond)
	assert.Equal(t, 7, room.Online())

	cancel()
	require.NoError(t, <-done)

	msg := history.ChatHistory()[0]
	assert.Contains(t, ambientUsers, msg.User)
	assert.Contains(t, ambientMessages, msg.Content)
}

func TestRun_StopsOnCancelWithoutSimulation(t *testing.T) {
	room := NewRoom(&memoryHistory{}, utils.NewNopLogger(), Config{Rand: fixedRand{n: 100}})
	assert.Equal(t, 15, room.Online())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- room.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

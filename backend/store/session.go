package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pluain/backend/models"
	"pluain/backend/storage"
	"pluain/backend/utils"
)

// SessionKey addresses the mocked logged-in user.
const SessionKey = "pluainUser"

const (
	DefaultAvatar = "/assets/avatar.jpeg"
	startingCoins = 100
	startingLevel = 1
)

// SessionStore keeps the single mocked session. No password is ever
// stored: any non-empty credentials log in.
type SessionStore struct {
	mu     sync.Mutex
	kv     storage.KeyValue
	logger *utils.Logger
	now    func() time.Time
	user   *models.SessionUser
}

func NewSessionStore(kv storage.KeyValue, logger *utils.Logger, opts ...Option) (*SessionStore, error) {
	s := &SessionStore{
		kv:     kv,
		logger: logger.With("store", SessionKey),
		now:    buildOptions(opts).now,
	}

	var user models.SessionUser
	found, err := readJSON(kv, SessionKey, &user)
	switch {
	case errors.Is(err, ErrCorruptDocument):
		s.logger.Warn("discarding unreadable session", "error", err)
	case err != nil:
		return nil, err
	case found:
		s.user = &user
	}
	return s, nil
}

func (s *SessionStore) start(user models.SessionUser) (models.SessionUser, error) {
	user.ID = uuid.NewString()
	user.Avatar = DefaultAvatar
	user.Level = startingLevel
	user.Coins = startingCoins
	user.JoinDate = s.now()

	if err := writeJSON(s.kv, SessionKey, user); err != nil {
		return models.SessionUser{}, err
	}
	s.user = &user
	s.logger.Info("session started", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login opens a session named after the local part of the email.
func (s *SessionStore) Login(email string) (models.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, _, _ := strings.Cut(email, "@")
	return s.start(models.SessionUser{Name: name, Email: email})
}

func (s *SessionStore) Register(name, email string, age int) (models.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.start(models.SessionUser{Name: name, Email: email, Age: age})
}

// Current returns the logged-in user, or nil.
func (s *SessionStore) Current() *models.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// UpdateIdentity changes the display name and, when age > 0, the age.
// Returns nil when nobody is logged in.
func (s *SessionStore) UpdateIdentity(name string, age int) (*models.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, nil
	}
	if name != "" {
		s.user.Name = name
	}
	if age > 0 {
		s.user.Age = age
	}
	u := *s.user
	if err := writeJSON(s.kv, SessionKey, u); err != nil {
		return &u, err
	}
	return &u, nil
}

func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		s.logger.Info("session closed", "user_id", s.user.ID)
	}
	s.user = nil
	return removeKey(s.kv, SessionKey)
}

package auth

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log/slog"
	"regexp"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"github.com/worldsmp/worlds-server/internal/dependencies/clock"
	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/storage"
)

// Errors. The strings are shown verbatim in the client's login form.
var (
	ErrUsernameTaken   = errors.New("Username taken")
	ErrInvalidUsername = errors.New("Username: 3-16 characters, letters, numbers, underscore only")
	ErrInvalidPassword = errors.New("Password: 4+ characters")
	ErrUserNotFound    = errors.New("User not found")
	ErrWrongPassword   = errors.New("Wrong password")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

const (
	minUsernameLen = 3
	maxUsernameLen = 16
	minPasswordLen = 4

	saltLength  = 32
	tokenLength = 32
	idAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// LoginResult carries a fresh session token and the account's persisted
// gameplay snapshot.
type LoginResult struct {
	Token string
	Data  model.Snapshot
}

// Service handles registration, authentication, and session tokens
type Service struct {
	store  storage.AccountStore
	clock  clock.Clock
	random random.Random
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]string // token -> username

	iterations int
}

// Config holds configuration for the auth service
type Config struct {
	// HashIterations is the PBKDF2 iteration count
	HashIterations int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		HashIterations: 4096,
	}
}

// New creates a new auth Service
func New(store storage.AccountStore, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.HashIterations == 0 {
		cfg.HashIterations = DefaultConfig().HashIterations
	}
	return &Service{
		store:      store,
		clock:      clk,
		random:     rnd,
		logger:     logger.With(slog.String("component", "auth")),
		sessions:   make(map[string]string),
		iterations: cfg.HashIterations,
	}
}

// Register creates a new account with an empty gameplay snapshot. It does not
// log the user in.
func (s *Service) Register(ctx context.Context, username, password string) error {
	// Early duplicate check so a taken name is reported ahead of format
	// errors; the CreateAccount below still closes the race.
	if _, err := s.store.GetAccount(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, model.ErrAccountNotFound) {
		return err
	}

	if len(username) < minUsernameLen || len(username) > maxUsernameLen || !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	if len(password) < minPasswordLen {
		return ErrInvalidPassword
	}

	salt := s.random.String(saltLength, idAlphabet)
	now := s.clock.Now().UnixMilli()

	account := &model.Account{
		PasswordHash: s.hashPassword(password, salt),
		Salt:         salt,
		CreatedAt:    now,
		Data:         model.Snapshot{LastSeen: now},
	}

	if err := s.store.CreateAccount(ctx, username, account); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return ErrUsernameTaken
		}
		return err
	}

	s.logger.Info("account registered", slog.String("username", username))
	return nil
}

// Login authenticates a user and issues a fresh session token. The returned
// snapshot restores the player's last persisted position and inventory.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	account, err := s.store.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	computed := s.hashPassword(password, account.Salt)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(account.PasswordHash)) != 1 {
		return nil, ErrWrongPassword
	}

	token := s.random.String(tokenLength, idAlphabet)

	s.mu.Lock()
	s.sessions[token] = username
	s.mu.Unlock()

	return &LoginResult{Token: token, Data: account.Data}, nil
}

// SaveSnapshot merges the player's position and inventory into the stored
// account and refreshes lastSeen. A missing account is a no-op.
func (s *Service) SaveSnapshot(ctx context.Context, username string, position model.Vec3, inventory []*model.ItemStack) error {
	account, err := s.store.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	pos := position
	account.Data.Position = &pos
	account.Data.Inventory = inventory
	account.Data.LastSeen = s.clock.Now().UnixMilli()

	return s.store.PutAccount(ctx, username, account)
}

// RevokeToken deletes a session token
func (s *Service) RevokeToken(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// UsernameForToken resolves a session token to its username
func (s *Service) UsernameForToken(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.sessions[token]
	return username, ok
}

// hashPassword derives a hex-encoded PBKDF2-SHA512 digest. Deterministic
// given (password, salt).
func (s *Service) hashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), s.iterations, sha512.Size, sha512.New)
	return hex.EncodeToString(key)
}

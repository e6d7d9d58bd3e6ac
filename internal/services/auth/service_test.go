package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/worldsmp/worlds-server/internal/dependencies/mocks"
	"github.com/worldsmp/worlds-server/internal/dependencies/random"
	"github.com/worldsmp/worlds-server/internal/model"
	"github.com/worldsmp/worlds-server/internal/storage/memory"
	"github.com/worldsmp/worlds-server/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, random.New(), DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	err := s.service.Register(s.ctx, "alice", "secret")
	s.Require().NoError(err)

	account, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEmpty(account.PasswordHash)
	s.NotEmpty(account.Salt)
	s.NotEqual("secret", account.PasswordHash)
	s.Equal(s.clock.CurrentTime.UnixMilli(), account.CreatedAt)
	s.Nil(account.Data.Position)
	s.Nil(account.Data.Inventory)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameTaken() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "secret"))

	err := s.service.Register(s.ctx, "alice", "different")
	s.ErrorIs(err, ErrUsernameTaken)
}

func (s *ServiceSuite) TestRegisterRejectsShortUsername() {
	err := s.service.Register(s.ctx, "al", "secret")
	s.ErrorIs(err, ErrInvalidUsername)
}

func (s *ServiceSuite) TestRegisterRejectsLongUsername() {
	err := s.service.Register(s.ctx, "a_very_long_username", "secret")
	s.ErrorIs(err, ErrInvalidUsername)
}

func (s *ServiceSuite) TestRegisterRejectsBadCharacters() {
	err := s.service.Register(s.ctx, "ali ce!", "secret")
	s.ErrorIs(err, ErrInvalidUsername)
}

func (s *ServiceSuite) TestRegisterRejectsShortPassword() {
	err := s.service.Register(s.ctx, "alice", "abc")
	s.ErrorIs(err, ErrInvalidPassword)
}

func (s *ServiceSuite) TestRegisterDoesNotLogIn() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "secret"))

	s.service.mu.RLock()
	defer s.service.mu.RUnlock()
	s.Empty(s.service.sessions)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "secret"))

	result, err := s.service.Login(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	s.NotEmpty(result.Token)

	username, ok := s.service.UsernameForToken(result.Token)
	s.True(ok)
	s.Equal("alice", username)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "secret")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "secret"))

	_, err := s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrWrongPassword)
}

func (s *ServiceSuite) TestLoginReturnsStoredSnapshot() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "secret"))
	s.Require().NoError(s.service.SaveSnapshot(s.ctx, "alice",
		model.Vec3{X: 3, Y: 44, Z: -7}, model.DefaultInventory()))

	result, err := s.service.Login(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	s.Require().NotNil(result.Data.Position)
	s.Equal(3.0, result.Data.Position.X)
	s.Len(result.Data.Inventory, model.InventorySize)
}

func (s *ServiceSuite) TestConcurrentLoginsHoldDistinctTokens() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "secret"))

	first, err := s.service.Login(s.ctx, "alice", "secret")
	s.Require().NoError(err)
	second, err := s.service.Login(s.ctx, "alice", "secret")
	s.Require().NoError(err)

	s.NotEqual(first.Token, second.Token)
	_, ok := s.service.UsernameForToken(first.Token)
	s.True(ok)
	_, ok = s.service.UsernameForToken(second.Token)
	s.True(ok)
}

// SaveSnapshot tests

func (s *ServiceSuite) TestSaveSnapshotUpdatesLastSeen() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "secret"))
	s.clock.Advance(time.Hour)

	s.Require().NoError(s.service.SaveSnapshot(s.ctx, "alice", model.Vec3{Y: 43}, nil))

	account, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime.UnixMilli(), account.Data.LastSeen)
	s.Greater(account.Data.LastSeen, account.CreatedAt)
}

func (s *ServiceSuite) TestSaveSnapshotMissingAccountIsNoop() {
	err := s.service.SaveSnapshot(s.ctx, "nobody", model.Vec3{}, nil)
	s.NoError(err)
}

// RevokeToken tests

func (s *ServiceSuite) TestRevokeTokenRemovesSession() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "secret"))
	result, _ := s.service.Login(s.ctx, "alice", "secret")

	s.service.RevokeToken(result.Token)

	_, ok := s.service.UsernameForToken(result.Token)
	s.False(ok)
}

func (s *ServiceSuite) TestRevokeTokenNoopForUnknownToken() {
	// Should not panic
	s.service.RevokeToken("unknown_token")
}

// Hashing tests

func (s *ServiceSuite) TestHashPasswordIsDeterministic() {
	first := s.service.hashPassword("secret", "salt")
	second := s.service.hashPassword("secret", "salt")
	s.Equal(first, second)
}

func (s *ServiceSuite) TestHashPasswordVariesWithSalt() {
	s.NotEqual(s.service.hashPassword("secret", "a"), s.service.hashPassword("secret", "b"))
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/worldsmp/worlds-server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestPutAndGetAccount() {
	account := &model.Account{
		PasswordHash: "hash",
		Salt:         "salt",
		CreatedAt:    1700000000000,
		Data:         model.Snapshot{LastSeen: 1700000000000},
	}
	s.Require().NoError(s.storage.PutAccount(s.ctx, "alice", account))

	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("hash", got.PasswordHash)
	s.Equal("salt", got.Salt)
}

func (s *StorageSuite) TestCreateAccountSucceedsWhenUnclaimed() {
	err := s.storage.CreateAccount(s.ctx, "alice", &model.Account{PasswordHash: "h"})
	s.Require().NoError(err)

	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("h", got.PasswordHash)
}

func (s *StorageSuite) TestCreateAccountFailsWhenTaken() {
	s.Require().NoError(s.storage.CreateAccount(s.ctx, "alice", &model.Account{PasswordHash: "first"}))

	err := s.storage.CreateAccount(s.ctx, "alice", &model.Account{PasswordHash: "second"})
	s.ErrorIs(err, model.ErrUsernameTaken)

	// The original account is untouched
	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("first", got.PasswordHash)
}

func (s *StorageSuite) TestGetAccountReturnsCopy() {
	s.Require().NoError(s.storage.PutAccount(s.ctx, "alice", &model.Account{PasswordHash: "h"}))

	got, _ := s.storage.GetAccount(s.ctx, "alice")
	got.PasswordHash = "mutated"

	fresh, _ := s.storage.GetAccount(s.ctx, "alice")
	s.Equal("h", fresh.PasswordHash)
}

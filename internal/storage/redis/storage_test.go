package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/worldsmp/worlds-server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestPutAndGetAccountRoundTrips() {
	account := &model.Account{
		PasswordHash: "deadbeef",
		Salt:         "abc123",
		CreatedAt:    1700000000000,
		Data: model.Snapshot{
			Position:  &model.Vec3{X: 1, Y: 43, Z: -2},
			Inventory: model.DefaultInventory(),
			LastSeen:  1700000000000,
		},
	}
	s.Require().NoError(s.storage.PutAccount(s.ctx, "alice", account))

	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("deadbeef", got.PasswordHash)
	s.Equal("abc123", got.Salt)
	s.Require().NotNil(got.Data.Position)
	s.Equal(43.0, got.Data.Position.Y)
	s.Len(got.Data.Inventory, model.InventorySize)
	s.Equal("Sword", got.Data.Inventory[0].Name)
	s.Nil(got.Data.Inventory[2])
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

	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("first", got.PasswordHash)
}

func (s *StorageSuite) TestPutOverwritesExisting() {
	s.Require().NoError(s.storage.PutAccount(s.ctx, "alice", &model.Account{PasswordHash: "old"}))
	s.Require().NoError(s.storage.PutAccount(s.ctx, "alice", &model.Account{PasswordHash: "new"}))

	got, err := s.storage.GetAccount(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("new", got.PasswordHash)
}

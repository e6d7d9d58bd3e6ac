package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/worldsmp/worlds-server/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func (s *ServiceSuite) TestResolveKnownIndex() {
	message, ok := s.service.Resolve(2)
	s.True(ok)
	s.Equal("Nice!", message)
}

func (s *ServiceSuite) TestResolveFirstAndLast() {
	message, ok := s.service.Resolve(0)
	s.True(ok)
	s.Equal("Hello!", message)

	message, ok = s.service.Resolve(len(s.service.Presets()) - 1)
	s.True(ok)
	s.Equal("Oops!", message)
}

func (s *ServiceSuite) TestResolveOutOfRange() {
	_, ok := s.service.Resolve(-1)
	s.False(ok)

	_, ok = s.service.Resolve(len(s.service.Presets()))
	s.False(ok)
}

func (s *ServiceSuite) TestRecordKeepsOrder() {
	s.service.Record(model.ChatPayload{Type: model.ChatTypeJoin, Username: "alice"})
	s.service.Record(model.ChatPayload{Type: model.ChatTypeMessage, Username: "alice", Message: "Hello!"})

	history := s.service.History()
	s.Require().Len(history, 2)
	s.Equal(model.ChatTypeJoin, history[0].Type)
	s.Equal("Hello!", history[1].Message)
}

func (s *ServiceSuite) TestRecordTrimsOldestBeyondMax() {
	for i := 0; i < MaxHistory+10; i++ {
		s.service.Record(model.ChatPayload{
			Type:     model.ChatTypeMessage,
			Username: "alice",
			Message:  fmt.Sprintf("msg-%d", i),
		})
	}

	history := s.service.History()
	s.Require().Len(history, MaxHistory)
	s.Equal("msg-10", history[0].Message)
	s.Equal(fmt.Sprintf("msg-%d", MaxHistory+9), history[MaxHistory-1].Message)
}

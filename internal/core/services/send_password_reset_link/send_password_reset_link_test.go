package sendpasswordresetlink

import (
	"context"
	c "dinehub/internal/core/domain/common"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL   = c.Email("alice@test.test")
	USER_ID = user.ID(9)
)

type testSuite struct {
	suite.Suite
	Logger           *logging.FakeLogger
	UserRepository   *user.FakeUserRepository
	PasswordResetter *user.FakePasswordResetter
	Sender           *user.FakePasswordResetLinkSender
	Service          services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.UserRepository.Users = []user.User{
		{ID: USER_ID, Username: "alice", Email: EMAIL, PasswordHash: "hash"},
	}
	suite.PasswordResetter = user.NewFakePasswordResetter("reset")
	suite.Sender = user.NewFakePasswordResetLinkSender()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordResetter,
		suite.Sender,
	)
}

func TestSendPasswordResetLinkService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestLinkSent() {
	_, err := s.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(1, s.Sender.SentCount())
	assert.Equal(USER_ID, s.Sender.SentTo[0].ID)
	assert.Equal(user.EncodedID("uid9"), s.Sender.Sent[0].UserID)
	assert.True(s.PasswordResetter.ValidateToken(s.UserRepository.Users[0], s.Sender.Sent[0].Token))
}

func (s *testSuite) TestUnknownEmailIsNotReported() {
	_, err := s.Service.Run(context.Background(), Input{Email: "bob@test.test"})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(0, s.Sender.SentCount())
}

func (s *testSuite) TestSenderFailure() {
	s.Sender.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := s.Require()
	assert.NotNil(err)
	assert.Equal(1, s.Logger.CountByLevel(logging.ERROR))
}

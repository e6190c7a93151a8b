package resetpassword

import (
	"context"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID      = user.ID(5)
	NEW_PASSWORD = user.RawPassword("new-password")
)

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	PasswordResetter  *user.FakePasswordResetter
	PasswordHasher    *user.FakePasswordHasher
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	hash, _ := suite.PasswordHasher.HashPassword("old-password")
	suite.UserRepository = user.NewFakeUserRepository()
	suite.UserRepository.Users = []user.User{{ID: USER_ID, Username: "alice", PasswordHash: hash}}
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.SessionRepository.UserIdByToken["session"] = USER_ID
	suite.PasswordResetter = user.NewFakePasswordResetter("reset")
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.SessionRepository,
		suite.PasswordResetter,
		suite.PasswordHasher,
	)
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	link := s.issueLink()

	_, err := s.Service.Run(context.Background(), Input{Link: link, NewPassword: NEW_PASSWORD})

	assert := s.Require()
	assert.Nil(err)
	u, err := s.UserRepository.GetByID(context.Background(), USER_ID)
	assert.Nil(err)
	assert.True(s.PasswordHasher.ValidatePassword(NEW_PASSWORD, u.PasswordHash))
	assert.Equal(0, s.SessionRepository.CountForUser(USER_ID))
}

func (s *testSuite) TestLinkCannotBeReused() {
	link := s.issueLink()

	_, err := s.Service.Run(context.Background(), Input{Link: link, NewPassword: NEW_PASSWORD})
	s.Require().Nil(err)

	_, err = s.Service.Run(context.Background(), Input{Link: link, NewPassword: "another-password"})
	s.Require().ErrorIs(err, user.ErrInvalidPasswordResetToken)
}

func (s *testSuite) TestInvalidToken() {
	link := s.issueLink()
	link.Token = "forged"

	_, err := s.Service.Run(context.Background(), Input{Link: link, NewPassword: NEW_PASSWORD})

	assert := s.Require()
	assert.ErrorIs(err, user.ErrInvalidPasswordResetToken)
	assert.Equal(1, s.SessionRepository.CountForUser(USER_ID))
	u, _ := s.UserRepository.GetByID(context.Background(), USER_ID)
	assert.False(s.PasswordHasher.ValidatePassword(NEW_PASSWORD, u.PasswordHash))
}

func (s *testSuite) TestInvalidUserID() {
	link := s.issueLink()
	link.UserID = "not-an-id"

	_, err := s.Service.Run(context.Background(), Input{Link: link, NewPassword: NEW_PASSWORD})
	s.Require().ErrorIs(err, user.ErrInvalidPasswordResetToken)
}

func (s *testSuite) issueLink() user.PasswordResetLink {
	u, err := s.UserRepository.GetByID(context.Background(), USER_ID)
	if err != nil {
		s.FailNow(err.Error())
	}
	return user.PasswordResetLink{
		UserID: s.PasswordResetter.EncodeUserID(u.ID),
		Token:  s.PasswordResetter.GenerateToken(u),
	}
}

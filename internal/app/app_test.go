package app

import (
	"dinehub/internal/app/deps"
	"dinehub/internal/app/services"
	"dinehub/internal/config"
	"dinehub/internal/core/domain/category"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/restaurant"
	uow "dinehub/internal/core/domain/unit_of_work"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/routes"
	"dinehub/internal/http/templates"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	unitOfWork *uow.FakeUnitOfWork
	users      *user.FakeUserRepository
	sessions   *user.FakeSessionRepository
	links      *user.FakePasswordResetLinkSender
	router     http.Handler
}

func (suite *testSuite) SetupTest() {
	users := user.NewFakeUserRepository()
	categories := category.NewFakeRepository("Italian", "Vegan")
	preferences := category.NewFakePreferenceRepository(categories)
	suite.unitOfWork = &uow.FakeUnitOfWork{
		Context: uow.NewFakeUnitOfWorkContext(users, categories, preferences),
	}
	suite.users = users
	suite.sessions = user.NewFakeSessionRepository(users)
	suite.links = user.NewFakePasswordResetLinkSender()

	tmpl, err := templates.New()
	suite.Require().NoError(err)

	d := &deps.Deps{
		Config: &config.Config{
			SessionTTL:       time.Hour,
			LoginRedirectURL: routes.AccountDetails,
		},
		Logger:                    logging.NewFakeLogger(),
		Now:                       func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) },
		UnitOfWork:                suite.unitOfWork,
		UserRepository:            users,
		SessionRepository:         suite.sessions,
		PreferenceRepository:      preferences,
		FavoriteRepository:        restaurant.NewFakeFavoriteRepository(),
		PasswordResetLinkSender:   suite.links,
		UserSessionTokenGenerator: user.NewFakeSessionTokenGenerator("session-token"),
		PasswordHasher:            user.NewFakePasswordHasher(),
		PasswordResetter:          user.NewFakePasswordResetter("reset"),
		SessionCookie:             auth.NewSessionCookie("sessionid", "test-secret", time.Hour, false),
		Templates:                 tmpl,
	}
	suite.router = NewRouter(d, services.InitServices(d))
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) do(method string, target string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if values != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *testSuite) signUpAndLogIn() *http.Cookie {
	rec := suite.do(http.MethodPost, routes.Register, url.Values{
		"username":  {"john"},
		"email":     {"john@example.com"},
		"password1": {"secret-pass-1"},
		"password2": {"secret-pass-1"},
	})
	suite.Require().Equal(http.StatusFound, rec.Code)
	suite.Require().Equal(routes.Login, rec.Header().Get("Location"))

	rec = suite.do(http.MethodPost, routes.Login, url.Values{
		"username": {"john"},
		"password": {"secret-pass-1"},
	})
	suite.Require().Equal(http.StatusFound, rec.Code)
	suite.Require().Equal(routes.AccountDetails, rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	suite.Require().Len(cookies, 1)
	return cookies[0]
}

func (suite *testSuite) TestIndexForAnonymousUser() {
	rec := suite.do(http.MethodGet, routes.Index, nil)

	suite.Equal(http.StatusOK, rec.Code)
	suite.NotContains(rec.Body.String(), "Signed in as")
}

func (suite *testSuite) TestRegisterLogInAndShowAccount() {
	cookie := suite.signUpAndLogIn()

	rec := suite.do(http.MethodGet, routes.Index, nil, cookie)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "Signed in as john.")

	rec = suite.do(http.MethodGet, routes.AccountDetails, nil, cookie)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "<h1>john</h1>")
}

func (suite *testSuite) TestAuthenticatedUserIsRedirectedFromLoginAndRegister() {
	cookie := suite.signUpAndLogIn()

	for _, path := range []string{routes.Login, routes.Register} {
		rec := suite.do(http.MethodGet, path, nil, cookie)
		suite.Equal(http.StatusFound, rec.Code, path)
		suite.Equal(routes.Index, rec.Header().Get("Location"), path)
	}
}

func (suite *testSuite) TestAccountDetailsRedirectsAnonymousUser() {
	rec := suite.do(http.MethodGet, routes.AccountDetails, nil)

	suite.Equal(http.StatusFound, rec.Code)
	suite.Equal(routes.Login, rec.Header().Get("Location"))
}

func (suite *testSuite) TestAddAndDeletePreference() {
	cookie := suite.signUpAndLogIn()

	rec := suite.do(http.MethodPost, "/user/preference/add/Italian/", nil, cookie)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Preference Saved", rec.Body.String())

	rec = suite.do(http.MethodGet, routes.AccountDetails, nil, cookie)
	suite.Contains(rec.Body.String(), "Italian")

	rec = suite.do(http.MethodPost, "/user/preference/delete/Italian/", nil, cookie)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Preference Removed", rec.Body.String())
	suite.Empty(suite.unitOfWork.Context.PreferenceRepository.ByUser[suite.users.Users[0].ID])
}

func (suite *testSuite) TestPreferenceErrors() {
	rec := suite.do(http.MethodPost, "/user/preference/add/Italian/", nil)
	suite.Equal(http.StatusUnauthorized, rec.Code)

	cookie := suite.signUpAndLogIn()
	rec = suite.do(http.MethodPost, "/user/preference/add/Thai/", nil, cookie)
	suite.Equal(http.StatusNotFound, rec.Code)

	rec = suite.do(http.MethodGet, "/user/preference/add/Italian/", nil, cookie)
	suite.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func (suite *testSuite) TestLogOutInvalidatesSession() {
	cookie := suite.signUpAndLogIn()

	rec := suite.do(http.MethodGet, routes.Logout, nil, cookie)
	suite.Equal(http.StatusFound, rec.Code)
	suite.Equal(routes.Login, rec.Header().Get("Location"))
	suite.Equal(0, suite.sessions.CountForUser(suite.users.Users[0].ID))

	rec = suite.do(http.MethodGet, routes.AccountDetails, nil, cookie)
	suite.Equal(http.StatusFound, rec.Code)
	suite.Equal(routes.Login, rec.Header().Get("Location"))
}

func (suite *testSuite) TestForgetAndResetPassword() {
	suite.signUpAndLogIn()

	rec := suite.do(http.MethodPost, routes.ForgetPassword, url.Values{"email": {"john@example.com"}})
	suite.Equal(http.StatusOK, rec.Code)
	suite.Require().Equal(1, suite.links.SentCount())

	link := suite.links.Sent[0]
	target := fmt.Sprintf("/user/reset/%s/%s/", link.UserID, link.Token)
	rec = suite.do(http.MethodPost, target, url.Values{
		"new_password1": {"brand-new-pass"},
		"new_password2": {"brand-new-pass"},
	})
	suite.Equal(http.StatusFound, rec.Code)
	suite.Equal(routes.Login, rec.Header().Get("Location"))

	rec = suite.do(http.MethodPost, target, url.Values{
		"new_password1": {"another-pass-1"},
		"new_password2": {"another-pass-1"},
	})
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("This is invalid!", rec.Body.String())

	rec = suite.do(http.MethodPost, routes.Login, url.Values{
		"username": {"john"},
		"password": {"brand-new-pass"},
	})
	suite.Equal(http.StatusFound, rec.Code)
}

func (suite *testSuite) TestUpdatePasswordRequiresPost() {
	cookie := suite.signUpAndLogIn()

	rec := suite.do(http.MethodGet, routes.UpdatePassword, nil, cookie)
	suite.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func (suite *testSuite) TestUpdatePasswordReportsErrorsAsJSON() {
	cookie := suite.signUpAndLogIn()
	hash := suite.users.Users[0].PasswordHash

	rec := suite.do(http.MethodPost, routes.UpdatePassword, url.Values{
		"old_password":  {"wrong-pass-1"},
		"new_password1": {"brand-new-pass"},
		"new_password2": {"brand-new-pass"},
	}, cookie)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.JSONEq(
		`{"status":"400","errors":["Your old password was entered incorrectly. Please enter it again."]}`,
		rec.Body.String(),
	)
	suite.Equal(1, suite.sessions.CountForUser(suite.users.Users[0].ID))
	suite.Equal(hash, suite.users.Users[0].PasswordHash)

	rec = suite.do(http.MethodPost, routes.UpdatePassword, url.Values{
		"old_password":  {"wrong"},
		"new_password1": {"X"},
		"new_password2": {"X"},
	}, cookie)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.JSONEq(
		`{"status":"400","errors":[`+
			`"Your old password was entered incorrectly. Please enter it again.",`+
			`"This password is too short. It must contain at least 8 characters."]}`,
		rec.Body.String(),
	)
	suite.Equal(1, suite.sessions.CountForUser(suite.users.Users[0].ID))
	suite.Equal(hash, suite.users.Users[0].PasswordHash)
}

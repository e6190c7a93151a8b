package app

import (
	"dinehub/internal/app/deps"
	"dinehub/internal/app/services"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/handlers/routes"
	accountdetails "dinehub/internal/http/handlers/user/account_details"
	addpreference "dinehub/internal/http/handlers/user/add_preference"
	deletepreference "dinehub/internal/http/handlers/user/delete_preference"
	forgetpassword "dinehub/internal/http/handlers/user/forget_password"
	"dinehub/internal/http/handlers/user/index"
	"dinehub/internal/http/handlers/user/login"
	"dinehub/internal/http/handlers/user/logout"
	"dinehub/internal/http/handlers/user/register"
	resetpasswordlink "dinehub/internal/http/handlers/user/reset_password_link"
	updatepassword "dinehub/internal/http/handlers/user/update_password"
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	out := response.NewWriter(deps.Logger, deps.Templates)
	cookie := deps.SessionCookie

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	if deps.Config.SentryDsn != nil {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(cookie.SetAuthTokenToContext)

	router.Method(http.MethodGet, routes.Index, index.New(s.GetUserBySessionToken, out))

	router.Group(func(r chi.Router) {
		r.Use(auth.RedirectAuthenticated(s.GetUserBySessionToken, routes.Index))

		loginHandler := login.New(s.LogInWithUsername, cookie, deps.Config.LoginRedirectURL, out)
		r.Method(http.MethodGet, routes.Login, loginHandler)
		r.Method(http.MethodPost, routes.Login, loginHandler)

		registerHandler := register.New(s.RegisterUser, out)
		r.Method(http.MethodGet, routes.Register, registerHandler)
		r.Method(http.MethodPost, routes.Register, registerHandler)
	})

	logoutHandler := logout.New(s.LogOut, cookie, out)
	router.Method(http.MethodGet, routes.Logout, logoutHandler)
	router.Method(http.MethodPost, routes.Logout, logoutHandler)

	accountDetailsHandler := accountdetails.New(deps.Logger, s.GetAccountDetails, s.ChangePassword, cookie, out)
	router.Method(http.MethodGet, routes.AccountDetails, accountDetailsHandler)
	router.Method(http.MethodPost, routes.AccountDetails, accountDetailsHandler)

	resetHandler := resetpasswordlink.New(s.CheckPasswordResetLink, s.ResetPassword, cookie, out)
	router.Method(http.MethodGet, routes.ResetPassword, resetHandler)
	router.Method(http.MethodPost, routes.ResetPassword, resetHandler)

	forgetHandler := forgetpassword.New(s.SendPasswordResetLink, out)
	router.Method(http.MethodGet, routes.ForgetPassword, forgetHandler)
	router.Method(http.MethodPost, routes.ForgetPassword, forgetHandler)

	router.Method(http.MethodPost, routes.AddPreference, addpreference.New(s.AddPreference, out))
	router.Method(http.MethodPost, routes.DeletePreference, deletepreference.New(s.DeletePreference, out))
	router.Method(
		http.MethodPost,
		routes.UpdatePassword,
		updatepassword.New(deps.Logger, s.GetUserBySessionToken, s.ChangePassword, cookie, out),
	)

	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    address,
	}
}

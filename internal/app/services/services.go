package services

import (
	"dinehub/internal/app/deps"
	"dinehub/internal/core/services"
	addpreference "dinehub/internal/core/services/add_preference"
	"dinehub/internal/core/services/auth"
	changepassword "dinehub/internal/core/services/change_password"
	checkpasswordresetlink "dinehub/internal/core/services/check_password_reset_link"
	deletepreference "dinehub/internal/core/services/delete_preference"
	getaccountdetails "dinehub/internal/core/services/get_account_details"
	getuserbysessiontoken "dinehub/internal/core/services/get_user_by_session_token"
	loginwithusername "dinehub/internal/core/services/log_in_with_username"
	logout "dinehub/internal/core/services/log_out"
	registeruser "dinehub/internal/core/services/register_user"
	resetpassword "dinehub/internal/core/services/reset_password"
	sendpasswordresetlink "dinehub/internal/core/services/send_password_reset_link"
)

type Services struct {
	LogInWithUsername      services.Service[loginwithusername.Input, loginwithusername.Result]
	RegisterUser           services.Service[registeruser.Input, registeruser.Result]
	LogOut                 services.Service[logout.Input, logout.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	GetAccountDetails      services.Service[getaccountdetails.Input, getaccountdetails.Result]
	ChangePassword         services.Service[changepassword.Input, changepassword.Result]
	SendPasswordResetLink  services.Service[sendpasswordresetlink.Input, sendpasswordresetlink.Result]
	CheckPasswordResetLink services.Service[checkpasswordresetlink.Input, checkpasswordresetlink.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]

	AddPreference    services.Service[addpreference.Input, addpreference.Result]
	DeletePreference services.Service[deletepreference.Input, deletepreference.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.LogInWithUsername = loginwithusername.New(
		deps.Logger,
		deps.UserRepository,
		deps.SessionRepository,
		deps.PasswordHasher,
		deps.UserSessionTokenGenerator,
		deps.Now,
	)
	s.RegisterUser = registeruser.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.GetAccountDetails = auth.WithAuthentication(
		deps.SessionRepository,
		getaccountdetails.New(
			deps.Logger,
			deps.FavoriteRepository,
			deps.PreferenceRepository,
		),
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
		),
	)
	s.SendPasswordResetLink = sendpasswordresetlink.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
		deps.PasswordResetLinkSender,
	)
	s.CheckPasswordResetLink = checkpasswordresetlink.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.SessionRepository,
		deps.PasswordResetter,
		deps.PasswordHasher,
	)

	s.AddPreference = auth.WithAuthentication(
		deps.SessionRepository,
		addpreference.New(
			deps.Logger,
			deps.UnitOfWork,
		),
	)
	s.DeletePreference = auth.WithAuthentication(
		deps.SessionRepository,
		deletepreference.New(
			deps.Logger,
			deps.UnitOfWork,
		),
	)

	return s
}

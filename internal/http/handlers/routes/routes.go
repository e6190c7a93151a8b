package routes

const (
	Index            = "/"
	Login            = "/user/login/"
	Register         = "/user/register/"
	Logout           = "/user/logout/"
	AccountDetails   = "/user/account/"
	ResetPassword    = "/user/reset/{uid}/{token}/"
	ForgetPassword   = "/user/forget-password/"
	AddPreference    = "/user/preference/add/{category}/"
	DeletePreference = "/user/preference/delete/{category}/"
	UpdatePassword   = "/user/update-password/"
)

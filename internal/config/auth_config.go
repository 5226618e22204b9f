package config

// Backend authentication routes. The dispatcher never attaches a bearer
// credential to these and never tries to refresh after they fail.
const (
	DefaultLoginPath    = "/api/users/login/"
	DefaultRegisterPath = "/api/users/register/"
	DefaultRefreshPath  = "/api/users/token/refresh/"
)

type AuthConfig interface {
	GetLoginPath() string
	GetRegisterPath() string
	GetRefreshPath() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetLoginPath() string {
	return GetEnv("LOGIN_PATH", DefaultLoginPath)
}

func (Auth) GetRegisterPath() string {
	return GetEnv("REGISTER_PATH", DefaultRegisterPath)
}

func (Auth) GetRefreshPath() string {
	return GetEnv("REFRESH_PATH", DefaultRefreshPath)
}

package apiclient

import (
	"strings"

	"github.com/jrsteele09/go-student-jobs/internal/config"
)

// Endpoints names the authentication routes. Requests whose path contains
// one of them never carry a bearer credential and never trigger a refresh.
type Endpoints struct {
	Login    string
	Register string
	Refresh  string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:    config.DefaultLoginPath,
		Register: config.DefaultRegisterPath,
		Refresh:  config.DefaultRefreshPath,
	}
}

func EndpointsFromConfig(cfg config.AuthConfig) Endpoints {
	return Endpoints{
		Login:    cfg.GetLoginPath(),
		Register: cfg.GetRegisterPath(),
		Refresh:  cfg.GetRefreshPath(),
	}
}

func (e Endpoints) IsAuthEndpoint(path string) bool {
	for _, p := range []string{e.Login, e.Register, e.Refresh} {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}

package config

type Config interface {
	EnvConfig
	ClientConfig
	AuthConfig
	StubConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Client
	Auth
	Stub
}

func New() Config {
	return mainConfig{}
}

package config

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	baseURLVar        = "API_BASE_URL"
	requestTimeoutVar = "REQUEST_TIMEOUT"
)

type ClientConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetCredentialsFile() string
	GetLogFile() string
}

type Client struct{}

var _ ClientConfig = Client{}

// GetBaseURL returns the backend root, e.g. "https://studentjobrecommender.onrender.com".
// A trailing slash is removed so request paths can always start with one.
func (Client) GetBaseURL() string {
	return strings.TrimRight(GetEnv(baseURLVar, "http://localhost:8080"), "/")
}

func (Client) GetRequestTimeout() time.Duration {
	return GetDurationEnv(requestTimeoutVar, 30*time.Second)
}

func (Client) GetCredentialsFile() string {
	return filepath.Join(EnvVars{}.GetDataFolder(), "credentials.json")
}

func (Client) GetLogFile() string {
	return filepath.Join(EnvVars{}.GetDataFolder(), "jobportal.log")
}

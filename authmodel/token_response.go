package authmodel

// TokenPair is the body returned by the login endpoint.
type TokenPair struct {
	// Access is the short-lived JWT presented as a bearer credential.
	// Usage: "Authorization: Bearer <access>"
	// Lifespan: minutes
	Access string `json:"access"`

	// Refresh is the long-lived credential exchanged for a new access token.
	// Usage: sent to the refresh endpoint as {"refresh": "<refresh>"}
	// Lifespan: days
	Refresh string `json:"refresh"`
}

// RefreshRequest is the body sent to the refresh endpoint.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is the body returned by the refresh endpoint.
type RefreshResponse struct {
	// Access is the newly minted access token. Always present on success.
	Access string `json:"access"`

	// Refresh is only present when the backend rotates refresh tokens.
	// Clients prefer it over the stored refresh token when it is returned.
	Refresh string `json:"refresh,omitempty"`
}

package auth

// ErrorResponse is the error body shared by all API endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// TokenResponse is returned by Register, Login and Refresh. The access
// token field is named token for client compatibility; the refresh
// fields extend that shape.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
	User         any    `json:"user"`
}

package models

type LoginCredentials struct {
	Username string
	Password string
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	IsAdmin     *bool  `json:"is_admin,omitempty"`
}

// Profile returns the partial profile carried by the login response.
func (r LoginResponse) Profile() Profile {
	return Profile{ID: r.UserID, Username: r.Username, IsAdmin: r.IsAdmin}
}

package models

// Account is the minimal user profile the client works with. The same
// shape is persisted in the session file after login.
type Account struct {
	AccountID   string `json:"accountId"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	AvatarURL   string `json:"avatarUrl"`
	RoleID      int    `json:"roleId"`
}

// DisplayName prefers the full name, falling back to the username.
func (a *Account) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

package auth

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (l *LoginResponse) Equal(o *LoginResponse) bool {
	return l.Token == o.Token &&
		l.Username == o.Username &&
		l.Role == o.Role
}

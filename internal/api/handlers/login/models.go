package login

// LoginRequest HTTP модель входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

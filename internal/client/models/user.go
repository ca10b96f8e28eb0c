package models

// User is an account as returned by the backend. The password never leaves
// the registration and login requests.
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Phone string `json:"telefone,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// Registration is the body of POST /usuarios/cadastro.
type Registration struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone"`
	Password string `json:"senha"`
	Bio      string `json:"bio"`
}

// Credentials is the body of POST /usuarios/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"usuario"`
}

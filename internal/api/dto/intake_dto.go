package dto

// LoginRequest payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the data field of a successful login envelope.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SubmitRequest payload for the submit endpoint.
type SubmitRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// SubmitResponse is the data field of a successful submit envelope.
type SubmitResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

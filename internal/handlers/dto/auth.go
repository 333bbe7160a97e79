package dto

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	Surname   string `json:"surname" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

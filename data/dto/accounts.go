package dto

// RegisterRequestBody defines a request body for RegisterUser interactor.
type RegisterRequestBody struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Username    string `json:"username" validate:"required,max=30"`
	FirstName   string `json:"first_name" validate:"required,max=150"`
	LastName    string `json:"last_name" validate:"required,max=150"`
	Password    string `json:"password" validate:"required,max=72"`
	Avatar      string `json:"avatar" validate:"required,url,max=250"`
	Gender      string `json:"gender" validate:"required,oneof=male female"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Bio         string `json:"bio" validate:"required"`
	Info        string `json:"info" validate:"required,max=255"`
}

// ActivateRequestBody defines a request body for ActivateUser interactor.
type ActivateRequestBody struct {
	Token string `json:"token" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// EmailRequestBody carries the email for the reactivation and password
// token endpoints.
type EmailRequestBody struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetRequestBody defines a request body for PasswordReset interactor.
type PasswordResetRequestBody struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// TokenObtainRequestBody defines a request body for ObtainTokenPair interactor.
type TokenObtainRequestBody struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequestBody defines a request body for RefreshAccessToken interactor.
type RefreshRequestBody struct {
	Refresh string `json:"refresh" validate:"required"`
}

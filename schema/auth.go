package schema

// Credentials holds the access/refresh token pair; an empty string means absent.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// LoginRequest signs a manager or staff member in with email and password
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PinLoginRequest signs staff in on a store kiosk
type PinLoginRequest struct {
	StoreID    string `json:"storeId"`
	EmployeeNo string `json:"employeeNo"`
	PIN        string `json:"pin"`
}

// OTPRequest asks the server to send a one time password
type OTPRequest struct {
	Phone string `json:"phone"`
}

// OTPChallenge describes a sent one time password
type OTPChallenge struct {
	Phone     string `json:"phone"`
	ExpiresIn int    `json:"expiresIn"`
}

// OTPVerifyRequest exchanges a one time password for credentials
type OTPVerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// User represents the signed-in account
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Role    string `json:"role"`
	StoreID string `json:"storeId,omitempty"`
}

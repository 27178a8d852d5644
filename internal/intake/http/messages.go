package http

// Messages returned in {"error": ...} bodies.
const (
	msgInvalidBody      = "Invalid JSON body"
	msgInvalidName      = "Full name must be at least 2 characters long"
	msgInvalidEmail     = "Please enter a valid email address"
	msgInvalidPhone     = "Phone number must be in format: +1-XXX-XXX-XXXX"
	msgDuplicateEmail   = "A client with this email already exists"
	msgMissingLogin     = "Username and password are required"
	msgInvalidLogin     = "Invalid credentials"
	msgInternal         = "Internal server error"
	msgSubmitted        = "Client information submitted successfully"
	msgLoginOK          = "Login successful"
	msgAPIBanner        = "Client Form Management System API"
	maxRequestBodyBytes = 1 << 20
)

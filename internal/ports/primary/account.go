package primary

import "context"

// AccountService defines the primary port for the identity directory.
type AccountService interface {
	// Register creates a citizen account. Blank fields and short passwords
	// are validation errors; duplicate email or phone is a conflict.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate resolves credentials plus role to a user identity.
	// Unknown email, wrong role, or a bad password all surface as not found.
	Authenticate(ctx context.Context, req AuthenticateRequest) (*User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID int64) (*User, error)
}

// RegisterRequest contains parameters for registering a citizen.
type RegisterRequest struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

// AuthenticateRequest contains login credentials.
type AuthenticateRequest struct {
	Email    string
	Password string
	Role     string // citizen or staff
}

// User represents a user identity at the port boundary.
// The credential hash never crosses this boundary.
type User struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Role      string
	CreatedAt string
}

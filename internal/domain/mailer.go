package domain

// Mailer delivers transactional mail. Implementations must not be relied on
// for business invariants: a failed send never rolls back committed state.
type Mailer interface {
	SendLoginCredentials(email, username, password string) error
	SendPasswordResetEmail(email, resetToken string) error
}

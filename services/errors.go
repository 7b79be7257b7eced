package services

import "errors"

// Expected outcomes. Callers map these to user-facing responses; none of
// them needs an operator.
var (
	ErrMissingFields      = errors.New("missing_fields")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvitationNotFound = errors.New("invitation_not_found")
	ErrEmailMismatch      = errors.New("email_mismatch")
	ErrAlreadyUsed        = errors.New("invitation_already_used_or_invalid")
	ErrInvitationExpired  = errors.New("invitation_expired")
)

// ErrUnexpected wraps store failures. Its cause is for logs only.
var ErrUnexpected = errors.New("unexpected store failure")

// Kind names the taxonomy member an error belongs to, for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrInvitationNotFound):
		return "invitation_not_found"
	case errors.Is(err, ErrEmailMismatch):
		return "email_mismatch"
	case errors.Is(err, ErrAlreadyUsed):
		return "already_used"
	case errors.Is(err, ErrInvitationExpired):
		return "expired"
	default:
		return "unexpected"
	}
}

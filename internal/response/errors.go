package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrUnauthenticated ErrCode = "UNAUTHENTICATED"
	ErrTokenInvalid    ErrCode = "TOKEN_INVALID"
	ErrTokenExpired    ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"
	ErrNotOwner        ErrCode = "NOT_RESOURCE_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Admission ─────────────────────────────────────────────────────
	ErrAdmissionNotFound ErrCode = "ADMISSION_NOT_FOUND"
	ErrAlreadyEnrolled   ErrCode = "ALREADY_ENROLLED"

	// ─── Role assignment ───────────────────────────────────────────────
	ErrUnknownRole  ErrCode = "UNKNOWN_ROLE"
	ErrUnknownClass ErrCode = "UNKNOWN_CLASS"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrUnauthenticated:
		return "Authentication is required for this resource."
	case ErrTokenInvalid:
		return "The authentication token is not valid."
	case ErrTokenExpired:
		return "The authentication token has expired."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrNotOwner:
		return "You may only modify your own record."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The ID format is not valid."
	case ErrInvalidPayload:
		return "The request payload is not valid."
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrConflict:
		return "The resource already exists."
	case ErrAdmissionNotFound:
		return "No pending admission exists for this email."
	case ErrAlreadyEnrolled:
		return "A student with this email is already enrolled."
	case ErrUnknownRole:
		return "The requested role is not recognized."
	case ErrUnknownClass:
		return "The referenced class does not exist."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}

package errs

// Application error codes. HTTP handlers map these onto status codes.
var (
	ErrArgs         = NewCodeError(1001, "bad request args")
	ErrTokenMissing = NewCodeError(1101, "token missing")
	ErrTokenInvalid = NewCodeError(1102, "token invalid or expired")
	ErrOTPInvalid   = NewCodeError(1103, "verification code invalid or expired")
	ErrNoPermission = NewCodeError(1201, "no permission")
	ErrNotFound     = NewCodeError(1301, "record not found")
	ErrDuplicate    = NewCodeError(1302, "record already exists")
	ErrInternal     = NewCodeError(1500, "internal server error")
)

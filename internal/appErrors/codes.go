package appErrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeEmailNotVerified   ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeAccountDisabled    ErrorCode = "ACCOUNT_DISABLED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeItemNotFound        ErrorCode = "ITEM_NOT_FOUND"
	CodeTransactionNotFound ErrorCode = "TRANSACTION_NOT_FOUND"

	// Auth workflow
	CodeEmailAlreadyExists   ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeAlreadyVerified      ErrorCode = "ALREADY_VERIFIED"
	CodeTooManyAttempts      ErrorCode = "TOO_MANY_ATTEMPTS"
	CodeOTPRateLimited       ErrorCode = "OTP_RATE_LIMITED"
	CodeInvalidOrExpiredOTP  ErrorCode = "INVALID_OR_EXPIRED_OTP"
	CodeEmailDeliveryFailed  ErrorCode = "EMAIL_DELIVERY_FAILED"
	CodeExternalAuthMismatch ErrorCode = "NOT_APPLICABLE_FOR_EXTERNAL_AUTH"
	CodeInvalidExternalToken ErrorCode = "INVALID_EXTERNAL_TOKEN"

	// Marketplace workflow
	CodeSelfTransaction   ErrorCode = "SELF_TRANSACTION_FORBIDDEN"
	CodeItemUnavailable   ErrorCode = "ITEM_UNAVAILABLE"
	CodeInvalidState      ErrorCode = "INVALID_STATE"
	CodeInsufficientCoins ErrorCode = "INSUFFICIENT_COINS"
	CodeCouponAlreadyUsed ErrorCode = "COUPON_ALREADY_USED"
	CodeCouponExpired     ErrorCode = "COUPON_EXPIRED"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeRateLimited   ErrorCode = "RATE_LIMITED"
)

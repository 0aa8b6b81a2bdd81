package constant

// Domain service error codes
const (
	// Wi-Fi service - Validation errors (1xx)
	ErrCodeEmptySSID       = "SVC101"
	ErrCodeMissingPassword = "SVC102"
	ErrCodeInvalidLogoName = "SVC103"
	ErrCodePayloadTooLong  = "SVC104"

	// Wi-Fi service - Render errors (2xx)
	ErrCodeRenderImage = "SVC201"
	ErrCodeRenderText  = "SVC202"
	ErrCodeEncodeImage = "SVC203"
	ErrCodeLoadLogo    = "SVC204"
	ErrCodeDecodeLogo  = "SVC205"
)

// Infrastructure error codes
const (
	// QR generation errors (0xx)
	ErrCodeQRNew    = "QR001"
	ErrCodeQRWrite  = "QR002"
	ErrCodeQRDecode = "QR003"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeRender     = "render"
	ErrTypeLogo       = "logo"

	// Infrastructure error types
	ErrTypeQR = "qrcode"
)

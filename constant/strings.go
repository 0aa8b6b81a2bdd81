package constant

// HTTP header names
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"
)

// Content types
const (
	ContentTypeJSON = "application/json"
	ContentTypePNG  = "image/png"
	ContentTypeText = "text/plain; charset=utf-8"
)

// DataURIPrefixPNG is prepended to a base64 PNG to embed it in HTML.
const DataURIPrefixPNG = "data:image/png;base64,"

// Function/Context names
const (
	// Domain context names
	CtxDomain       = "domain"
	CtxPayload      = "Payload"
	CtxQRCodePNG    = "QRCodePNG"
	CtxQRCodeBase64 = "QRCodeBase64"
	CtxQRCodeText   = "QRCodeText"
	CtxResolveLogo  = "ResolveLogo"

	// Infrastructure context names
	CtxStyledRender = "StyledRender"
	CtxTextRender   = "TextRender"
	CtxAPI          = "api"
	CtxRateLimit    = "RateLimit"

	// General context names
	CtxRouter             = "Router"
	CtxMain               = "Main"
	CtxHandlePayload      = "HandlePayload"
	CtxHandleQRCode       = "HandleQRCode"
	CtxHandleQRCodeBase64 = "HandleQRCodeBase64"
	CtxHandleQRCodeQuery  = "HandleQRCodeQuery"
	CtxHandleQRCodeText   = "HandleQRCodeText"
)

// Data field keys
const (
	// Service data fields
	DataService    = "service"
	DataSSID       = "ssid"
	DataSecurity   = "security"
	DataEAPMethod  = "eap_method"
	DataHidden     = "hidden"
	DataLogo       = "logo"
	DataLogoDir    = "logo_dir"
	DataEscape     = "escape"
	DataCacheHit   = "cache_hit"
	DataBytes      = "bytes"
	DataWidth      = "width"
	DataHeight     = "height"
	DataPayloadLen = "payload_len"
	DataFormat     = "format"

	// API data fields
	DataMethod      = "method"
	DataPath        = "path"
	DataIP          = "ip"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataEnvironment = "environment"
	DataConfigFile  = "config_file"
	DataAuthEnabled = "auth_enabled"
)

// Render formats used for cache namespaces and metric labels
const (
	FormatPNG    = "png"
	FormatBase64 = "base64"
	FormatText   = "text"
)

// Error message constants
const (
	ErrEmptySSID       = "SSID cannot be empty"
	ErrMissingPassword = "password is required for secured networks"
	ErrInvalidLogoPath = "invalid logo path"
	ErrImageDecoding   = "logo is not a decodable image"
	ErrImageEncoding   = "failed to encode image"
	ErrQRGeneration    = "failed to generate QR code"
	ErrPayloadTooLong  = "payload exceeds QR code capacity"
	ErrRequestTooLarge = "request body too large"
)

// Error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIRateLimited    = "API003"
	ErrCodeAppConfig         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
)

// Error types
const (
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
)

// API routes
const (
	RoutePayload      = "/api/wifi/payload"
	RouteQRCode       = "/api/wifi/qrcode"
	RouteQRCodeBase64 = "/api/wifi/qrcode/base64"
	RouteQRCodeText   = "/api/wifi/qrcode.txt"
	RouteHealthcheck  = "/health"
	RouteMetrics      = "/metrics"

	AuthRealm = "wifiqr"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting  = "Application starting"
	MsgFailedToLoadConfig   = "Failed to load configuration"
	MsgServerStarting       = "Server starting"
	MsgServerFailedToStart  = "Server failed to start"
	MsgServerShuttingDown   = "Server shutting down"
	MsgServerShutdownError  = "Error during server shutdown"
	MsgServerStopped        = "Server stopped"
	MsgRequestReceived      = "Request received"
	MsgRequestCompleted     = "Request completed"
	MsgRateLimited          = "Request rate limited"
	MsgSettingUpRoutes      = "Setting up API routes"
	MsgHealthcheckRequest   = "Handling healthcheck request"
	MsgHealthy              = "Healthy"
	MsgInvalidRequest       = "Invalid request payload"
	MsgRenderServiceCreated = "Creating Wi-Fi render service"
	MsgBuildingPayload      = "Building Wi-Fi payload"
	MsgRenderingQRCode      = "Rendering Wi-Fi QR code"
	MsgQRCodeFromCache      = "QR code served from cache"
	MsgQRCodeRendered       = "QR code rendered"
	MsgQRCodeRenderFailed   = "Failed to render QR code"
	MsgPayloadValidation    = "Wi-Fi settings failed validation"
	MsgInvalidLogoName      = "Rejected logo name"
	MsgLogoUnavailable      = "Logo file unavailable"
)

// Cache namespaces
const (
	PNGNamespace  = "PNG"
	TextNamespace = "TXT"
)

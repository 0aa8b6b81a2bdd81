package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/prasetyowira/wifiqr/constant"
	"github.com/prasetyowira/wifiqr/domain/wifi"
	appLogger "github.com/prasetyowira/wifiqr/infrastructure/logger"
)

// Service is the part of wifi.Service the handlers depend on
type Service interface {
	Payload(ctx context.Context, settings wifi.NetworkSettings, opts wifi.RenderOptions) (string, error)
	QRCodePNG(ctx context.Context, settings wifi.NetworkSettings, opts wifi.RenderOptions) ([]byte, error)
	QRCodeBase64(ctx context.Context, settings wifi.NetworkSettings, opts wifi.RenderOptions) (wifi.Base64QRCode, error)
	QRCodeText(ctx context.Context, settings wifi.NetworkSettings, opts wifi.RenderOptions) (string, error)
}

// MaxRequestBodyBytes bounds JSON request bodies.
const MaxRequestBodyBytes = 1 << 16

// Handler contains service dependencies for API handlers
type Handler struct {
	service Service
	decoder *schema.Decoder
}

// WifiRequest describes a network in a JSON body or query string
type WifiRequest struct {
	SSID              string          `json:"ssid" schema:"ssid"`
	Password          string          `json:"password,omitempty" schema:"password"`
	Security          wifi.Security   `json:"security,omitempty" schema:"security"`
	Hidden            bool            `json:"hidden,omitempty" schema:"hidden"`
	Identity          string          `json:"identity,omitempty" schema:"identity"`
	EAPMethod         wifi.EAPMethod  `json:"eap_method,omitempty" schema:"eap_method"`
	Phase2Auth        wifi.Phase2Auth `json:"phase_2_auth,omitempty" schema:"phase_2_auth"`
	AnonOuterIdentity bool            `json:"anon_outer_identity,omitempty" schema:"anon_outer_identity"`
	Logo              string          `json:"logo,omitempty" schema:"logo"`
	Escape            bool            `json:"escape,omitempty" schema:"escape"`
}

// Settings converts the request to the domain value object
func (r WifiRequest) Settings() wifi.NetworkSettings {
	return wifi.NetworkSettings{
		SSID:              r.SSID,
		Password:          r.Password,
		Security:          r.Security,
		Hidden:            r.Hidden,
		Identity:          r.Identity,
		EAPMethod:         r.EAPMethod,
		Phase2Auth:        r.Phase2Auth,
		AnonOuterIdentity: r.AnonOuterIdentity,
	}
}

// Options extracts the render options from the request
func (r WifiRequest) Options() wifi.RenderOptions {
	return wifi.RenderOptions{
		Logo:   r.Logo,
		Escape: r.Escape,
	}
}

// PayloadResponse is the response for the payload endpoint
type PayloadResponse struct {
	Payload string `json:"payload"`
}

// Base64Response is the response for the base64 QR code endpoint
type Base64Response struct {
	Payload string `json:"payload"`
	Image   string `json:"image"`
	DataURI string `json:"data_uri"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler(service Service) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		service: service,
		decoder: decoder,
	}
}

// Payload returns the Wi-Fi payload string for a JSON body
func (h *Handler) Payload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeJSON(w, r, constant.CtxHandlePayload)
	if !ok {
		return
	}

	payload, err := h.service.Payload(ctx, req.Settings(), req.Options())
	if err != nil {
		h.writeServiceError(ctx, w, constant.CtxHandlePayload, err)
		return
	}

	WriteJSON(w, PayloadResponse{Payload: payload}, http.StatusOK)
}

// QRCode renders a PNG QR code for a JSON body
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeJSON(w, r, constant.CtxHandleQRCode)
	if !ok {
		return
	}
	h.writePNG(w, r, constant.CtxHandleQRCode, req)
}

// QRCodeQuery renders a PNG QR code from query parameters, usable as an <img> src
func (h *Handler) QRCodeQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeQuery(w, r, constant.CtxHandleQRCodeQuery)
	if !ok {
		return
	}
	h.writePNG(w, r, constant.CtxHandleQRCodeQuery, req)
}

// QRCodeBase64 renders a QR code and returns it base64 encoded in JSON
func (h *Handler) QRCodeBase64(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeJSON(w, r, constant.CtxHandleQRCodeBase64)
	if !ok {
		return
	}

	qr, err := h.service.QRCodeBase64(ctx, req.Settings(), req.Options())
	if err != nil {
		h.writeServiceError(ctx, w, constant.CtxHandleQRCodeBase64, err)
		return
	}

	WriteJSON(w, Base64Response{
		Payload: qr.Payload,
		Image:   qr.Image,
		DataURI: constant.DataURIPrefixPNG + qr.Image,
	}, http.StatusOK)
}

// QRCodeText renders a text QR code from query parameters
func (h *Handler) QRCodeText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeQuery(w, r, constant.CtxHandleQRCodeText)
	if !ok {
		return
	}

	text, err := h.service.QRCodeText(ctx, req.Settings(), req.Options())
	if err != nil {
		h.writeServiceError(ctx, w, constant.CtxHandleQRCodeText, err)
		return
	}

	w.Header().Set(constant.HeaderContentType, constant.ContentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (h *Handler) writePNG(w http.ResponseWriter, r *http.Request, fn string, req WifiRequest) {
	ctx := r.Context()

	data, err := h.service.QRCodePNG(ctx, req.Settings(), req.Options())
	if err != nil {
		h.writeServiceError(ctx, w, fn, err)
		return
	}

	w.Header().Set(constant.HeaderContentType, constant.ContentTypePNG)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, fn string) (WifiRequest, bool) {
	var req WifiRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDecodeError(r.Context(), w, fn, err)
		return req, false
	}
	return req, true
}

func (h *Handler) decodeQuery(w http.ResponseWriter, r *http.Request, fn string) (WifiRequest, bool) {
	var req WifiRequest
	if err := h.decoder.Decode(&req, r.URL.Query()); err != nil {
		h.writeDecodeError(r.Context(), w, fn, err)
		return req, false
	}
	return req, true
}

func (h *Handler) writeDecodeError(ctx context.Context, w http.ResponseWriter, fn string, err error) {
	appLogger.CtxWarn(ctx, constant.MsgInvalidRequest, appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeAPIDecodeRequest,
			Message: err.Error(),
			Type:    constant.ErrTypeAPI,
		},
	})

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteJSONError(w, constant.ErrRequestTooLarge, http.StatusRequestEntityTooLarge)
		return
	}
	WriteJSONError(w, "Invalid request format: "+err.Error(), http.StatusBadRequest)
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, fn string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		appLogger.CtxError(ctx, constant.MsgQRCodeRenderFailed, appLogger.LoggerInfo{
			ContextFunction: fn,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, constant.ErrQRGeneration, status)
		return
	}
	WriteJSONError(w, publicMessage(err), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, wifi.ErrEmptySSID),
		errors.Is(err, wifi.ErrMissingPassword),
		errors.Is(err, wifi.ErrPayloadTooLong),
		errors.Is(err, wifi.ErrInvalidLogoPath):
		return http.StatusBadRequest
	case errors.Is(err, wifi.ErrImageDecoding):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides file system details from logo errors.
func publicMessage(err error) string {
	for _, sentinel := range []error{
		wifi.ErrEmptySSID,
		wifi.ErrMissingPassword,
		wifi.ErrPayloadTooLong,
		wifi.ErrInvalidLogoPath,
		wifi.ErrImageDecoding,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set(constant.HeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}

package wifi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prasetyowira/wifiqr/constant"
	"github.com/prasetyowira/wifiqr/infrastructure/cache"
	"github.com/prasetyowira/wifiqr/infrastructure/logger"
	"github.com/prasetyowira/wifiqr/infrastructure/metrics"
)

// TextRenderer encodes a payload into a QR code drawn with text characters.
type TextRenderer interface {
	RenderText(payload string) (string, error)
}

// RenderOptions tune a single service call.
type RenderOptions struct {
	// Logo is a bare file name inside the service logo directory.
	Logo string
	// Escape selects EscapedPayload over Payload.
	Escape bool
}

// Base64QRCode is a rendered PNG in standard base64 with the payload it encodes.
type Base64QRCode struct {
	Payload string
	Image   string
}

// Service renders Wi-Fi QR codes on behalf of request handlers
type Service struct {
	renderer Renderer
	text     TextRenderer
	cache    *cache.NamespaceLRU
	logoDir  string
}

// NewService creates a new Wi-Fi render service
func NewService(renderer Renderer, text TextRenderer, lru *cache.NamespaceLRU, logoDir string) *Service {
	logger.Debug(constant.MsgRenderServiceCreated, logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "wifi",
			constant.DataLogoDir: logoDir,
		},
	})

	return &Service{
		renderer: renderer,
		text:     text,
		cache:    lru,
		logoDir:  logoDir,
	}
}

// Payload validates settings and returns the payload string.
func (s *Service) Payload(ctx context.Context, settings NetworkSettings, opts RenderOptions) (string, error) {
	logger.CtxDebug(ctx, constant.MsgBuildingPayload, logger.LoggerInfo{
		ContextFunction: constant.CtxPayload,
		Data: map[string]interface{}{
			constant.DataSSID:      settings.SSID,
			constant.DataSecurity:  settings.Security.String(),
			constant.DataEAPMethod: settings.EAPMethod.String(),
			constant.DataHidden:    settings.Hidden,
			constant.DataEscape:    opts.Escape,
		},
	})

	if err := settings.Validate(); err != nil {
		code := constant.ErrCodeEmptySSID
		if errors.Is(err, ErrMissingPassword) {
			code = constant.ErrCodeMissingPassword
		}
		logger.CtxWarn(ctx, constant.MsgPayloadValidation, logger.LoggerInfo{
			ContextFunction: constant.CtxPayload,
			Error: &logger.CustomError{
				Code:    code,
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataSSID: settings.SSID,
			},
		})
		return "", err
	}

	payload := settings.Payload()
	if opts.Escape {
		payload = settings.EscapedPayload()
	}
	if len(payload) > MaxPayloadBytes {
		logger.CtxWarn(ctx, constant.MsgPayloadValidation, logger.LoggerInfo{
			ContextFunction: constant.CtxPayload,
			Error: &logger.CustomError{
				Code:    constant.ErrCodePayloadTooLong,
				Message: constant.ErrPayloadTooLong,
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataPayloadLen: len(payload),
			},
		})
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLong, len(payload), MaxPayloadBytes)
	}
	return payload, nil
}

// ResolveLogo maps a logo name to a path inside the logo directory. Names
// that could escape the directory are rejected with ErrInvalidLogoPath.
func (s *Service) ResolveLogo(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		logger.CtxWarn(ctx, constant.MsgInvalidLogoName, logger.LoggerInfo{
			ContextFunction: constant.CtxResolveLogo,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInvalidLogoName,
				Message: constant.ErrInvalidLogoPath,
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataLogo: name,
			},
		})
		return "", fmt.Errorf("%w: %q is not a plain file name", ErrInvalidLogoPath, name)
	}
	return filepath.Join(s.logoDir, name), nil
}

// QRCodePNG renders the settings as a PNG, serving repeated requests from cache.
func (s *Service) QRCodePNG(ctx context.Context, settings NetworkSettings, opts RenderOptions) ([]byte, error) {
	payload, err := s.Payload(ctx, settings, opts)
	if err != nil {
		return nil, err
	}
	return s.renderPNG(ctx, constant.CtxQRCodePNG, constant.FormatPNG, settings, opts, payload)
}

// QRCodeBase64 renders the settings as a base64 encoded PNG and returns it
// together with the encoded payload.
func (s *Service) QRCodeBase64(ctx context.Context, settings NetworkSettings, opts RenderOptions) (Base64QRCode, error) {
	payload, err := s.Payload(ctx, settings, opts)
	if err != nil {
		return Base64QRCode{}, err
	}
	data, err := s.renderPNG(ctx, constant.CtxQRCodeBase64, constant.FormatBase64, settings, opts, payload)
	if err != nil {
		return Base64QRCode{}, err
	}
	return Base64QRCode{
		Payload: payload,
		Image:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

func (s *Service) renderPNG(ctx context.Context, fn, format string, settings NetworkSettings, opts RenderOptions, payload string) ([]byte, error) {
	logoPath, err := s.ResolveLogo(ctx, opts.Logo)
	if err != nil {
		return nil, err
	}
	version, err := logoVersion(logoPath)
	if err != nil {
		logger.CtxWarn(ctx, constant.MsgLogoUnavailable, logger.LoggerInfo{
			ContextFunction: fn,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeLoadLogo,
				Message: err.Error(),
				Type:    constant.ErrTypeLogo,
			},
			Data: map[string]interface{}{
				constant.DataLogo: opts.Logo,
			},
		})
		return nil, err
	}

	key := cacheKey(payload, opts.Logo+version)
	if data, ok := s.lookup(ctx, fn, constant.PNGNamespace, key); ok {
		return data, nil
	}

	logger.CtxDebug(ctx, constant.MsgRenderingQRCode, logger.LoggerInfo{
		ContextFunction: fn,
		Data: map[string]interface{}{
			constant.DataPayloadLen: len(payload),
			constant.DataLogo:       opts.Logo,
			constant.DataFormat:     format,
		},
	})

	start := time.Now()
	data, bounds, err := s.composePNG(payload, logoPath)
	s.observe(format, start, err)
	if err != nil {
		code, typ := renderErrorCode(err)
		logger.CtxError(ctx, constant.MsgQRCodeRenderFailed, logger.LoggerInfo{
			ContextFunction: fn,
			Error: &logger.CustomError{
				Code:    code,
				Message: err.Error(),
				Type:    typ,
			},
			Data: map[string]interface{}{
				constant.DataSSID: settings.SSID,
				constant.DataLogo: opts.Logo,
			},
		})
		return nil, err
	}

	s.cache.Set(constant.PNGNamespace, key, data)

	logger.CtxInfo(ctx, constant.MsgQRCodeRendered, logger.LoggerInfo{
		ContextFunction: fn,
		Data: map[string]interface{}{
			constant.DataSSID:   settings.SSID,
			constant.DataLogo:   opts.Logo,
			constant.DataWidth:  bounds.Dx(),
			constant.DataHeight: bounds.Dy(),
			constant.DataBytes:  len(data),
		},
	})
	return data, nil
}

func (s *Service) composePNG(payload, logoPath string) ([]byte, image.Rectangle, error) {
	img, err := ComposeQRImage(s.renderer, payload, logoPath)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	data, err := EncodePNG(img)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return data, img.Bounds(), nil
}

// QRCodeText renders the settings as a text QR code. Logos do not apply.
func (s *Service) QRCodeText(ctx context.Context, settings NetworkSettings, opts RenderOptions) (string, error) {
	payload, err := s.Payload(ctx, settings, opts)
	if err != nil {
		return "", err
	}

	key := cacheKey(payload, "")
	if data, ok := s.lookup(ctx, constant.CtxQRCodeText, constant.TextNamespace, key); ok {
		return string(data), nil
	}

	start := time.Now()
	text, err := s.text.RenderText(payload)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrQRGeneration, err)
		s.observe(constant.FormatText, start, err)
		logger.CtxError(ctx, constant.MsgQRCodeRenderFailed, logger.LoggerInfo{
			ContextFunction: constant.CtxQRCodeText,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeRenderText,
				Message: err.Error(),
				Type:    constant.ErrTypeRender,
			},
			Data: map[string]interface{}{
				constant.DataSSID: settings.SSID,
			},
		})
		return "", err
	}

	s.observe(constant.FormatText, start, nil)
	s.cache.Set(constant.TextNamespace, key, []byte(text))

	logger.CtxInfo(ctx, constant.MsgQRCodeRendered, logger.LoggerInfo{
		ContextFunction: constant.CtxQRCodeText,
		Data: map[string]interface{}{
			constant.DataSSID:  settings.SSID,
			constant.DataBytes: len(text),
		},
	})
	return text, nil
}

func (s *Service) lookup(ctx context.Context, fn, namespace, key string) ([]byte, bool) {
	data, ok := s.cache.Get(namespace, key)
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.ResultMiss).Inc()
		return nil, false
	}

	metrics.CacheLookupsTotal.WithLabelValues(metrics.ResultHit).Inc()
	logger.CtxDebug(ctx, constant.MsgQRCodeFromCache, logger.LoggerInfo{
		ContextFunction: fn,
		Data: map[string]interface{}{
			constant.DataCacheHit: true,
			constant.DataBytes:    len(data),
		},
	})
	return data, true
}

func (s *Service) observe(format string, start time.Time, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	metrics.RendersTotal.WithLabelValues(format, result).Inc()
	metrics.RenderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
}

func cacheKey(payload, logo string) string {
	return logo + "\x00" + payload
}

// logoVersion identifies the current content of the logo file so a replaced
// logo misses the cache. An empty path has an empty version.
func logoVersion(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidLogoPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInvalidLogoPath, path)
	}
	return fmt.Sprintf("@%d:%d", info.ModTime().UnixNano(), info.Size()), nil
}

func renderErrorCode(err error) (code, typ string) {
	switch {
	case errors.Is(err, ErrInvalidLogoPath):
		return constant.ErrCodeLoadLogo, constant.ErrTypeLogo
	case errors.Is(err, ErrImageDecoding):
		return constant.ErrCodeDecodeLogo, constant.ErrTypeLogo
	case errors.Is(err, ErrImageEncoding):
		return constant.ErrCodeEncodeImage, constant.ErrTypeRender
	default:
		return constant.ErrCodeRenderImage, constant.ErrTypeRender
	}
}

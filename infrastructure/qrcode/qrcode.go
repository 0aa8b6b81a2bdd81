package qrcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/prasetyowira/wifiqr/constant"
	appLogger "github.com/prasetyowira/wifiqr/infrastructure/logger"
	skip2 "github.com/skip2/go-qrcode"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// StyledRenderer renders payloads as dot-style QR codes: black circles on
// white, highest error correction.
type StyledRenderer struct {
	moduleWidth uint8
	borderWidth int
}

// NewStyledRenderer creates a renderer drawing each module moduleWidth pixels
// wide with a quiet zone of borderWidth pixels.
func NewStyledRenderer(moduleWidth uint8, borderWidth int) *StyledRenderer {
	if moduleWidth == 0 {
		moduleWidth = 1
	}
	if borderWidth < 0 {
		borderWidth = 0
	}
	return &StyledRenderer{
		moduleWidth: moduleWidth,
		borderWidth: borderWidth,
	}
}

// Render encodes payload and returns the decoded PNG image.
func (g *StyledRenderer) Render(payload string) (image.Image, error) {
	qrc, err := qrcode.NewWith(payload,
		qrcode.WithEncodingMode(qrcode.EncModeByte),
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
	)
	if err != nil {
		logFailure(constant.CtxStyledRender, constant.ErrCodeQRNew, payload, err)
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	buf := &bufferCloser{}
	w := standard.NewWithWriter(buf,
		standard.WithQRWidth(g.moduleWidth),
		standard.WithBorderWidth(g.borderWidth),
		standard.WithCircleShape(),
		standard.WithFgColor(color.Black),
		standard.WithBgColor(color.White),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err := qrc.Save(w); err != nil {
		logFailure(constant.CtxStyledRender, constant.ErrCodeQRWrite, payload, err)
		return nil, fmt.Errorf("draw qr code: %w", err)
	}

	img, err := png.Decode(&buf.Buffer)
	if err != nil {
		logFailure(constant.CtxStyledRender, constant.ErrCodeQRDecode, payload, err)
		return nil, fmt.Errorf("decode rendered qr code: %w", err)
	}
	return img, nil
}

type bufferCloser struct {
	bytes.Buffer
}

func (b *bufferCloser) Close() error { return nil }

// TextRenderer renders payloads as text using half-block characters, two
// modules per line, suitable for terminals and monospace pages.
type TextRenderer struct {
	inverse bool
}

// NewTextRenderer creates a text renderer. inverse swaps dark and light
// modules for dark-on-light displays.
func NewTextRenderer(inverse bool) *TextRenderer {
	return &TextRenderer{inverse: inverse}
}

// RenderText encodes payload at the highest error correction level.
func (t *TextRenderer) RenderText(payload string) (string, error) {
	q, err := skip2.New(payload, skip2.Highest)
	if err != nil {
		logFailure(constant.CtxTextRender, constant.ErrCodeQRNew, payload, err)
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return q.ToSmallString(t.inverse), nil
}

func logFailure(fn, code, payload string, err error) {
	appLogger.Debug(constant.MsgQRCodeRenderFailed, appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    code,
			Message: err.Error(),
			Type:    constant.ErrTypeQR,
		},
		Data: map[string]interface{}{
			constant.DataPayloadLen: len(payload),
		},
	})
}

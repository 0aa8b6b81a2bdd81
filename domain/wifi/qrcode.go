package wifi

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LogoWidth is the pixel width every embedded logo is resized to.
const LogoWidth = 100

// MaxPayloadBytes is the byte-mode capacity of a version 40 symbol at the
// highest error correction level.
const MaxPayloadBytes = 1273

// Renderer encodes a payload into a QR code image. Implementations are
// expected to use the highest error correction level so a centered logo
// stays scannable.
type Renderer interface {
	Render(payload string) (image.Image, error)
}

// QRImage renders the settings payload as a QR code. A non-empty logoPath is
// loaded, resized to LogoWidth and pasted over the center.
func (n NetworkSettings) QRImage(r Renderer, logoPath string) (image.Image, error) {
	return ComposeQRImage(r, n.Payload(), logoPath)
}

// QRImageBase64 renders the QR code and returns its PNG bytes in standard base64.
func (n NetworkSettings) QRImageBase64(r Renderer, logoPath string) (string, error) {
	img, err := n.QRImage(r, logoPath)
	if err != nil {
		return "", err
	}
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ComposeQRImage renders an arbitrary payload with an optional logo. The logo
// is loaded first so a bad path fails before any rendering happens.
func ComposeQRImage(r Renderer, payload, logoPath string) (image.Image, error) {
	var logo image.Image
	if logoPath != "" {
		src, err := LoadLogo(logoPath)
		if err != nil {
			return nil, err
		}
		logo = ResizeLogo(src)
	}

	qr, err := r.Render(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQRGeneration, err)
	}
	if logo == nil {
		return qr, nil
	}
	return PasteCentered(qr, logo), nil
}

// LoadLogo opens and decodes the image at path. The file is closed before
// LoadLogo returns.
func LoadLogo(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLogoPath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageDecoding, path, err)
	}
	return img, nil
}

// LogoSize returns the target size for a logo of the given dimensions:
// LogoWidth wide, height scaled to keep the aspect ratio.
func LogoSize(width, height int) image.Point {
	if width <= 0 || height <= 0 {
		return image.Pt(LogoWidth, 1)
	}
	h := int(math.Round(float64(height) * LogoWidth / float64(width)))
	if h < 1 {
		h = 1
	}
	return image.Pt(LogoWidth, h)
}

// ResizeLogo scales src to LogoSize using Catmull-Rom resampling.
func ResizeLogo(src image.Image) *image.RGBA {
	b := src.Bounds()
	size := LogoSize(b.Dx(), b.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// CenterOffset is where a logo of size logo lands inside an image of size qr.
// Odd differences round toward negative infinity.
func CenterOffset(qr, logo image.Point) image.Point {
	return image.Pt(floorDiv(qr.X-logo.X, 2), floorDiv(qr.Y-logo.Y, 2))
}

// PasteCentered copies qr onto a new RGBA canvas and replaces the centered
// region with logo, alpha included. Overflow is clipped.
func PasteCentered(qr, logo image.Image) *image.RGBA {
	qb := qr.Bounds()
	canvas := image.NewRGBA(qb)
	draw.Draw(canvas, qb, qr, qb.Min, draw.Src)

	lb := logo.Bounds()
	at := qb.Min.Add(CenterOffset(qb.Size(), lb.Size()))
	draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(lb.Size())}, logo, lb.Min, draw.Src)
	return canvas
}

// EncodePNG serializes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageEncoding, err)
	}
	return buf.Bytes(), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

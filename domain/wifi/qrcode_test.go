package wifi

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRenderer returns a white square and records the payload it was given.
type stubRenderer struct {
	size    int
	err     error
	calls   int
	payload string
}

func (s *stubRenderer) Render(payload string) (image.Image, error) {
	s.calls++
	s.payload = payload
	if s.err != nil {
		return nil, s.err
	}
	img := image.NewRGBA(image.Rect(0, 0, s.size, s.size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img, nil
}

func writeLogo(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

var red = color.RGBA{R: 255, A: 255}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestQRImage_NoLogo(t *testing.T) {
	// Arrange
	r := &stubRenderer{size: 300}
	settings := NetworkSettings{SSID: "MyNet", Security: SecurityWPA2, Password: "secret123"}

	// Act
	img, err := settings.QRImage(r, "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, "WIFI:S:MyNet;T:WPA2;P:secret123;;", r.payload)
}

func TestQRImage_LogoIsResizedAndCentered(t *testing.T) {
	// Arrange
	r := &stubRenderer{size: 300}
	logoPath := writeLogo(t, 200, 400, red)

	// Act
	img, err := NetworkSettings{SSID: "Guest"}.QRImage(r, logoPath)

	// Assert: logo becomes 100x200 placed at (100, 50).
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 300), img.Bounds())
	assert.True(t, sameColor(red, img.At(150, 150)))
	assert.True(t, sameColor(red, img.At(100, 50)))
	assert.True(t, sameColor(red, img.At(199, 249)))
	assert.True(t, sameColor(color.White, img.At(99, 150)))
	assert.True(t, sameColor(color.White, img.At(200, 150)))
	assert.True(t, sameColor(color.White, img.At(150, 49)))
	assert.True(t, sameColor(color.White, img.At(150, 250)))
}

func TestQRImage_MissingLogo(t *testing.T) {
	r := &stubRenderer{size: 300}

	img, err := NetworkSettings{SSID: "Guest"}.QRImage(r, filepath.Join(t.TempDir(), "nope.png"))

	assert.ErrorIs(t, err, ErrInvalidLogoPath)
	assert.Nil(t, img)
	assert.Equal(t, 0, r.calls, "nothing is rendered for a bad logo")
}

func TestQRImage_UndecodableLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))

	img, err := NetworkSettings{SSID: "Guest"}.QRImage(&stubRenderer{size: 300}, path)

	assert.ErrorIs(t, err, ErrImageDecoding)
	assert.Nil(t, img)
}

func TestQRImage_RendererError(t *testing.T) {
	cause := errors.New("data too long")

	img, err := NetworkSettings{SSID: "Guest"}.QRImage(&stubRenderer{err: cause}, "")

	assert.ErrorIs(t, err, ErrQRGeneration)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, img)
}

func TestQRImageBase64_IsPNG(t *testing.T) {
	encoded, err := NetworkSettings{SSID: "Guest", Hidden: true}.QRImageBase64(&stubRenderer{size: 64}, "")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))

	decoded, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
}

func TestQRImageBase64_PropagatesLogoError(t *testing.T) {
	encoded, err := NetworkSettings{SSID: "Guest"}.QRImageBase64(&stubRenderer{size: 64}, filepath.Join(t.TempDir(), "x.png"))

	assert.ErrorIs(t, err, ErrInvalidLogoPath)
	assert.Empty(t, encoded)
}

func TestLogoSize(t *testing.T) {
	assert.Equal(t, image.Pt(100, 200), LogoSize(200, 400))
	assert.Equal(t, image.Pt(100, 50), LogoSize(400, 200))
	assert.Equal(t, image.Pt(100, 100), LogoSize(100, 100))
	assert.Equal(t, image.Pt(100, 67), LogoSize(300, 200))
	assert.Equal(t, image.Pt(100, 1), LogoSize(10000, 1))
	assert.Equal(t, image.Pt(100, 1), LogoSize(0, 10))
}

func TestResizeLogo(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 400))

	dst := ResizeLogo(src)

	assert.Equal(t, 100, dst.Bounds().Dx())
	assert.Equal(t, 200, dst.Bounds().Dy())
}

func TestCenterOffset(t *testing.T) {
	assert.Equal(t, image.Pt(100, 50), CenterOffset(image.Pt(300, 300), image.Pt(100, 200)))
	// Odd differences round down.
	assert.Equal(t, image.Pt(50, 50), CenterOffset(image.Pt(201, 201), image.Pt(100, 100)))
	// Oversized logos get negative offsets, floored.
	assert.Equal(t, image.Pt(-5, -3), CenterOffset(image.Pt(91, 95), image.Pt(100, 100)))
}

func TestPasteCentered_OversizedLogoIsClipped(t *testing.T) {
	qr := image.NewRGBA(image.Rect(0, 0, 50, 50))
	logo := image.NewUniform(red)
	logoImg := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(logoImg, logoImg.Bounds(), logo, image.Point{}, draw.Src)

	out := PasteCentered(qr, logoImg)

	assert.Equal(t, qr.Bounds(), out.Bounds())
	assert.True(t, sameColor(red, out.At(0, 0)))
	assert.True(t, sameColor(red, out.At(49, 49)))
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(image.NewGray(image.Rect(0, 0, 4, 4)))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestEncodePNG_EmptyImage(t *testing.T) {
	_, err := EncodePNG(image.NewRGBA(image.Rect(0, 0, 0, 0)))

	assert.ErrorIs(t, err, ErrImageEncoding)
}

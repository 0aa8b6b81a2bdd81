package qrcode

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestStyledRenderer_Render(t *testing.T) {
	// Arrange
	renderer := NewStyledRenderer(10, 20)

	// Act
	img, err := renderer.Render("WIFI:S:MyNet;T:WPA2;P:secret123;;")

	// Assert
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, b.Dx(), b.Dy(), "QR code should be square")
	assert.Greater(t, b.Dx(), 21*10, "at least a version 1 symbol plus border")

	// The quiet zone is background colored.
	assert.True(t, isWhite(img.At(b.Min.X+1, b.Min.Y+1)))
}

func TestStyledRenderer_LargerModulesGiveLargerImage(t *testing.T) {
	small, err := NewStyledRenderer(4, 0).Render("WIFI:S:Guest;H:true;;")
	require.NoError(t, err)
	large, err := NewStyledRenderer(8, 0).Render("WIFI:S:Guest;H:true;;")
	require.NoError(t, err)

	assert.Greater(t, large.Bounds().Dx(), small.Bounds().Dx())
}

func TestStyledRenderer_PayloadTooLong(t *testing.T) {
	_, err := NewStyledRenderer(4, 0).Render(strings.Repeat("x", 4000))

	assert.Error(t, err)
}

func TestNewStyledRenderer_ClampsArguments(t *testing.T) {
	r := NewStyledRenderer(0, -5)

	assert.Equal(t, uint8(1), r.moduleWidth)
	assert.Equal(t, 0, r.borderWidth)
}

func TestTextRenderer_RenderText(t *testing.T) {
	text, err := NewTextRenderer(false).RenderText("WIFI:S:Guest;H:true;;")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	assert.Greater(t, len(lines), 10)
	assert.True(t, strings.ContainsAny(text, "█▀▄"))
}

func TestTextRenderer_InverseDiffers(t *testing.T) {
	normal, err := NewTextRenderer(false).RenderText("WIFI:S:Guest;;")
	require.NoError(t, err)
	inverse, err := NewTextRenderer(true).RenderText("WIFI:S:Guest;;")
	require.NoError(t, err)

	assert.NotEqual(t, normal, inverse)
}

func TestTextRenderer_PayloadTooLong(t *testing.T) {
	_, err := NewTextRenderer(false).RenderText(strings.Repeat("x", 4000))

	assert.Error(t, err)
}

package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#9370DB")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x93, 0x70, 0xDB, 255}, c)

	c, err = ParseHex("#FFF")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c)

	_, err = ParseHex("#12")
	assert.Error(t, err)
	assert.Equal(t, color.RGBA{255, 0, 255, 255}, Hex("nope"))
}

func TestHSL(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, Hue(0))
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, Hue(60))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, Hue(240))
	assert.Equal(t, Hue(30), Hue(390))
	assert.Equal(t, color.RGBA{242, 242, 242, 255}, HSL(0, 0, 0.95))
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(color.RGBA{200, 100, 50, 255}, 0.5)
	assert.Equal(t, color.RGBA{100, 50, 25, 127}, c)
}

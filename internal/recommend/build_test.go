package recommend

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/menupick/internal/domain"
)

func TestBuildTextOnly(t *testing.T) {
	req := Build(nil, "  Burger: 800 cal, Salad: 300 cal  ")

	assert.Nil(t, req.Image)
	assert.Equal(t, "Burger: 800 cal, Salad: 300 cal", req.MenuText)
	assert.True(t, strings.HasPrefix(req.Text, Prompt))
	assert.Contains(t, req.Text, "Menu text provided:\nBurger: 800 cal, Salad: 300 cal")
}

func TestBuildImageOnly(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	req := Build(&domain.Image{Data: data, MimeType: "image/jpeg"}, "")

	assert.Equal(t, Prompt, req.Text)
	assert.Empty(t, req.MenuText)
	require.NotNil(t, req.Image)
	assert.Equal(t, "image/jpeg", req.Image.MediaType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(data), req.Image.Data)
	assert.Equal(t, 4, req.Image.Bytes)
	assert.Equal(t, "data:image/jpeg;base64,/9j/4A==", req.Image.DataURL())
}

func TestBuildBothChannels(t *testing.T) {
	req := Build(&domain.Image{Data: []byte("png"), MimeType: "image/png"}, "Soup")

	require.NotNil(t, req.Image)
	assert.Equal(t, "image/png", req.Image.MediaType)
	assert.Contains(t, req.Text, Prompt)
	assert.True(t, strings.HasSuffix(req.Text, "Menu text provided:\nSoup"))
}

func TestBuildWhitespaceTextNotAppended(t *testing.T) {
	req := Build(&domain.Image{Data: []byte{1}}, " \n ")
	assert.Equal(t, Prompt, req.Text)
}

func TestNormaliseMIME(t *testing.T) {
	tests := map[string]string{
		"image/png":  "image/png",
		"image/gif":  "image/gif",
		"image/webp": "image/webp",
		"image/jpeg": "image/jpeg",
		"image/heic": "image/jpeg",
		"":           "image/jpeg",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormaliseMIME(in), "input %q", in)
	}
}

package recommend

import (
	"encoding/base64"
	"strings"

	"github.com/vbonduro/menupick/internal/domain"
)

// Build assembles the request for an already validated submission. It does
// no I/O.
func Build(image *domain.Image, text string) *Request {
	req := &Request{Text: Prompt}

	if menu := strings.TrimSpace(text); menu != "" {
		req.MenuText = menu
		req.Text = Prompt + "\n\n" + menuTextLabel + "\n" + menu
	}

	if image != nil {
		req.Image = &InlineImage{
			MediaType: NormaliseMIME(image.MimeType),
			Data:      base64.StdEncoding.EncodeToString(image.Data),
			Bytes:     len(image.Data),
		}
	}

	return req
}

// NormaliseMIME maps browser MIME types to the values model APIs accept:
// jpeg, png, gif and webp. Anything else is tagged as jpeg.
func NormaliseMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}

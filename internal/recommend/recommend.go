package recommend

import (
	"context"
)

// Prompt is the shared rubric sent by every model adapter.
const Prompt = `You are a nutrition assistant. Analyze the provided restaurant menu (from the photo, the text, or both).

1. Extract every menu item, with its description if one is given.
2. Score each item from 1 to 10 on: calorie content, protein quality, fiber,
   vitamin and mineral density, sodium, sugar, healthy fat, and overall
   nutritional balance.
3. Recommend exactly ONE item as the healthiest choice and explain why,
   referring to the scores above.
4. If applicable, suggest modifications that would make that item even
   healthier (for example dressing on the side or swapping fries for salad).`

// menuTextLabel introduces user-typed menu text appended after Prompt.
const menuTextLabel = "Menu text provided:"

// Recommender sends one assembled request to a model and returns its text.
type Recommender interface {
	Recommend(ctx context.Context, req *Request) (string, error)
}

// Settings are the sampling parameters an adapter is constructed with.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Request is a single-turn prompt: instruction text plus an optional inline
// image. MenuText is kept separately for logging and history; Text already
// contains it.
type Request struct {
	Text     string
	MenuText string
	Image    *InlineImage
}

// InlineImage is a base64 image payload with its declared media type.
type InlineImage struct {
	MediaType string
	Data      string
	Bytes     int
}

// DataURL renders the image as a data: URL, the form chat-completion APIs
// accept for inline images.
func (i *InlineImage) DataURL() string {
	return "data:" + i.MediaType + ";base64," + i.Data
}

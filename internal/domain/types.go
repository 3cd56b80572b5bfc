package domain

import "time"

// Image is an uploaded menu photo. A non-nil Image is "present" even when
// Data is empty.
type Image struct {
	Data     []byte
	MimeType string
	Filename string
}

func (i *Image) Size() int {
	return len(i.Data)
}

// Submission is the raw user input for one analyze action.
type Submission struct {
	Image    *Image
	MenuText string
}

type ValidationResult struct {
	Accepted bool
	Reason   string
}

// Recommendation is a stored history entry. Image bytes are never kept.
type Recommendation struct {
	ID         string
	MenuText   string
	ImageMIME  string
	ImageBytes int
	Backend    string
	Model      string
	Text       string
	CreatedAt  time.Time
}

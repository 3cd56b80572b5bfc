package web

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/vbonduro/menupick/internal/domain"
	"github.com/vbonduro/menupick/internal/input"
	"github.com/vbonduro/menupick/internal/recommend"
)

// maxUploadBytes caps the whole request body: the largest accepted image plus
// room for the menu text field and multipart framing. Anything bigger is
// reported as an oversized file without being read.
const maxUploadBytes = input.MaxImageBytes + 1<<20

const reasonUnsupportedImage = "Unsupported image format. Please upload a JPG, PNG, GIF or WebP photo."

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniffing algorithm (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// resultView is the template data for the result partial.
type resultView struct {
	Recommendation string
	ErrorKind      string
	ErrorMessage   string
}

func newResultView(res *recommend.Result) resultView {
	if res.OK() {
		return resultView{Recommendation: res.Text}
	}
	return resultView{ErrorKind: string(res.Err.Kind), ErrorMessage: res.Err.Message}
}

// readSubmission extracts the optional photo and menu text from the form.
// A non-nil Result means the request was rejected before validation.
func (s *Server) readSubmission(w http.ResponseWriter, r *http.Request) (domain.Submission, *recommend.Result) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return domain.Submission{}, recommend.InvalidInput(input.ReasonFileTooLarge)
		}
		s.logger.Warn("parse form failed", "error", err)
		return domain.Submission{}, recommend.InvalidInput("Could not read the submitted form. Please try again.")
	}

	sub := domain.Submission{MenuText: r.FormValue("menu_text")}

	file, header, err := r.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			s.logger.Warn("read image field failed", "error", err)
		}
		return sub, nil
	}
	defer closeWithLog(file, "upload file", s.logger)

	// Browsers send an empty, unnamed part when no file was chosen.
	if header.Filename == "" && header.Size == 0 {
		return sub, nil
	}

	img, rejected := s.readImage(file, header)
	if rejected != nil {
		return sub, rejected
	}
	sub.Image = img
	return sub, nil
}

func (s *Server) readImage(file multipart.File, header *multipart.FileHeader) (*domain.Image, *recommend.Result) {
	data, err := io.ReadAll(file)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, recommend.InvalidInput(input.ReasonFileTooLarge)
		}
		s.logger.Error("read upload failed", "error", err)
		return nil, recommend.InvalidInput("Could not read the uploaded photo. Please try again.")
	}

	img := &domain.Image{Data: data, Filename: header.Filename}

	// Oversized images are left for the validator to reject by size.
	if len(data) > input.MaxImageBytes {
		return img, nil
	}
	mimeType, ok := allowedImageMIME(data)
	if !ok {
		return nil, recommend.InvalidInput(reasonUnsupportedImage)
	}
	img.MimeType = mimeType
	return img, nil
}

// statusFor maps a failure kind to the JSON API status code.
func statusFor(kind recommend.Kind) int {
	switch kind {
	case recommend.KindInvalidInput:
		return http.StatusBadRequest
	case recommend.KindRateLimited:
		return http.StatusTooManyRequests
	case recommend.KindQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) *recommend.Result {
	sub, rejected := s.readSubmission(w, r)
	if rejected != nil {
		return rejected
	}
	return s.service.Recommend(r.Context(), sub)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w, http.StatusOK,
		map[string]any{
			"ActiveNav":      "home",
			"HistoryEnabled": s.service.HistoryEnabled(),
			"MenuText":       "",
			"Result":         nil,
		},
		"base.html", "pages/index.html", "partials/result.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

// handleRecommend serves the form post. htmx requests get only the result
// fragment, always with 200 so htmx swaps error messages in as well.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	res := s.recommend(w, r)
	view := newResultView(res)

	if r.Header.Get("HX-Request") == "true" {
		if err := s.renderPartial(w, "partials/result.html", view); err != nil {
			s.logger.Error("render partial failed", "error", err)
		}
		return
	}

	status := http.StatusOK
	if !res.OK() {
		status = statusFor(res.Err.Kind)
	}
	if err := s.renderPage(w, status,
		map[string]any{
			"ActiveNav":      "home",
			"HistoryEnabled": s.service.HistoryEnabled(),
			"MenuText":       r.FormValue("menu_text"),
			"Result":         view,
		},
		"base.html", "pages/index.html", "partials/result.html",
	); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type apiResponse struct {
	Recommendation string    `json:"recommendation,omitempty"`
	Error          *apiError `json:"error,omitempty"`
}

func (s *Server) handleAPIRecommend(w http.ResponseWriter, r *http.Request) {
	res := s.recommend(w, r)
	if res.OK() {
		s.writeJSON(w, http.StatusOK, apiResponse{Recommendation: res.Text})
		return
	}
	s.writeJSON(w, statusFor(res.Err.Kind), apiResponse{Error: &apiError{
		Kind:    string(res.Err.Kind),
		Message: res.Err.Message,
	}})
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}

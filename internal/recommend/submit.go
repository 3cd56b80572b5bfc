package recommend

import (
	"context"
	"errors"
	"strings"
)

// Result is the outcome of one submission: either Text or Err is set.
type Result struct {
	Text string
	Err  *Error
}

func (r *Result) OK() bool {
	return r.Err == nil
}

// InvalidInput wraps a validation reason as a failed Result.
func InvalidInput(reason string) *Result {
	return &Result{Err: &Error{Kind: KindInvalidInput, Message: reason}}
}

var errEmptyResponse = errors.New("model returned no content")

// Submit makes exactly one call to r and classifies the outcome. The model
// text is returned verbatim.
func Submit(ctx context.Context, r Recommender, req *Request) *Result {
	text, err := r.Recommend(ctx, req)
	if err != nil {
		kind := Classify(err)
		return &Result{Err: &Error{Kind: kind, Message: userMessage(kind, err), cause: err}}
	}
	if strings.TrimSpace(text) == "" {
		return &Result{Err: &Error{
			Kind:    KindEmptyResponse,
			Message: userMessage(KindEmptyResponse, errEmptyResponse),
			cause:   errEmptyResponse,
		}}
	}
	return &Result{Text: text}
}

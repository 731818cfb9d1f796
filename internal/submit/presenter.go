package submit

import (
	"errors"
	"strings"

	"github.com/theirongolddev/greencarbon/internal/predict"
)

const (
	// ValidationMessage is shown when neither a file nor text was supplied.
	ValidationMessage = "CSV 파일을 올리거나 텍스트를 입력해주세요."
	// FileErrorPrefix starts the message shown when the selected file cannot be read.
	FileErrorPrefix = "파일을 읽을 수 없어요: "
	// FallbackMessage is shown when a fault carries no description of its own.
	FallbackMessage = "요청 중 오류가 발생했어요."
)

// Kind classifies a failure for logging.
type Kind string

// Failure kinds.
const (
	KindValidation Kind = "validation"
	KindTransport  Kind = "transport"
	KindServer     Kind = "server"
	KindMalformed  Kind = "malformed_response"
)

// Classify maps an error returned by the prediction client to a Kind.
// Anything unrecognized counts as a transport fault.
func Classify(err error) Kind {
	var se *predict.StatusError
	switch {
	case errors.As(err, &se):
		return KindServer
	case errors.Is(err, predict.ErrMalformedResponse):
		return KindMalformed
	default:
		return KindTransport
	}
}

// Describe turns a submission error into the single message shown to the user.
// Server errors use the response body verbatim (or "HTTP <code>"); every other fault
// uses its own description, falling back to FallbackMessage when it has none.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var se *predict.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}

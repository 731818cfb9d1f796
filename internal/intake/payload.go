package intake

import (
	"bytes"
	"mime/multipart"
	"strings"

	"github.com/rotisserie/eris"
)

// Form field names expected by /predict.
const (
	FieldFile = "file"
	FieldText = "text"
	FieldDate = "date"
)

// Payload is the set of parts sent to /predict. Empty fields are omitted from the request.
type Payload struct {
	File *Blob
	Text string
	Date string
}

// Payload snapshots the state into the parts to send: the file if set,
// and the trimmed text and date when non-empty.
func (s State) Payload() Payload {
	p := Payload{
		Text: strings.TrimSpace(s.text),
		Date: strings.TrimSpace(s.date),
	}
	if s.file != nil {
		f := *s.file
		p.File = &f
	}
	return p
}

// Fields lists the names of the parts that will be written, in order.
func (p Payload) Fields() []string {
	var names []string
	if p.File != nil {
		names = append(names, FieldFile)
	}
	if p.Text != "" {
		names = append(names, FieldText)
	}
	if p.Date != "" {
		names = append(names, FieldDate)
	}
	return names
}

// Encode writes the payload as a multipart/form-data body.
// It returns the body and its Content-Type header value.
func (p Payload) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if p.File != nil {
		fw, err := w.CreateFormFile(FieldFile, p.File.Name)
		if err != nil {
			return nil, "", eris.Wrap(err, "intake: creating file part")
		}
		if _, err := fw.Write(p.File.Data); err != nil {
			return nil, "", eris.Wrap(err, "intake: writing file part")
		}
	}
	if p.Text != "" {
		if err := w.WriteField(FieldText, p.Text); err != nil {
			return nil, "", eris.Wrap(err, "intake: writing text part")
		}
	}
	if p.Date != "" {
		if err := w.WriteField(FieldDate, p.Date); err != nil {
			return nil, "", eris.Wrap(err, "intake: writing date part")
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", eris.Wrap(err, "intake: closing multipart writer")
	}
	return body, w.FormDataContentType(), nil
}

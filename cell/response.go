package cell

import (
	"encoding/json"
	"fmt"
)

// ResponseType discriminates the two envelope forms.
type ResponseType string

const (
	// ResponseSuccess marks an envelope carrying schema-valid output.
	ResponseSuccess ResponseType = "success"
	// ResponseError marks an envelope carrying a structured *Error.
	ResponseError ResponseType = "error"
)

// Response is the uniform transport envelope produced by Run. Content holds
// the validated output on success or the serialized structured error on
// failure.
type Response struct {
	Type    ResponseType    `json:"type"`
	Content json.RawMessage `json:"content"`
}

// OK reports whether the envelope carries a successful result.
func (r *Response) OK() bool { return r.Type == ResponseSuccess }

// DecodeContent unmarshals the envelope content into v.
func (r *Response) DecodeContent(v any) error {
	return json.Unmarshal(r.Content, v)
}

// Err reconstructs the structured error carried by an error envelope, or
// nil for a success envelope.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	var cellErr Error
	if err := json.Unmarshal(r.Content, &cellErr); err != nil || cellErr.Code == "" {
		return fmt.Errorf("cell error: %s", string(r.Content))
	}
	return &cellErr
}

// ParseResponse decodes a serialized envelope as produced by Run.
func ParseResponse(b []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("parse response envelope: %w", err)
	}
	if resp.Type != ResponseSuccess && resp.Type != ResponseError {
		return nil, fmt.Errorf("parse response envelope: unknown type %q", resp.Type)
	}
	return &resp, nil
}

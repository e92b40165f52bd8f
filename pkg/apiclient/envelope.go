package apiclient

import (
	"encoding/json"
	"errors"
)

// Meta is the status block of the primary API's response envelope.
type Meta struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Envelope is the `{meta, data}` wrapper the primary API puts around every
// JSON payload.
type Envelope[T any] struct {
	Meta Meta `json:"meta"`
	Data T    `json:"data"`
}

// DecodeEnvelope unwraps an enveloped response body to its data field.
func DecodeEnvelope[T any](resp *Response) (T, error) {
	var envelope Envelope[T]
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		var zero T
		return zero, errors.Join(ErrDecodeResponse, err)
	}
	return envelope.Data, nil
}

// DecodeJSON decodes a raw (non-enveloped) response body, as served by the
// public demo API.
func DecodeJSON[T any](resp *Response) (T, error) {
	var value T
	if err := json.Unmarshal(resp.Body, &value); err != nil {
		var zero T
		return zero, errors.Join(ErrDecodeResponse, err)
	}
	return value, nil
}

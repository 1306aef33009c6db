package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// handleResponse reads and classifies resp. A 2xx status yields the
// decoded payload, where an empty body counts as an empty object. A 404
// yields a [NotFoundError] and any other status an [APIError]. A body
// that is not valid JSON always yields an [APIError] carrying the raw
// status and body.
func handleResponse(resp *http.Response) (json.RawMessage, error) {
	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if !success {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: "unable to read body", Err: ErrAPI}
		}
		return nil, fmt.Errorf("reading body: %w", err)
	}

	body := raw
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	if success {
		if !json.Valid(body) {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: errBody(raw), Err: ErrAPI}
		}
		return json.RawMessage(body), nil
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: errBody(raw), Err: ErrAPI}
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{StatusCode: resp.StatusCode, Message: eb.Message}
	}

	apiErr := APIError{
		StatusCode: resp.StatusCode,
		Message:    eb.Message,
		Err:        ErrAPI,
	}
	if len(eb.Errors) > 0 {
		apiErr.Errors = make(map[string][]string, len(eb.Errors))
		for field, reasons := range eb.Errors {
			apiErr.Errors[field] = reasons
		}
	}

	return nil, &apiErr
}

// errBody returns raw as text, capped at maxErrBodySize bytes.
func errBody(raw []byte) string {
	if len(raw) > maxErrBodySize {
		raw = raw[:maxErrBodySize]
	}
	return string(raw)
}

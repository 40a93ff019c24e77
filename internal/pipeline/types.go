package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Request mirrors the body accepted by /run-leadflow-pipeline.
type Request struct {
	SearchQuery string `json:"search_query"`
	MaxLinks    int    `json:"max_links"`
}

// Lead is one business returned by the pipeline.
type Lead struct {
	Name          string `json:"name"`
	Website       string `json:"website"`
	Email         string `json:"email"`
	Summary       string `json:"summary"`
	PainPoints    string `json:"pain_points"`
	OutreachEmail string `json:"outreach_email"`
	SourceURL     string `json:"url"`
}

// UnmarshalJSON accepts any JSON type for the text fields so one odd field
// does not cost the whole response. See text.
func (l *Lead) UnmarshalJSON(data []byte) error {
	var wire struct {
		Name          text `json:"name"`
		Website       text `json:"website"`
		Email         text `json:"email"`
		Summary       text `json:"summary"`
		PainPoints    text `json:"pain_points"`
		OutreachEmail text `json:"outreach_email"`
		SourceURL     text `json:"url"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*l = Lead{
		Name:          string(wire.Name),
		Website:       string(wire.Website),
		Email:         string(wire.Email),
		Summary:       string(wire.Summary),
		PainPoints:    string(wire.PainPoints),
		OutreachEmail: string(wire.OutreachEmail),
		SourceURL:     string(wire.SourceURL),
	}
	return nil
}

// text is a lead field decoded from whatever JSON the pipeline sent: null
// is empty, arrays are joined with "; " the way the pipeline joins pain
// points, objects are kept as compact JSON and scalars as their literal.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}
	switch data[0] {
	case 'n':
		*t = ""
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
	case '[':
		var items []text
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if v := strings.TrimSpace(string(item)); v != "" {
				parts = append(parts, v)
			}
		}
		*t = text(strings.Join(parts, "; "))
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*t = text(buf.String())
	default:
		*t = text(data)
	}
	return nil
}

// HasSummary reports whether the pipeline produced a business summary.
func (l Lead) HasSummary() bool {
	return strings.TrimSpace(l.Summary) != ""
}

// HasOutreachEmail reports whether the pipeline drafted an outreach email.
func (l Lead) HasOutreachEmail() bool {
	return strings.TrimSpace(l.OutreachEmail) != ""
}

// Response is the raw outcome of a pipeline call. The body is fully read so
// it can travel across goroutines without holding the connection open.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

var (
	// ErrUnreachable wraps transport-level failures to reach the pipeline.
	ErrUnreachable = errors.New("pipeline unreachable")
	// ErrMalformedResponse is returned when the body is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response")
)

// RequestFailedError reports a non-2xx status from the pipeline.
type RequestFailedError struct {
	Status int
	Body   string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// DecodeLeads extracts the businesses list from a success body. A body that
// is valid JSON but lacks a businesses array yields an empty list. Only a
// record that is not a JSON object makes the list malformed.
func DecodeLeads(body []byte) ([]Lead, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return []Lead{}, nil
	}
	raw, ok := envelope["businesses"]
	if !ok || !isJSONArray(raw) {
		return []Lead{}, nil
	}
	var leads []Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, fmt.Errorf("%w: decode businesses: %v", ErrMalformedResponse, err)
	}
	if leads == nil {
		leads = []Lead{}
	}
	return leads, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "[")
}

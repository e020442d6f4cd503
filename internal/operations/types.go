package operations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const backendTimestampLayout = "2006-01-02 15:04:05"

// ID is an opaque operation identifier. The backend may send it as a JSON
// number or string; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts numeric and string identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Operation describes one financial operation as delivered by the backend.
// Values are immutable once decoded. Amount accepts a JSON number or string.
type Operation struct {
	ID          ID              `json:"id"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
}

// ParsedDate returns the operation date as time.Time when possible.
func (o Operation) ParsedDate() time.Time {
	return parseTime(o.Date)
}

// listEnvelope mirrors the wrapped form of the /operations payload.
type listEnvelope struct {
	Items *[]Operation `json:"items"`
}

// decodeList accepts either a bare JSON array or an {"items": [...]} object.
func decodeList(data []byte) ([]Operation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	switch trimmed[0] {
	case '[':
		var items []Operation
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return nonNil(items), nil
	case '{':
		var env listEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
		if env.Items == nil {
			return nil, fmt.Errorf("object payload has no items list")
		}
		return nonNil(*env.Items), nil
	}
	return nil, fmt.Errorf("unexpected payload starting with %q", string(trimmed[0]))
}

// nonNil keeps "empty list" distinguishable from "no result".
func nonNil(items []Operation) []Operation {
	if items == nil {
		return []Operation{}
	}
	return items
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range []string{backendTimestampLayout, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

package operations

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIDUnmarshal_AcceptsNumbersAndStrings(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 42, "b": "abc-1", "c": null}`), &payload); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if payload.A != "42" || payload.B != "abc-1" || payload.C != "" {
		t.Fatalf("ids = %q/%q/%q, want 42/abc-1/empty", payload.A, payload.B, payload.C)
	}

	var bad ID
	if err := json.Unmarshal([]byte(`true`), &bad); err == nil {
		t.Fatalf("Unmarshal(true) returned nil error, want error")
	}
}

func TestDecodeList(t *testing.T) {
	items, err := decodeList([]byte(` [] `))
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("decodeList([]) = %#v, %v; want empty non-nil", items, err)
	}

	items, err = decodeList([]byte(`{"items":[{"id":3,"status":"FAILED"}]}`))
	if err != nil || len(items) != 1 || items[0].Status != "FAILED" {
		t.Fatalf("decodeList(envelope) = %#v, %v", items, err)
	}

	items, err = decodeList([]byte(`{"items":[]}`))
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("decodeList(empty envelope) = %#v, %v; want empty non-nil", items, err)
	}

	for _, body := range []string{
		`{"error":"backend down"}`,
		`{}`,
		`{"data":[{"id":1}]}`,
		`{"items":null}`,
	} {
		if items, err := decodeList([]byte(body)); err == nil {
			t.Fatalf("decodeList(%s) = %#v, want error", body, items)
		}
	}

	if _, err := decodeList([]byte(`"nope"`)); err == nil {
		t.Fatalf("decodeList(string) returned nil error")
	}
	if _, err := decodeList(nil); err == nil {
		t.Fatalf("decodeList(nil) returned nil error")
	}
}

func TestParseTimeLayouts(t *testing.T) {
	if parseTime("2025-12-13T10:11:12Z").IsZero() {
		t.Fatalf("parseTime should parse RFC3339")
	}
	got := parseTime("2025-12-13 10:11:12")
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 13 {
		t.Fatalf("parseTime = %v, want 2025-12-13", got)
	}
	got = parseTime("2025-01-02")
	if got.Month() != time.January || got.Day() != 2 {
		t.Fatalf("parseTime(date only) = %v, want 2025-01-02", got)
	}
	if !parseTime("yesterday").IsZero() {
		t.Fatalf("parseTime should return zero for unknown layouts")
	}
}

func TestOperationAmountDecoding(t *testing.T) {
	items, err := decodeList([]byte(`[
		{"id": 1, "amount": 0.1},
		{"id": 2, "amount": "1234.567"},
		{"id": 3, "amount": null},
		{"id": 4}
	]`))
	if err != nil {
		t.Fatalf("decodeList returned error: %v", err)
	}
	want := []string{"0.1", "1234.567", "0", "0"}
	for i, w := range want {
		if got := items[i].Amount.String(); got != w {
			t.Fatalf("items[%d].Amount = %s, want %s", i, got, w)
		}
	}

	if _, err := decodeList([]byte(`[{"id": 1, "amount": "lots"}]`)); err == nil {
		t.Fatalf("decodeList accepted a non-numeric amount")
	}
}

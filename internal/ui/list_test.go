package ui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/opsview/internal/operations"
	"github.com/five82/opsview/internal/status"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"Pagamento", 20, "Pagamento"},
		{"Pagamento", 6, "Pag..."},
		{"Transferência", 10, "Transfe..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.max); got != c.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
	}
}

func TestTruncate_WideRunesFitColumn(t *testing.T) {
	for _, in := range []string{"支付款项目明细", "Pagamento 🎉🎉🎉 recebido"} {
		for _, max := range []int{2, 5, 6, 9} {
			got := truncate(in, max)
			if w := ansi.StringWidth(got); w > max {
				t.Fatalf("truncate(%q, %d) = %q, width %d exceeds column", in, max, got, w)
			}
			if w := ansi.StringWidth(padRight(got, max)); w != max {
				t.Fatalf("padRight(truncate(%q, %d)) width = %d, want %d", in, max, w, max)
			}
		}
	}
	if got := truncate("支付款项目", 6); got != "支..." {
		t.Fatalf("truncate(cjk, 6) = %q, want 支...", got)
	}
}

func TestTruncateMiddle_WideRunes(t *testing.T) {
	in := "https://接口.example.com/操作/列表"
	for _, max := range []int{8, 12, 20} {
		got := truncateMiddle(in, max)
		if w := ansi.StringWidth(got); w > max {
			t.Fatalf("truncateMiddle(%q, %d) = %q, width %d", in, max, got, w)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("http://api.example.com/v1/operations", 20); got != "http:/.../operations" {
		t.Fatalf("truncateMiddle = %q", got)
	}
	if got := truncateMiddle("short", 20); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padLeft("ab", 4); got != "  ab" {
		t.Fatalf("padLeft = %q", got)
	}
	if got := padLeft("abcdef", 4); got != "abcdef" {
		t.Fatalf("padLeft overflow = %q", got)
	}
}

func TestGlyphFor(t *testing.T) {
	if got := glyphFor(status.IconCompleted); got != "✔" {
		t.Fatalf("glyphFor(completed) = %q", got)
	}
	if got := glyphFor("sparkles"); got != glyphFor(status.IconUnknown) {
		t.Fatalf("glyphFor(sparkles) = %q, want unknown glyph", got)
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "FAILED"},
		{&operations.RetrievalError{Op: "execute request", Err: timeoutErr{}}, "TIMEOUT"},
		{&operations.RetrievalError{Op: "execute request", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}}, "UNREACHABLE"},
		{&operations.RetrievalError{Op: "fetch", Err: fmt.Errorf("api /operations: returned status 500")}, "HTTP ERROR"},
		{&operations.RetrievalError{Op: "decode", Err: errors.New("bad json")}, "BAD RESPONSE"},
		{&operations.RetrievalError{Op: "build request", Err: errors.New("x")}, "FAILED"},
		{context.Canceled, "ERROR"},
	}
	for _, c := range cases {
		if got := classifyError(c.err); got != c.want {
			t.Fatalf("classifyError(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

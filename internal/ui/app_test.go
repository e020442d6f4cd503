package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/five82/opsview/internal/listing"
	"github.com/five82/opsview/internal/locale"
	"github.com/five82/opsview/internal/operations"
	"github.com/five82/opsview/internal/prefs"
)

type stubSource struct {
	mu    sync.Mutex
	items []operations.Operation
	err   error
	calls int
}

func (s *stubSource) FetchAll(context.Context) ([]operations.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.items, s.err
}

func (s *stubSource) set(items []operations.Operation, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items, s.err = items, err
}

func sampleOps() []operations.Operation {
	return []operations.Operation{
		{ID: "1", Status: "COMPLETED", Description: "Pagamento A", Amount: decimal.RequireFromString("12.5"), Date: "2025-03-07"},
		{ID: "2", Status: "PENDING", Description: "Pagamento B", Amount: decimal.NewFromInt(-3)},
		{ID: "3", Status: "XX", Description: "Transferência C"},
	}
}

type harness struct {
	model     Model
	ctrl      *listing.Controller
	prefsPath string
}

func newHarness(t *testing.T, src operations.Source, search string) *harness {
	t.Helper()
	ctrl := listing.New(src, nil)
	t.Cleanup(ctrl.Dispose)
	loc, err := locale.New("pt-BR", "BRL", "R$", nil)
	if err != nil {
		t.Fatalf("locale.New returned error: %v", err)
	}
	h := &harness{ctrl: ctrl, prefsPath: filepath.Join(t.TempDir(), "prefs.toml")}
	h.model = New(Options{
		Controller: ctrl,
		Locale:     loc,
		APIURL:     "http://127.0.0.1:8080",
		PrefsPath:  h.prefsPath,
		Search:     search,
	})
	h.send(tea.WindowSizeMsg{Width: 140, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

// settle runs cmd and feeds its messages back until the list is ready or failed.
func (h *harness) settle(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	for i := 0; i < 10; i++ {
		if cmd == nil {
			t.Fatalf("no pending command, phase = %s", h.model.view.Phase)
		}
		cmd = h.send(cmd())
		if p := h.model.view.Phase; p == listing.PhaseReady || p == listing.PhaseFailed {
			return
		}
	}
	t.Fatalf("list did not settle, phase = %s", h.model.view.Phase)
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	h.settle(t, h.model.Init())
}

func (h *harness) typeKeys(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_ViewBeforeWindowSize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q, want Loading...", got)
	}
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("Init without controller returned a command")
	}
}

func TestModel_RendersReadyRows(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "")
	h.start(t)

	view := h.model.View()
	for _, want := range []string{
		"Operations (3)",
		"3 operations",
		"Pagamento A",
		"Concluída",
		"Pendente",
		"Desconhecido",
		"R$ 12,50",
		"-R$ 3,00",
		"07/03/2025",
		"Total: R$ 9,50",
		"pt-BR",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("View missing %q:\n%s", want, view)
		}
	}
}

func TestModel_SearchNarrowsWhileTyping(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "")
	h.start(t)

	h.typeKeys("/")
	if !h.model.searching {
		t.Fatalf("search mode not entered")
	}
	h.typeKeys("pag")
	if got := len(h.model.view.Rows); got != 2 {
		t.Fatalf("rows while typing = %d, want 2", got)
	}
	if got := h.ctrl.SearchTerm(); got != "pag" {
		t.Fatalf("controller term = %q, want pag", got)
	}
	if !strings.Contains(h.model.View(), "Operations (2/3)") {
		t.Fatalf("View missing filtered title:\n%s", h.model.View())
	}
	if !strings.Contains(h.model.View(), "2 of 3 operations") {
		t.Fatalf("View missing filtered count:\n%s", h.model.View())
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.model.searching {
		t.Fatalf("enter did not leave search mode")
	}
	if got := h.ctrl.SearchTerm(); got != "pag" {
		t.Fatalf("term after enter = %q, want pag", got)
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if got := len(h.model.view.Rows); got != 3 {
		t.Fatalf("rows after esc = %d, want 3", got)
	}
	if got := h.ctrl.SearchTerm(); got != "" {
		t.Fatalf("term after esc = %q, want empty", got)
	}
}

func TestModel_NoMatchesMessage(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "")
	h.start(t)

	h.typeKeys("/zzz")
	if !strings.Contains(h.model.View(), `No operations match "zzz"`) {
		t.Fatalf("View missing no-match message:\n%s", h.model.View())
	}
}

func TestModel_QuitKeyIsTextWhileSearching(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "")
	h.start(t)

	h.typeKeys("/e")
	if got := h.ctrl.Current().Phase; got == listing.PhaseDisposed {
		t.Fatalf("typing e in search disposed the controller")
	}
	if got := h.model.searchInput.Value(); got != "e" {
		t.Fatalf("search value = %q, want e", got)
	}
}

func TestModel_InitialSearchAppliedAfterActivation(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "TRANSFERÊNCIA")
	h.start(t)

	rows := h.model.view.Rows
	if len(rows) != 1 || rows[0].Operation.ID != "3" {
		t.Fatalf("rows = %#v, want only id 3", rows)
	}
}

func TestModel_EmptyList(t *testing.T) {
	h := newHarness(t, &stubSource{items: []operations.Operation{}}, "")
	h.start(t)

	if !strings.Contains(h.model.View(), "No operations") {
		t.Fatalf("View missing empty message:\n%s", h.model.View())
	}
}

func TestModel_FailureThenRetry(t *testing.T) {
	src := &stubSource{err: &operations.RetrievalError{Op: "execute request", Err: errors.New("connection refused")}}
	h := newHarness(t, src, "")
	h.start(t)

	if h.model.view.Phase != listing.PhaseFailed {
		t.Fatalf("phase = %s, want failed", h.model.view.Phase)
	}
	view := h.model.View()
	for _, want := range []string{"Could not load operations", "connection refused", "Press r to retry"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View missing %q:\n%s", want, view)
		}
	}

	src.set(sampleOps(), nil)
	h.settle(t, h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}))
	if h.model.view.Phase != listing.PhaseReady || len(h.model.view.Rows) != 3 {
		t.Fatalf("after retry phase = %s rows = %d, want ready with 3", h.model.view.Phase, len(h.model.view.Rows))
	}
	if src.calls != 2 {
		t.Fatalf("FetchAll calls = %d, want 2", src.calls)
	}
}

func TestModel_IgnoresSupersededStream(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "")
	h.start(t)
	old := h.model.sub

	h.settle(t, h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}))
	if h.model.sub == old {
		t.Fatalf("subscription not replaced on reload")
	}

	h.send(stateMsg{sub: old, state: listing.ViewState{Phase: listing.PhaseFailed, Err: errors.New("stale")}})
	if h.model.view.Phase != listing.PhaseReady {
		t.Fatalf("stale state applied, phase = %s", h.model.view.Phase)
	}
	h.send(streamClosedMsg{sub: old})
	if h.model.sub == nil {
		t.Fatalf("closing a stale stream cleared the live subscription")
	}
}

func TestModel_Navigation(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "")
	h.start(t)

	steps := []struct {
		key  string
		want int
	}{
		{"k", 0},
		{"j", 1},
		{"G", 2},
		{"j", 2},
		{"g", 0},
	}
	for _, s := range steps {
		h.typeKeys(s.key)
		if h.model.selectedRow != s.want {
			t.Fatalf("after %q selectedRow = %d, want %d", s.key, h.model.selectedRow, s.want)
		}
	}

	h.typeKeys("G/pag")
	if h.model.selectedRow != 1 {
		t.Fatalf("selection not clamped after filtering, got %d", h.model.selectedRow)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "")
	h.start(t)

	h.typeKeys("?")
	view := h.model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") || !strings.Contains(view, "Reload") {
		t.Fatalf("help overlay not rendered:\n%s", view)
	}
	h.typeKeys("x")
	if h.model.showHelp {
		t.Fatalf("help overlay not closed")
	}
}

func TestModel_ThemeAndQuitPersistPrefs(t *testing.T) {
	h := newHarness(t, &stubSource{items: sampleOps()}, "")
	h.start(t)

	h.typeKeys("T")
	if h.model.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", h.model.theme.Name)
	}
	if got := prefs.Load(h.prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}

	h.typeKeys("/pag")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command did not produce QuitMsg")
	}
	if got := h.ctrl.Current().Phase; got != listing.PhaseDisposed {
		t.Fatalf("phase after quit = %s, want disposed", got)
	}

	saved := prefs.Load(h.prefsPath)
	if saved.LastSearch != "pag" || saved.Theme != "Kanagawa" {
		t.Fatalf("saved prefs = %+v, want theme Kanagawa and last search pag", saved)
	}
	if res := h.model.result(); res.LastSearch != "pag" {
		t.Fatalf("result = %+v, want last search pag", res)
	}
}

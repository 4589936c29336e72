package tui

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rendis/mealee/internal/config"
	"github.com/rendis/mealee/internal/engine/flow"
	"github.com/rendis/mealee/internal/engine/game"
	"github.com/rendis/mealee/internal/engine/search"
	"github.com/rendis/mealee/internal/model"
	"github.com/rendis/mealee/internal/tui/views"
)

type fakeFetcher struct {
	mu       sync.Mutex
	calls    int
	criteria search.Criteria
	limit    int

	businesses []model.Business
	err        error
}

func (f *fakeFetcher) FetchBusinesses(_ context.Context, c search.Criteria, limit int) ([]model.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.criteria = c
	f.limit = limit
	return f.businesses, f.err
}

func businesses(names ...string) []model.Business {
	out := make([]model.Business, len(names))
	for i, n := range names {
		out[i] = model.NewBusiness([]byte(`{"name":"` + n + `"}`))
	}
	return out
}

func newTestApp(f Fetcher) App {
	session := game.NewSession(rand.New(rand.NewPCG(1, 2)))
	return NewApp(config.Default(), f, session, nil)
}

func send(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return next, cmd
}

// drain runs cmd and any batched commands, collecting the messages that
// arrive quickly. Ticking commands are abandoned.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(500 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// fillForm walks the form to the play screen.
func fillForm(t *testing.T, a App) App {
	t.Helper()
	steps := []views.AdvanceMsg{
		{Assignments: []flow.Assignment{flow.Set(flow.Location, "Madrid")}},
		{Assignments: []flow.Assignment{flow.Set(flow.Term, "tacos")}},
		{Assignments: []flow.Assignment{flow.Set(flow.PriceMin, "1"), flow.Set(flow.PriceMax, "3")}},
	}
	want := []flow.Screen{flow.ScreenTerm, flow.ScreenPrice, flow.ScreenPlay}
	for i, step := range steps {
		a, _ = send(t, a, step)
		if a.Screen() != want[i] {
			t.Fatalf("after step %d screen = %s, want %s", i, a.Screen(), want[i])
		}
	}
	return a
}

func TestAppStartsOnLocation(t *testing.T) {
	a := newTestApp(&fakeFetcher{})
	if a.Screen() != flow.ScreenLocation {
		t.Fatalf("screen = %s, want location", a.Screen())
	}
}

func TestAppTypingLocationAdvances(t *testing.T) {
	a := newTestApp(&fakeFetcher{})
	a, _ = send(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  Madrid ")})
	_, cmd := send(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	adv, ok := findMsg[views.AdvanceMsg](drain(cmd))
	if !ok {
		t.Fatal("enter did not produce an AdvanceMsg")
	}
	if len(adv.Assignments) != 1 || adv.Assignments[0] != flow.Set(flow.Location, "Madrid") {
		t.Fatalf("assignments = %+v, want location=Madrid", adv.Assignments)
	}
}

func TestAppEmptyLocationStays(t *testing.T) {
	a := newTestApp(&fakeFetcher{})
	a, cmd := send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := findMsg[views.AdvanceMsg](drain(cmd)); ok {
		t.Fatal("empty location produced an AdvanceMsg")
	}
	if a.Screen() != flow.ScreenLocation {
		t.Fatalf("screen = %s, want location", a.Screen())
	}
}

func TestAppGoBackClearsOneField(t *testing.T) {
	a := fillForm(t, newTestApp(&fakeFetcher{}))

	a, _ = send(t, a, views.GoBackMsg{Field: flow.PriceMin})
	if a.Screen() != flow.ScreenPrice {
		t.Fatalf("screen = %s, want price", a.Screen())
	}
	a, _ = send(t, a, views.GoBackMsg{Field: flow.Term})
	if a.Screen() != flow.ScreenTerm {
		t.Fatalf("screen = %s, want term", a.Screen())
	}
	if got := a.form.Value(flow.Location); got != "Madrid" {
		t.Fatalf("location = %q, want Madrid", got)
	}
}

func TestAppFetchSuccessStartsRound(t *testing.T) {
	f := &fakeFetcher{businesses: businesses("A", "B", "C", "D")}
	a := fillForm(t, newTestApp(f))

	a, cmd := send(t, a, views.StartFetchMsg{Limit: 4})
	if a.Screen() != flow.ScreenLoading {
		t.Fatalf("screen = %s, want loading", a.Screen())
	}
	if !a.session.Loading() {
		t.Fatal("session not loading after StartFetchMsg")
	}

	result, ok := findMsg[fetchResultMsg](drain(cmd))
	if !ok {
		t.Fatal("no fetch result produced")
	}
	if f.calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", f.calls)
	}
	want := search.Criteria{Location: "Madrid", Term: "tacos", PriceMin: "1", PriceMax: "3"}
	if f.criteria != want || f.limit != 4 {
		t.Fatalf("fetch got %+v limit %d, want %+v limit 4", f.criteria, f.limit, want)
	}

	a, _ = send(t, a, result)
	if a.Screen() != flow.ScreenGame {
		t.Fatalf("screen = %s, want game", a.Screen())
	}
	if a.session.Loading() {
		t.Fatal("loading still set after fetch")
	}
	if a.session.State() != game.Paired {
		t.Fatalf("state = %s, want paired", a.session.State())
	}
	if a.session.Remaining() != 2 {
		t.Fatalf("remaining = %d, want 2", a.session.Remaining())
	}
	if a.Alert() != "" {
		t.Fatalf("alert = %q, want none", a.Alert())
	}
}

func TestAppFetchFailureShowsAlert(t *testing.T) {
	failures := map[string]*fakeFetcher{
		"transport":   {err: &search.TransportError{Op: "get", StatusCode: 500}},
		"no results":  {err: &search.NoResultsError{Count: 1}},
		"single pool": {businesses: businesses("A")},
	}
	for name, f := range failures {
		t.Run(name, func(t *testing.T) {
			a := fillForm(t, newTestApp(f))
			a, cmd := send(t, a, views.StartFetchMsg{Limit: 8})
			result, ok := findMsg[fetchResultMsg](drain(cmd))
			if !ok {
				t.Fatal("no fetch result produced")
			}
			a, _ = send(t, a, result)

			if a.session.Loading() {
				t.Fatal("loading still set after failed fetch")
			}
			if a.session.Started() || a.session.Remaining() != 0 {
				t.Fatal("failed fetch left a round or pool behind")
			}
			if a.Alert() != search.NoBusinessesMessage {
				t.Fatalf("alert = %q, want %q", a.Alert(), search.NoBusinessesMessage)
			}
			if a.Screen() != flow.ScreenPlay {
				t.Fatalf("screen = %s, want play", a.Screen())
			}
			if !strings.Contains(a.View(), "No businesses found") {
				t.Fatal("alert not rendered")
			}
		})
	}
}

func TestAppSecondFetchRefusedWhileLoading(t *testing.T) {
	f := &fakeFetcher{businesses: businesses("A", "B")}
	a := fillForm(t, newTestApp(f))

	a, _ = send(t, a, views.StartFetchMsg{Limit: 4})
	_, cmd := send(t, a, views.StartFetchMsg{Limit: 4})
	if _, ok := findMsg[fetchResultMsg](drain(cmd)); ok {
		t.Fatal("second fetch was started while one was in flight")
	}
}

func TestAppPlaysRoundToChampion(t *testing.T) {
	a := fillForm(t, newTestApp(&fakeFetcher{}))
	a, _ = send(t, a, views.StartFetchMsg{Limit: 4})
	a, _ = send(t, a, fetchResultMsg{businesses: businesses("A", "B", "C")})

	kept, _ := a.session.Contender(game.Challenger)

	a, _ = send(t, a, views.PickMsg{Winner: game.Challenger})
	if got, _ := a.session.Contender(game.Challenger); got.Name() != kept.Name() {
		t.Fatalf("kept contender changed: %s -> %s", kept.Name(), got.Name())
	}
	if a.session.State() != game.Paired || a.session.Remaining() != 0 {
		t.Fatalf("state = %s remaining %d, want paired with empty pool", a.session.State(), a.session.Remaining())
	}

	a, _ = send(t, a, views.PickMsg{Winner: game.Challenger})
	champ, ok := a.session.Champion()
	if !ok || champ.Name() != kept.Name() {
		t.Fatalf("champion = %v %v, want %s", champ.Name(), ok, kept.Name())
	}
	if !strings.Contains(a.View(), "Your winner") {
		t.Fatal("champion panel not rendered")
	}

	a, _ = send(t, a, views.DismissMsg{})
	if a.session.State() != game.RoundOver {
		t.Fatalf("state = %s, want round over", a.session.State())
	}
	if a.Screen() != flow.ScreenGame {
		t.Fatalf("screen = %s, want game", a.Screen())
	}

	a, _ = send(t, a, views.ResetMsg{})
	if a.Screen() != flow.ScreenLocation {
		t.Fatalf("screen = %s, want location", a.Screen())
	}
	if a.session.State() != game.Idle {
		t.Fatalf("state = %s, want idle", a.session.State())
	}
}

func TestAppGameKeysProducePicks(t *testing.T) {
	a := fillForm(t, newTestApp(&fakeFetcher{}))
	a, _ = send(t, a, views.StartFetchMsg{Limit: 4})
	a, _ = send(t, a, fetchResultMsg{businesses: businesses("A", "B", "C", "D")})

	cases := map[string]game.Slot{
		"left":  game.Challenger,
		"right": game.Defender,
	}
	keys := map[string]tea.KeyMsg{
		"left":  {Type: tea.KeyLeft},
		"right": {Type: tea.KeyRight},
	}
	for name, want := range cases {
		_, cmd := send(t, a, keys[name])
		pick, ok := findMsg[views.PickMsg](drain(cmd))
		if !ok {
			t.Fatalf("%s: no PickMsg", name)
		}
		if pick.Winner != want {
			t.Fatalf("%s: winner = %s, want %s", name, pick.Winner, want)
		}
	}
}

func TestAppCtrlCQuits(t *testing.T) {
	a := newTestApp(&fakeFetcher{})
	_, cmd := send(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := findMsg[tea.QuitMsg](drain(cmd)); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}

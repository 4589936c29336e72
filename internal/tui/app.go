package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/rendis/mealee/internal/config"
	"github.com/rendis/mealee/internal/engine/flow"
	"github.com/rendis/mealee/internal/engine/game"
	"github.com/rendis/mealee/internal/engine/search"
	"github.com/rendis/mealee/internal/model"
	"github.com/rendis/mealee/internal/tui/styles"
	"github.com/rendis/mealee/internal/tui/views"
)

// Fetcher retrieves a pool of businesses. *search.Client implements it.
type Fetcher interface {
	FetchBusinesses(ctx context.Context, criteria search.Criteria, limit int) ([]model.Business, error)
}

type fetchResultMsg struct {
	businesses []model.Business
	err        error
}

// App is the root bubbletea model. The form and the session are pointers so
// every copy bubbletea makes of App shares them.
type App struct {
	fetcher Fetcher
	form    *flow.Form
	session *game.Session
	log     logrus.FieldLogger
	cfg     config.Config

	screen flow.Screen
	alert  string
	width  int
	height int

	location views.TextStepModel
	term     views.TextStepModel
	price    views.PriceModel
	play     views.PlayModel
	loading  views.LoadingModel
	game     views.GameModel
}

func NewApp(cfg config.Config, fetcher Fetcher, session *game.Session, log logrus.FieldLogger) App {
	if session == nil {
		session = game.NewSession(nil)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	a := App{
		fetcher: fetcher,
		form:    &flow.Form{},
		session: session,
		log:     log,
		cfg:     cfg,
	}
	a.screen = a.resolve()
	a.enter(a.screen)
	return a
}

// Screen is the screen currently displayed.
func (a App) Screen() flow.Screen { return a.screen }

// Alert is the pending user-visible message, empty when none.
func (a App) Alert() string { return a.alert }

func (a App) Init() tea.Cmd {
	return a.initScreen()
}

func (a App) resolve() flow.Screen {
	return flow.Resolve(flow.Status{
		Form:    a.form,
		Loading: a.session.Loading(),
		Started: a.session.Started(),
		Paired:  a.session.State() == game.Paired,
	})
}

// enter builds a fresh view for screen.
func (a *App) enter(screen flow.Screen) {
	switch screen {
	case flow.ScreenLocation:
		a.location = views.NewLocationStep()
	case flow.ScreenTerm:
		a.term = views.NewTermStep()
	case flow.ScreenPrice:
		a.price = views.NewPriceModel()
	case flow.ScreenPlay:
		a.play = views.NewPlayModel(a.form.Criteria(), config.PoolSizes, a.cfg.Limit)
	case flow.ScreenLoading:
		a.loading = views.NewLoadingModel(a.form.Criteria(), a.cfg.Limit)
	case flow.ScreenGame:
		a.game = views.NewGameModel(a.session)
	}
}

func (a App) initScreen() tea.Cmd {
	switch a.screen {
	case flow.ScreenLocation:
		return a.location.Init()
	case flow.ScreenTerm:
		return a.term.Init()
	case flow.ScreenLoading:
		return a.loading.Init()
	case flow.ScreenGame:
		return tea.Batch(a.game.Init(), a.sizeCmd())
	}
	return nil
}

// refresh re-resolves the screen after a state change and swaps the view
// when it differs.
func (a App) refresh(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	next := a.resolve()
	if next != a.screen {
		a.log.WithFields(logrus.Fields{"from": a.screen.String(), "to": next.String()}).Trace("screen change")
		a.screen = next
		a.enter(next)
		cmds = append(cmds, a.initScreen())
	}
	return a, tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.alert != "" {
			a.alert = ""
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.AdvanceMsg:
		if err := a.form.Advance(msg.Assignments...); err != nil {
			a.log.WithError(err).Warn("form advance rejected")
			return a, nil
		}
		return a.refresh()

	case views.GoBackMsg:
		if err := a.form.GoBack(msg.Field); err != nil {
			a.log.WithError(err).Warn("form go back rejected")
			return a, nil
		}
		return a.refresh()

	case views.StartFetchMsg:
		return a.startFetch(msg.Limit)

	case fetchResultMsg:
		return a.completeFetch(msg)

	case views.PickMsg:
		if err := a.session.Eliminate(msg.Winner.Opponent()); err != nil {
			a.log.WithError(err).Warn("pick ignored")
			return a, nil
		}
		a.log.WithFields(logrus.Fields{
			"round":     a.session.RoundID(),
			"kept":      msg.Winner.String(),
			"remaining": a.session.Remaining(),
		}).Debug("contender eliminated")
		return a.refresh()

	case views.DismissMsg:
		a.dismissChampion()
		return a.refresh()

	case views.ResetMsg:
		a.log.WithField("round", a.session.RoundID()).Info("reset")
		a.session.Reset()
		a.form.Reset()
		a.alert = ""
		return a.refresh()
	}

	return a.updateScreen(msg)
}

func (a App) startFetch(limit int) (tea.Model, tea.Cmd) {
	criteria := a.form.Criteria()
	if err := criteria.Validate(); err != nil {
		a.log.WithError(err).Warn("fetch refused")
		return a, nil
	}
	if err := a.session.BeginFetch(); err != nil {
		a.log.WithError(err).Debug("fetch refused")
		return a, nil
	}
	if limit > 0 {
		a.cfg.Limit = limit
	}
	a.alert = ""

	a.log.WithFields(logrus.Fields{
		"location": criteria.Location,
		"term":     criteria.Term,
		"price":    criteria.Price(),
		"limit":    a.cfg.Limit,
	}).Info("fetching businesses")

	fetcher := a.fetcher
	n := a.cfg.Limit
	fetch := func() tea.Msg {
		if fetcher == nil {
			return fetchResultMsg{err: errors.New("no search client configured")}
		}
		businesses, err := fetcher.FetchBusinesses(context.Background(), criteria, n)
		return fetchResultMsg{businesses: businesses, err: err}
	}
	return a.refresh(fetch)
}

func (a App) completeFetch(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	if err := a.session.CompleteFetch(msg.businesses, msg.err); err != nil {
		a.log.WithError(err).Warn("no round started")
		a.alert = search.NoBusinessesMessage
		return a.refresh()
	}
	a.log.WithFields(logrus.Fields{
		"round": a.session.RoundID(),
		"pool":  len(msg.businesses),
	}).Info("round started")
	return a.refresh()
}

// dismissChampion eliminates the last contender, which ends the round.
func (a *App) dismissChampion() {
	for _, slot := range []game.Slot{game.Challenger, game.Defender} {
		if _, ok := a.session.Contender(slot); ok {
			if err := a.session.Eliminate(slot); err != nil {
				a.log.WithError(err).Warn("dismiss ignored")
			}
			return
		}
	}
}

func (a App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var m tea.Model
	switch a.screen {
	case flow.ScreenLocation:
		m, cmd = a.location.Update(msg)
		a.location = m.(views.TextStepModel)
	case flow.ScreenTerm:
		m, cmd = a.term.Update(msg)
		a.term = m.(views.TextStepModel)
	case flow.ScreenPrice:
		m, cmd = a.price.Update(msg)
		a.price = m.(views.PriceModel)
	case flow.ScreenPlay:
		m, cmd = a.play.Update(msg)
		a.play = m.(views.PlayModel)
	case flow.ScreenLoading:
		m, cmd = a.loading.Update(msg)
		a.loading = m.(views.LoadingModel)
	case flow.ScreenGame:
		m, cmd = a.game.Update(msg)
		a.game = m.(views.GameModel)
	}
	return a, cmd
}

func (a App) View() string {
	var content string
	switch a.screen {
	case flow.ScreenLocation:
		content = a.location.View()
	case flow.ScreenTerm:
		content = a.term.View()
	case flow.ScreenPrice:
		content = a.price.View()
	case flow.ScreenPlay:
		content = a.play.View()
	case flow.ScreenLoading:
		content = a.loading.View()
	case flow.ScreenGame:
		content = a.game.View()
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("mealee"))
	b.WriteString("\n\n")
	if a.alert != "" {
		b.WriteString(styles.ErrorText.Render(a.alert))
		b.WriteString("\n\n")
	}
	b.WriteString(content)

	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Top,
		b.String(),
	)
}

// sizeCmd sends a WindowSizeMsg so newly created views get the current terminal size.
func (a App) sizeCmd() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(cfg config.Config, fetcher Fetcher, log logrus.FieldLogger) error {
	p := tea.NewProgram(NewApp(cfg, fetcher, nil, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

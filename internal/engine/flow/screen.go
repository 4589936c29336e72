package flow

// Screen is what the client shows.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLocation
	ScreenTerm
	ScreenPrice
	ScreenPlay
	ScreenGame
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenLocation:
		return "location"
	case ScreenTerm:
		return "term"
	case ScreenPrice:
		return "price"
	case ScreenPlay:
		return "play"
	case ScreenGame:
		return "game"
	}
	return "unknown"
}

// Status is everything the screen depends on.
type Status struct {
	Form    *Form
	Loading bool
	Started bool
	// Paired is true while both contender slots are filled.
	Paired bool
}

func (s Status) inGame() bool {
	return s.Started || s.Paired
}

type rule struct {
	screen Screen
	when   func(Status) bool
}

// rules are evaluated in order and the first match wins. The order is
// loading > location > term > price > play > game and must not change: a
// status can satisfy several predicates at once.
var rules = []rule{
	{ScreenLoading, func(s Status) bool {
		return !s.inGame() && s.Loading
	}},
	{ScreenLocation, func(s Status) bool {
		return !s.inGame() && !s.Form.Has(Location)
	}},
	{ScreenTerm, func(s Status) bool {
		return !s.inGame() && !s.Form.Has(Term)
	}},
	{ScreenPrice, func(s Status) bool {
		return !s.inGame() && (!s.Form.Has(PriceMin) || !s.Form.Has(PriceMax))
	}},
	{ScreenPlay, func(s Status) bool {
		return !s.inGame()
	}},
	{ScreenGame, func(Status) bool {
		return true
	}},
}

// Resolve picks the screen for a status.
func Resolve(s Status) Screen {
	if s.Form == nil {
		s.Form = &Form{}
	}
	for _, r := range rules {
		if r.when(s) {
			return r.screen
		}
	}
	return ScreenGame
}

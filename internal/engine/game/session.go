package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/rendis/mealee/internal/model"
)

// Slot names one of the two contender positions.
type Slot int

const (
	Challenger Slot = iota
	Defender
)

func (s Slot) String() string {
	switch s {
	case Challenger:
		return "challenger"
	case Defender:
		return "defender"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// Opponent is the other slot.
func (s Slot) Opponent() Slot {
	if s == Challenger {
		return Defender
	}
	return Challenger
}

func (s Slot) valid() bool {
	return s == Challenger || s == Defender
}

// State is derived from the session fields, never stored.
type State int

const (
	Idle State = iota
	Loading
	Paired
	RoundOver
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Paired:
		return "paired"
	case RoundOver:
		return "round over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	ErrFetchInFlight   = errors.New("a fetch is already in progress")
	ErrRoundInProgress = errors.New("a round is already in progress")
	ErrNoRound         = errors.New("no round in progress")
	ErrSlotEmpty       = errors.New("contender slot is empty")
	ErrUnknownSlot     = errors.New("unknown contender slot")
)

// InsufficientPoolError is returned when a pairing needs two businesses and
// the pool has fewer.
type InsufficientPoolError struct {
	Size int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("pool has %d businesses, a matchup needs 2", e.Size)
}

// Session is the whole game state: the pool, the two contenders and the
// started/loading flags. It is owned by one caller and not safe for
// concurrent use.
type Session struct {
	pool    []model.Business
	slots   [2]*model.Business
	started bool
	loading bool

	rng        *rand.Rand
	roundID    string
	picks      int
	eliminated []model.Business
}

// NewSession returns an idle session. A nil rng gets a randomly seeded one.
func NewSession(rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Session{rng: rng}
}

// State reports where the session is in its lifecycle.
func (s *Session) State() State {
	switch {
	case s.loading:
		return Loading
	case !s.started:
		return Idle
	case s.slots[Challenger] == nil && s.slots[Defender] == nil:
		return RoundOver
	default:
		return Paired
	}
}

// BeginFetch marks a fetch as in flight. Only one fetch may be in flight and
// none may start during a round.
func (s *Session) BeginFetch() error {
	if s.loading {
		return ErrFetchInFlight
	}
	if s.started {
		return ErrRoundInProgress
	}
	s.loading = true
	return nil
}

// CompleteFetch settles an in-flight fetch. Loading is cleared whatever the
// outcome. On fetchErr the pool stays empty and fetchErr is returned;
// otherwise the round starts from pool.
func (s *Session) CompleteFetch(pool []model.Business, fetchErr error) error {
	s.loading = false
	if fetchErr != nil {
		s.pool = nil
		return fetchErr
	}
	return s.StartRound(pool)
}

// StartRound draws two distinct businesses from pool as defender and
// challenger and keeps the rest as the session pool. With fewer than two
// businesses it returns *InsufficientPoolError and changes nothing.
func (s *Session) StartRound(pool []model.Business) error {
	if s.started {
		return ErrRoundInProgress
	}
	if len(pool) < 2 {
		return &InsufficientPoolError{Size: len(pool)}
	}

	first, second := drawPair(s.rng, len(pool))
	defender := pool[first]
	challenger := pool[second]

	s.pool = removeIndexes(pool, first, second)
	s.slots[Defender] = &defender
	s.slots[Challenger] = &challenger
	s.started = true
	s.loading = false
	s.roundID = uuid.NewString()
	s.picks = 0
	s.eliminated = nil
	return nil
}

// Eliminate discards the business in slot; its opponent stays. The slot is
// refilled from the pool when the pool has anything left, otherwise it
// becomes empty. Emptying both slots ends the round.
func (s *Session) Eliminate(slot Slot) error {
	if !slot.valid() {
		return ErrUnknownSlot
	}
	if s.State() != Paired {
		return ErrNoRound
	}
	loser := s.slots[slot]
	if loser == nil {
		return ErrSlotEmpty
	}

	s.eliminated = append(s.eliminated, *loser)
	s.picks++

	if len(s.pool) == 0 {
		s.slots[slot] = nil
		return nil
	}

	i := s.rng.IntN(len(s.pool))
	next := s.pool[i]
	s.pool = removeIndexes(s.pool, i)
	s.slots[slot] = &next
	return nil
}

// Reset returns the session to idle from any state.
func (s *Session) Reset() {
	s.pool = nil
	s.slots = [2]*model.Business{}
	s.started = false
	s.loading = false
	s.roundID = ""
	s.picks = 0
	s.eliminated = nil
}

// Contender returns the business in slot, ok is false when it is empty.
func (s *Session) Contender(slot Slot) (model.Business, bool) {
	if !slot.valid() || s.slots[slot] == nil {
		return model.Business{}, false
	}
	return *s.slots[slot], true
}

// Champion is the last business standing: the pool is empty and only one
// slot is still filled.
func (s *Session) Champion() (model.Business, bool) {
	if !s.started || len(s.pool) > 0 {
		return model.Business{}, false
	}
	c, cok := s.Contender(Challenger)
	d, dok := s.Contender(Defender)
	switch {
	case cok && !dok:
		return c, true
	case dok && !cok:
		return d, true
	}
	return model.Business{}, false
}

// Pool returns a copy of the businesses not yet drawn.
func (s *Session) Pool() []model.Business {
	return append([]model.Business(nil), s.pool...)
}

func (s *Session) Remaining() int { return len(s.pool) }
func (s *Session) Started() bool  { return s.started }
func (s *Session) Loading() bool  { return s.loading }

// RoundID identifies the current round in logs. Empty when idle.
func (s *Session) RoundID() string { return s.roundID }

// Picks counts eliminations in the current round.
func (s *Session) Picks() int { return s.picks }

// Eliminated lists the discarded businesses in elimination order.
func (s *Session) Eliminated() []model.Business {
	return append([]model.Business(nil), s.eliminated...)
}

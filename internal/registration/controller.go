package registration

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultResetDelay is how long the confirmation stays up before the form
// clears itself.
const DefaultResetDelay = 2 * time.Second

var (
	ErrControllerClosed = errors.New("form controller closed")
	ErrStaleForm        = errors.New("form built for a different game")
)

// Action is one input event applied through Controller.Dispatch.
type Action interface {
	isAction()
}

type SelectGame struct{ Game GameKind }

// ExpectGame fails with ErrStaleForm unless Game is the current selection.
// It changes nothing.
type ExpectGame struct{ Game GameKind }

type SetTeamName struct{ Value string }

type SetPlayerName struct {
	Index int
	Value string
}

type SetReserveName struct {
	Index int
	Value string
}

type SetStaff struct {
	Field StaffField
	Value string
}

type Submit struct{}

func (SelectGame) isAction()     {}
func (ExpectGame) isAction()     {}
func (SetTeamName) isAction()    {}
func (SetPlayerName) isAction()  {}
func (SetReserveName) isAction() {}
func (SetStaff) isAction()       {}
func (Submit) isAction()         {}

// Result carries the outcome of a dispatched action. Registration is set
// only when a Submit was accepted.
type Result struct {
	Registration *TeamRegistration
}

type Option func(*Controller)

func WithResetDelay(delay time.Duration) Option {
	return func(c *Controller) {
		if delay > 0 {
			c.delay = delay
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithResetHook registers fn to run after every delayed reset, outside the
// controller lock, with a copy of the cleared state.
func WithResetHook(fn func(FormState)) Option {
	return func(c *Controller) {
		c.onReset = fn
	}
}

// Controller owns one form session. All mutations go through Dispatch.
type Controller struct {
	mu         sync.Mutex
	state      FormState
	delay      time.Duration
	now        func() time.Time
	onReset    func(FormState)
	timer      *time.Timer
	generation uint64
	closed     bool
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		state: newFormState(DefaultGame),
		delay: DefaultResetDelay,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Dispatch(action Action) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Result{}, ErrControllerClosed
	}
	return c.applyLocked(action)
}

// Apply runs actions in order under one lock, so a pending reset cannot
// land between them. If an edit fails, the edits before it are rolled
// back. A rejected Submit keeps them, and nothing is rolled back past an
// accepted one.
func (c *Controller) Apply(actions ...Action) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Result{}, ErrControllerClosed
	}

	before := c.state.clone()
	var result Result
	for _, action := range actions {
		_, isSubmit := action.(Submit)
		res, err := c.applyLocked(action)
		if err != nil {
			if !isSubmit {
				c.state = before
			}
			return Result{}, err
		}
		if isSubmit {
			before = c.state.clone()
		}
		result = res
	}
	return result, nil
}

func (c *Controller) applyLocked(action Action) (Result, error) {
	switch a := action.(type) {
	case SelectGame:
		if !a.Game.Valid() {
			return Result{}, fmt.Errorf("select %q: %w", a.Game, ErrUnknownGame)
		}
		c.state.Game = a.Game
		c.state.resetSlots()
	case ExpectGame:
		if a.Game != c.state.Game {
			return Result{}, fmt.Errorf("expected %s, selected %s: %w", a.Game, c.state.Game, ErrStaleForm)
		}
	case SetTeamName:
		c.state.TeamName = a.Value
	case SetPlayerName:
		if a.Index < 0 || a.Index >= len(c.state.Players) {
			return Result{}, fmt.Errorf("player %d: %w", a.Index, ErrSlotOutOfRange)
		}
		c.state.Players[a.Index].Name = a.Value
	case SetReserveName:
		if a.Index < 0 || a.Index >= len(c.state.Reserves) {
			return Result{}, fmt.Errorf("reserve %d: %w", a.Index, ErrSlotOutOfRange)
		}
		c.state.Reserves[a.Index].Name = a.Value
	case SetStaff:
		if !c.state.setStaff(a.Field, a.Value) {
			return Result{}, ErrUnknownStaffField
		}
	case Submit:
		return c.submit()
	default:
		return Result{}, fmt.Errorf("unsupported action %T", action)
	}
	return Result{}, nil
}

func (c *Controller) SelectGame(game GameKind) error {
	_, err := c.Dispatch(SelectGame{Game: game})
	return err
}

func (c *Controller) SetTeamName(value string) error {
	_, err := c.Dispatch(SetTeamName{Value: value})
	return err
}

func (c *Controller) SetPlayerName(index int, value string) error {
	_, err := c.Dispatch(SetPlayerName{Index: index, Value: value})
	return err
}

func (c *Controller) SetReserveName(index int, value string) error {
	_, err := c.Dispatch(SetReserveName{Index: index, Value: value})
	return err
}

func (c *Controller) SetManager(value string) error {
	_, err := c.Dispatch(SetStaff{Field: StaffManager, Value: value})
	return err
}

func (c *Controller) SetTeamLeader(value string) error {
	_, err := c.Dispatch(SetStaff{Field: StaffTeamLeader, Value: value})
	return err
}

func (c *Controller) SetCoach(value string) error {
	_, err := c.Dispatch(SetStaff{Field: StaffCoach, Value: value})
	return err
}

// Submit validates the current form and, on success, appends the record and
// arms the delayed reset.
func (c *Controller) Submit() (TeamRegistration, error) {
	result, err := c.Dispatch(Submit{})
	if err != nil {
		return TeamRegistration{}, err
	}
	return *result.Registration, nil
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller) Registrations() []TeamRegistration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneRegistrations(c.state.Registrations)
}

// Close cancels a pending reset. Further dispatches fail.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelResetLocked()
}

func (c *Controller) submit() (Result, error) {
	if err := validate(&c.state); err != nil {
		return Result{}, err
	}
	record := c.buildRegistration()
	c.state.Registrations = append(c.state.Registrations, record)
	c.state.Submitted = true
	c.scheduleResetLocked()

	out := record.clone()
	return Result{Registration: &out}, nil
}

func (c *Controller) buildRegistration() TeamRegistration {
	return TeamRegistration{
		Seq:         len(c.state.Registrations) + 1,
		Game:        c.state.Game,
		TeamName:    normalizeName(c.state.TeamName),
		Players:     filledPlayers(c.state.Players),
		Reserves:    filledPlayers(c.state.Reserves),
		Manager:     optionalName(c.state.Manager),
		TeamLeader:  optionalName(c.state.TeamLeader),
		Coach:       optionalName(c.state.Coach),
		SubmittedAt: c.now(),
	}
}

func (c *Controller) scheduleResetLocked() {
	c.cancelResetLocked()
	c.generation++
	generation := c.generation
	c.state.Pending = true
	c.timer = time.AfterFunc(c.delay, func() {
		c.applyReset(generation)
	})
}

func (c *Controller) cancelResetLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state.Pending = false
}

// applyReset clears the form for the game selected now, which may differ
// from the game that was submitted if the selection changed in between.
func (c *Controller) applyReset(generation uint64) {
	c.mu.Lock()
	if c.closed || generation != c.generation {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.state.TeamName = ""
	c.state.Manager = ""
	c.state.TeamLeader = ""
	c.state.Coach = ""
	c.state.resetSlots()
	c.state.Submitted = false
	c.state.Pending = false
	snapshot := c.state.clone()
	hook := c.onReset
	c.mu.Unlock()

	if hook != nil {
		hook(snapshot)
	}
}

func filledPlayers(slots []Player) []Player {
	out := make([]Player, 0, len(slots))
	for _, slot := range slots {
		if !slot.Filled() {
			continue
		}
		out = append(out, Player{
			Name: normalizeName(slot.Name),
			Role: normalizeName(slot.Role),
		})
	}
	return out
}

func optionalName(value string) *string {
	normalized := normalizeName(value)
	if normalized == "" {
		return nil
	}
	return &normalized
}

func normalizeName(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

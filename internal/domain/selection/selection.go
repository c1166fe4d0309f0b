// Package selection models the date-range picker as an explicit state machine:
// None -> Partial{From} -> Complete{From, To} -> None (on clear).
package selection

import (
	"errors"
	"fmt"
	"time"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/shared/daterange"
)

var (
	ErrDateUnavailable     = errors.New("selection: date is not selectable")
	ErrSelectionIncomplete = errors.New("selection: both dates must be chosen")
	ErrUnknownKind         = errors.New("selection: unknown state kind")
)

// Kind names a state for transport and storage.
type Kind string

const (
	KindNone     Kind = "none"
	KindPartial  Kind = "partial"
	KindComplete Kind = "complete"
)

// State is implemented by None, Partial and Complete only.
type State interface {
	Kind() Kind
	// Pick applies a date chosen by the user and returns the next state.
	Pick(date time.Time) State
	sealed()
}

type None struct{}

type Partial struct {
	From time.Time
}

// Complete is the only state a quote may be computed for.
type Complete struct {
	Range daterange.DateRange
}

func (None) Kind() Kind     { return KindNone }
func (Partial) Kind() Kind  { return KindPartial }
func (Complete) Kind() Kind { return KindComplete }

func (None) sealed()     {}
func (Partial) sealed()  {}
func (Complete) sealed() {}

func (None) Pick(date time.Time) State {
	return Partial{From: date}
}

// Pick completes the range when date is after From, otherwise restarts from date.
func (p Partial) Pick(date time.Time) State {
	if daterange.DaysBetween(p.From, date) > 0 {
		return Complete{Range: daterange.DateRange{From: p.From, To: date}}
	}
	return Partial{From: date}
}

// Pick on a complete range starts a new selection.
func (Complete) Pick(date time.Time) State {
	return Partial{From: date}
}

// NewComplete builds a complete selection from a validated range.
func NewComplete(r daterange.DateRange) (Complete, error) {
	if err := r.Validate(); err != nil {
		return Complete{}, err
	}
	return Complete{Range: r}, nil
}

// Clear drops any selection.
func Clear(State) State {
	return None{}
}

// PickInfo applies a date from a generated window, refusing unavailable ones.
// The state is returned unchanged together with the error.
func PickInfo(state State, info availability.DateInfo) (State, error) {
	if !availability.IsSelectable(info) {
		return state, ErrDateUnavailable
	}
	if state == nil {
		state = None{}
	}
	return state.Pick(info.Date), nil
}

// AsComplete returns the complete selection or ErrSelectionIncomplete.
func AsComplete(state State) (Complete, error) {
	c, ok := state.(Complete)
	if !ok {
		return Complete{}, ErrSelectionIncomplete
	}
	return c, nil
}

// Snapshot is the storable shape of a state.
type Snapshot struct {
	Kind Kind       `json:"kind" bson:"kind"`
	From *time.Time `json:"from,omitempty" bson:"from,omitempty"`
	To   *time.Time `json:"to,omitempty" bson:"to,omitempty"`
}

func ToSnapshot(state State) Snapshot {
	switch s := state.(type) {
	case Partial:
		from := s.From
		return Snapshot{Kind: KindPartial, From: &from}
	case Complete:
		from, to := s.Range.From, s.Range.To
		return Snapshot{Kind: KindComplete, From: &from, To: &to}
	default:
		return Snapshot{Kind: KindNone}
	}
}

func FromSnapshot(snap Snapshot) (State, error) {
	switch snap.Kind {
	case KindNone, "":
		return None{}, nil
	case KindPartial:
		if snap.From == nil {
			return nil, fmt.Errorf("%w: partial without start", ErrUnknownKind)
		}
		return Partial{From: *snap.From}, nil
	case KindComplete:
		if snap.From == nil || snap.To == nil {
			return nil, fmt.Errorf("%w: complete without both ends", ErrUnknownKind)
		}
		return NewComplete(daterange.DateRange{From: *snap.From, To: *snap.To})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, snap.Kind)
	}
}

package sessions

import "time"

type SelectionCompleted struct {
	SessionID  string
	ListingID  string
	From       time.Time
	To         time.Time
	Guests     int
	Nights     int
	GrandTotal int64
	Currency   string
	At         time.Time
}

func (e SelectionCompleted) EventName() string     { return "selection.completed" }
func (e SelectionCompleted) AggregateID() string   { return e.SessionID }
func (e SelectionCompleted) OccurredAt() time.Time { return e.At }

type SelectionCleared struct {
	SessionID string
	ListingID string
	At        time.Time
}

func (e SelectionCleared) EventName() string     { return "selection.cleared" }
func (e SelectionCleared) AggregateID() string   { return e.SessionID }
func (e SelectionCleared) OccurredAt() time.Time { return e.At }

package match

import "time"

type NoticeKind string

const NoticeSelectionRequired NoticeKind = "selection_required"

const SelectionRequiredMessage = "Please select both a batsman and a bowler before recording runs or wickets."

// Notice is a transient message for the scorer. It is shown until DisplayUntil.
type Notice struct {
	Kind         NoticeKind
	Message      string
	RaisedAt     time.Time
	DisplayUntil time.Time
}

func NewSelectionRequiredNotice(now time.Time, ttl time.Duration) Notice {
	return Notice{
		Kind:         NoticeSelectionRequired,
		Message:      SelectionRequiredMessage,
		RaisedAt:     now,
		DisplayUntil: now.Add(ttl),
	}
}

func (n Notice) ActiveAt(now time.Time) bool {
	return n.Kind != "" && now.Before(n.DisplayUntil)
}

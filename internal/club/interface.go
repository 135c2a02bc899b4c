package club

import "context"

// Club defines the operations on the roster, the match ledger and attendance.
// All operations run one at a time.
type Club interface {
	Register(ctx context.Context, name string, gender Gender) (Member, error)
	Remove(ctx context.Context, id string, confirm Confirmer) error
	RecordMatch(ctx context.Context, req MatchRequest) (MatchResult, error)

	Members() Roster
	Member(id string) (Member, bool)
	NameOf(id string) string
	FindByName(query string) (Member, bool)

	Matches() []MatchResult
	MatchesOn(date string) []MatchResult

	Attendance(date string) []string
	SetAttendance(ctx context.Context, date string, memberIDs []string) ([]string, error)
	ToggleAttendance(ctx context.Context, date, memberID string) ([]string, error)
	Selectable(date string, matchType MatchType) []Member

	SelectDate(date string)
	SelectedDate() string

	Snapshot() State
}

// Repository loads and saves the persisted club state.
//
// Load returns a nil collection for a blob that has never been saved, and an
// empty non-nil collection for one that was saved empty.
type Repository interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

// Confirmer gates destructive operations behind a yes/no answer.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

// AlwaysConfirm answers yes to every question.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

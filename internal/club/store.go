package club

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/ace-ranking/internal/metrics"
	"golang.org/x/text/unicode/norm"
)

const dateLayout = "2006-01-02"

// Option configures a Club.
type Option func(*club)

// WithClock overrides the clock used to derive today's date.
func WithClock(now func() time.Time) Option {
	return func(c *club) { c.now = now }
}

// WithIDGenerator overrides how member and match ids are allocated.
func WithIDGenerator(newID func() string) Option {
	return func(c *club) { c.newID = newID }
}

// WithLocation sets the time zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(c *club) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithStrictMatchTypes rejects matches whose participants do not fit the match type.
func WithStrictMatchTypes(strict bool) Option {
	return func(c *club) { c.strict = strict }
}

// New loads the club state from repo. A roster that was never saved is
// replaced by the seed roster.
func New(ctx context.Context, repo Repository, metrics metrics.Metrics, opts ...Option) (Club, error) {
	c := &club{
		repo:    repo,
		metrics: metrics,
		now:     time.Now,
		newID:   uuid.NewString,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}

	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load club state: %w", err)
	}
	if state.Members == nil {
		log.Info("No stored roster found, starting from the seed roster")
		state.Members = SeedRoster()
	}
	c.members = cloneMembers(state.Members)
	c.matches = cloneMatches(state.Matches)
	c.attendance = cloneAttendance(state.Attendance)

	c.metrics.SetRosterSize(len(c.members))
	log.Info("Club loaded", "members", len(c.members), "matches", len(c.matches), "attendance_days", len(c.attendance))
	return c, nil
}

// Register adds a new member with zeroed totals.
func (c *club) Register(ctx context.Context, name string, gender Gender) (Member, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return Member{}, ErrEmptyName
	}
	if !gender.Valid() {
		return Member{}, ErrInvalidGender
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	member := Member{ID: c.newID(), Name: name, Gender: gender}
	c.members = append(c.members, member)

	c.metrics.IncMembersRegistered()
	c.metrics.SetRosterSize(len(c.members))
	log.Info("Registered member", "memberID", member.ID, "name", member.Name, "gender", member.Gender)

	c.persistLocked(ctx)
	return member, nil
}

// Remove deletes a member after confirmation. Ledger rows that mention the
// member are left as they are. Unknown ids are ignored.
func (c *club) Remove(ctx context.Context, id string, confirm Confirmer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(id)
	if idx < 0 {
		log.Debug("Ignoring removal of unknown member", "memberID", id)
		return nil
	}

	member := c.members[idx]
	message := fmt.Sprintf("Remove %s from the club? Their past matches stay in the ledger.", member.Name)
	if confirm == nil || !confirm.Confirm(message) {
		log.Info("Member removal declined", "memberID", id)
		return ErrDeclined
	}

	c.members = append(c.members[:idx:idx], c.members[idx+1:]...)
	for date, ids := range c.attendance {
		kept := removeID(ids, id)
		if len(kept) == 0 {
			delete(c.attendance, date)
			continue
		}
		c.attendance[date] = kept
	}

	c.metrics.IncMembersRemoved()
	c.metrics.SetRosterSize(len(c.members))
	log.Info("Removed member", "memberID", id, "name", member.Name)

	c.persistLocked(ctx)
	return nil
}

// RecordMatch prepends a result to the ledger and updates the running
// totals of every participant in the same step.
func (c *club) RecordMatch(ctx context.Context, req MatchRequest) (MatchResult, error) {
	winners := cleanIDs(req.WinnerIDs)
	losers := cleanIDs(req.LoserIDs)
	switch {
	case len(winners) == 0:
		return MatchResult{}, ErrNoWinners
	case len(losers) == 0:
		return MatchResult{}, ErrNoLosers
	case len(winners) > 2 || len(losers) > 2:
		return MatchResult{}, ErrTooManyPlayers
	}
	for _, id := range winners {
		if containsID(losers, id) {
			return MatchResult{}, fmt.Errorf("%w: %s", ErrSidesOverlap, id)
		}
	}
	score := strings.TrimSpace(req.Score)
	if score == "" {
		return MatchResult{}, ErrEmptyScore
	}
	if !req.MatchType.Valid() {
		return MatchResult{}, ErrInvalidMatchType
	}
	if req.CourtType != "" && !req.CourtType.Valid() {
		return MatchResult{}, ErrInvalidCourtType
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.strict {
		for _, id := range append(append([]string{}, winners...), losers...) {
			idx := c.indexLocked(id)
			if idx >= 0 && !req.MatchType.Eligible(c.members[idx].Gender) {
				return MatchResult{}, fmt.Errorf("%w: %s in %s", ErrIneligible, c.members[idx].Name, req.MatchType)
			}
		}
	}

	a, b := ParseScore(score)
	result := MatchResult{
		ID:        c.newID(),
		Date:      c.effectiveDateLocked(req.Date),
		WinnerIDs: winners,
		LoserIDs:  losers,
		Score:     score,
		MatchType: req.MatchType,
		CourtType: req.CourtType,
		CourtName: strings.TrimSpace(req.CourtName),
		IsDraw:    a == b,
	}

	c.matches = append([]MatchResult{result}, c.matches...)
	updated := 0
	for i := range c.members {
		if applyResult(&c.members[i], result) {
			updated++
		}
	}

	c.metrics.IncMatchesRecorded(string(result.MatchType))
	if result.IsDraw {
		c.metrics.IncDrawsRecorded()
	}
	log.Info("Recorded match", "matchID", result.ID, "date", result.Date, "score", result.Score, "draw", result.IsDraw, "members_updated", updated)

	c.persistLocked(ctx)
	return cloneMatch(result), nil
}

func (c *club) Members() Roster {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMembers(c.members)
}

func (c *club) Member(id string) (Member, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(id)
	if idx < 0 {
		return Member{}, false
	}
	return c.members[idx], true
}

// NameOf never fails: ids that are not on the roster resolve to UnknownName.
func (c *club) NameOf(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Roster(c.members).Name(id)
}

// FindByName prefers an exact case-insensitive match and otherwise returns the
// first member whose name contains query.
func (c *club) FindByName(query string) (Member, bool) {
	query = strings.ToLower(norm.NFC.String(strings.TrimSpace(query)))
	if query == "" {
		return Member{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.members {
		if strings.ToLower(m.Name) == query {
			return m, true
		}
	}
	for _, m := range c.members {
		if strings.Contains(strings.ToLower(m.Name), query) {
			return m, true
		}
	}
	return Member{}, false
}

// Matches returns the ledger, newest first.
func (c *club) Matches() []MatchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMatches(c.matches)
}

// MatchesOn returns the ledger entries for one date in ledger order.
func (c *club) MatchesOn(date string) []MatchResult {
	date = strings.TrimSpace(date)

	c.mu.Lock()
	defer c.mu.Unlock()

	daily := make([]MatchResult, 0)
	for _, m := range c.matches {
		if m.Date == date {
			daily = append(daily, cloneMatch(m))
		}
	}
	return daily
}

func (c *club) Attendance(date string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.attendance[strings.TrimSpace(date)]...)
}

// SetAttendance replaces the attendance list for date. Unknown and repeated
// ids are dropped; an empty list clears the date.
func (c *club) SetAttendance(ctx context.Context, date string, memberIDs []string) ([]string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, ErrInvalidDate
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	present := make([]string, 0, len(memberIDs))
	for _, id := range cleanIDs(memberIDs) {
		if c.indexLocked(id) < 0 {
			log.Warn("Skipping unknown member in attendance", "memberID", id, "date", date)
			continue
		}
		present = append(present, id)
	}
	if len(present) == 0 {
		delete(c.attendance, date)
	} else {
		c.attendance[date] = present
	}
	log.Info("Updated attendance", "date", date, "present", len(present))

	c.persistLocked(ctx)
	return append([]string{}, present...), nil
}

// ToggleAttendance marks a member present, or absent if they already were.
func (c *club) ToggleAttendance(ctx context.Context, date, memberID string) ([]string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, ErrInvalidDate
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexLocked(memberID) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMember, memberID)
	}
	ids := c.attendance[date]
	if containsID(ids, memberID) {
		ids = removeID(ids, memberID)
	} else {
		ids = append(append([]string{}, ids...), memberID)
	}
	if len(ids) == 0 {
		delete(c.attendance, date)
	} else {
		c.attendance[date] = ids
	}

	c.persistLocked(ctx)
	return append([]string{}, ids...), nil
}

// Selectable lists the members present on date who may play matchType, in
// roster order.
func (c *club) Selectable(date string, matchType MatchType) []Member {
	date = strings.TrimSpace(date)

	c.mu.Lock()
	defer c.mu.Unlock()

	present := c.attendance[date]
	out := make([]Member, 0, len(present))
	for _, m := range c.members {
		if containsID(present, m.ID) && matchType.Eligible(m.Gender) {
			out = append(out, m)
		}
	}
	return out
}

// SelectDate sets the session's calendar date. An empty date clears it.
func (c *club) SelectDate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedDate = strings.TrimSpace(date)
}

func (c *club) SelectedDate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedDate
}

func (c *club) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *club) snapshotLocked() State {
	return State{
		Members:    cloneMembers(c.members),
		Matches:    cloneMatches(c.matches),
		Attendance: cloneAttendance(c.attendance),
	}
}

// persistLocked writes the state after a mutation. A failed save is logged and
// counted; the in-memory change stands.
func (c *club) persistLocked(ctx context.Context) {
	if err := c.repo.Save(ctx, c.snapshotLocked()); err != nil {
		c.metrics.IncPersistFailures()
		log.Error("Failed to persist club state", "error", err)
	}
}

func (c *club) effectiveDateLocked(date string) string {
	if date = strings.TrimSpace(date); date != "" {
		return date
	}
	if c.selectedDate != "" {
		return c.selectedDate
	}
	return c.now().In(c.loc).Format(dateLayout)
}

func (c *club) indexLocked(id string) int {
	for i, m := range c.members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

func cloneMembers(members []Member) []Member {
	return append(make([]Member, 0, len(members)), members...)
}

func cloneMatch(m MatchResult) MatchResult {
	m.WinnerIDs = append([]string{}, m.WinnerIDs...)
	m.LoserIDs = append([]string{}, m.LoserIDs...)
	return m
}

func cloneMatches(matches []MatchResult) []MatchResult {
	out := make([]MatchResult, 0, len(matches))
	for _, m := range matches {
		out = append(out, cloneMatch(m))
	}
	return out
}

func cloneAttendance(a Attendance) Attendance {
	out := make(Attendance, len(a))
	for date, ids := range a {
		out[date] = append([]string{}, ids...)
	}
	return out
}

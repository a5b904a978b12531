// Package session is the only entry point renderers and editors use to
// read or mutate portfolio content. Every mutation is two-phase: the
// gateway call first, the in-memory state only after it succeeds. All
// operations return a result value instead of raising; a gateway
// failure leaves the last good merged state in place, flagged stale.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/internal/application/reconcile"
	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

// Gateway is the client-side contract of the content persistence
// service. Fetches return (nil, nil) when the store has no record yet.
type Gateway interface {
	FetchProfile(ctx context.Context) (*profile.Profile, error)
	FetchSections(ctx context.Context) ([]section.Section, error)
	UpdateProfile(ctx context.Context, patch profile.Patch) error
	UpdateSection(ctx context.Context, id string, patch section.Patch) error
	CreateSection(ctx context.Context, s section.Section) (string, error)
	DeleteSection(ctx context.Context, id string) error
	ReorderSections(ctx context.Context, orderedIDs []string) error
}

type Phase int

const (
	Unloaded Phase = iota
	Loading
	Ready
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unloaded"
	}
}

type ErrorKind string

const (
	KindShape       ErrorKind = "shape"
	KindUnavailable ErrorKind = "unavailable"
	KindNotFound    ErrorKind = "not_found"
	KindValidation  ErrorKind = "validation"
	KindInternal    ErrorKind = "internal"
)

// OpError is the single structured error value carried on results and
// on the session's error slot. Never a raw wrapped error.
type OpError struct {
	Kind    ErrorKind
	Message string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

type Result struct {
	OK  bool
	Err *OpError
}

func ok() Result {
	return Result{OK: true}
}

func fail(err *OpError) Result {
	return Result{Err: err}
}

func classify(err error) *OpError {
	switch {
	case errors.Is(err, apperror.ErrShape):
		return &OpError{Kind: KindShape, Message: err.Error()}
	case errors.Is(err, apperror.ErrNotFound):
		return &OpError{Kind: KindNotFound, Message: err.Error()}
	case errors.Is(err, apperror.ErrInvalidInput):
		return &OpError{Kind: KindValidation, Message: err.Error()}
	case errors.Is(err, apperror.ErrUnavailable):
		return &OpError{Kind: KindUnavailable, Message: err.Error()}
	default:
		return &OpError{Kind: KindUnavailable, Message: err.Error()}
	}
}

// Session owns the merged in-memory state. A nil gateway means an
// anonymous session: loads serve pure defaults and mutations are
// rejected. The mutex serializes mutations so no two interleave
// against the same state.
type Session struct {
	mu     sync.Mutex
	gw     Gateway
	engine *reconcile.Engine
	logger logger.Logger

	phase   Phase
	stale   bool
	lastErr *OpError
	state   reconcile.State
}

func New(gw Gateway, engine *reconcile.Engine, log logger.Logger) *Session {
	return &Session{
		gw:     gw,
		engine: engine,
		logger: log,
		phase:  Unloaded,
	}
}

// Load fetches remote content and reconciles it onto the defaults.
// Gateway failure is not fatal: the session becomes Ready with default
// (or previous) content and the stale flag set.
func (s *Session) Load(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = Loading
	s.stale = false
	s.lastErr = nil

	if s.gw == nil {
		s.state = s.engine.Reconcile(nil, nil)
		s.phase = Ready
		return ok()
	}

	var remoteProfile *profile.Profile
	var remoteSections []section.Section

	remoteProfile, err := s.gw.FetchProfile(ctx)
	if err != nil {
		s.logger.Warn("profile fetch failed, using baseline", zap.Error(err))
		s.stale = true
		s.lastErr = classify(err)
		remoteProfile = nil
	}

	remoteSections, err = s.gw.FetchSections(ctx)
	if err != nil {
		s.logger.Warn("sections fetch failed, using baseline", zap.Error(err))
		s.stale = true
		s.lastErr = classify(err)
		remoteSections = nil
	}

	s.state = s.engine.Reconcile(remoteProfile, remoteSections)
	s.phase = Ready
	if s.stale {
		return fail(s.lastErr)
	}
	return ok()
}

// Portfolio returns a copy of the merged state with sections sorted by
// order, ties kept in merge order.
func (s *Session) Portfolio() reconcile.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := reconcile.State{Profile: s.state.Profile}
	out.Sections = make([]section.Section, len(s.state.Sections))
	copy(out.Sections, s.state.Sections)
	section.SortStable(out.Sections)
	return out
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Stale reports whether the served state predates a failed sync.
func (s *Session) Stale() (bool, *OpError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale, s.lastErr
}

func (s *Session) requireGateway() *OpError {
	if s.gw == nil {
		return &OpError{Kind: KindValidation, Message: "session is read-only: no authenticated gateway"}
	}
	return nil
}

// UpdateProfile sends the patch to the gateway, then re-reconciles from
// the authoritative remote profile rather than trusting the optimistic
// partial. On gateway failure the state is untouched.
func (s *Session) UpdateProfile(ctx context.Context, patch profile.Patch) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireGateway(); err != nil {
		return fail(err)
	}

	s.phase = Loading
	if err := s.gw.UpdateProfile(ctx, patch); err != nil {
		return fail(s.markStale(err))
	}

	remote, err := s.gw.FetchProfile(ctx)
	if err != nil {
		s.logger.Warn("profile refetch after update failed, applying patch locally", zap.Error(err))
		patch.Apply(&s.state.Profile)
		s.markStale(err)
		s.phase = Ready
		return ok()
	}

	merged := s.engine.Reconcile(remote, nil)
	s.state.Profile = merged.Profile
	s.clearStale()
	s.phase = Ready
	return ok()
}

// UpdateSection shallow-merges the patch onto the matching in-memory
// section after the gateway accepts it. A patch touching Type or
// Content is checked as a whole merged section first, so a type change
// that arrives without content of the new shape is a shape error, not
// a silent content wipe.
func (s *Session) UpdateSection(ctx context.Context, id string, patch section.Patch) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireGateway(); err != nil {
		return fail(err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return fail(&OpError{Kind: KindNotFound, Message: fmt.Sprintf("section %q does not exist", id)})
	}

	if patch.Type != nil || patch.Content != nil {
		merged := s.state.Sections[idx]
		patch.Apply(&merged)
		if err := section.ValidateContent(id, merged.Type, merged.Content); err != nil {
			return fail(classify(err))
		}
	}

	s.phase = Loading
	if err := s.gw.UpdateSection(ctx, id, patch); err != nil {
		return fail(s.markStale(err))
	}

	patch.Apply(&s.state.Sections[idx])
	s.clearStale()
	s.phase = Ready
	return ok()
}

// AddSection appends a new section. The gateway generates the id; order
// is the current count plus one and visibility defaults to on.
func (s *Session) AddSection(ctx context.Context, title string, typ section.Type, content section.Content) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireGateway(); err != nil {
		return fail(err)
	}
	if title == "" {
		return fail(&OpError{Kind: KindValidation, Message: "section title is required"})
	}
	if !typ.Valid() {
		return fail(&OpError{Kind: KindValidation, Message: fmt.Sprintf("unknown section type %q", typ)})
	}

	draft := section.Section{
		Title:   title,
		Type:    typ,
		Order:   len(s.state.Sections) + 1,
		Visible: true,
		Content: content,
	}
	if err := section.ValidateContent(draft.ID, typ, content); err != nil {
		return fail(classify(err))
	}

	s.phase = Loading
	id, err := s.gw.CreateSection(ctx, draft)
	if err != nil {
		return fail(s.markStale(err))
	}

	draft.ID = id
	s.state.Sections = append(s.state.Sections, draft)
	s.clearStale()
	s.phase = Ready
	return ok()
}

func (s *Session) DeleteSection(ctx context.Context, id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireGateway(); err != nil {
		return fail(err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return fail(&OpError{Kind: KindNotFound, Message: fmt.Sprintf("section %q does not exist", id)})
	}

	s.phase = Loading
	if err := s.gw.DeleteSection(ctx, id); err != nil {
		return fail(s.markStale(err))
	}

	s.state.Sections = append(s.state.Sections[:idx], s.state.Sections[idx+1:]...)
	s.clearStale()
	s.phase = Ready
	return ok()
}

// ReorderSections sends the full ordered id list in one batch call, the
// one mutation where per-item requests would risk partial failure. On
// success the listed sections take orders 1..n in the given sequence;
// unlisted sections follow in their prior relative order.
func (s *Session) ReorderSections(ctx context.Context, orderedIDs []string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireGateway(); err != nil {
		return fail(err)
	}
	for _, id := range orderedIDs {
		if s.indexOf(id) < 0 {
			return fail(&OpError{Kind: KindNotFound, Message: fmt.Sprintf("section %q does not exist", id)})
		}
	}

	s.phase = Loading
	if err := s.gw.ReorderSections(ctx, orderedIDs); err != nil {
		return fail(s.markStale(err))
	}

	rank := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		rank[id] = i + 1
	}
	next := len(orderedIDs)
	sorted := make([]section.Section, len(s.state.Sections))
	copy(sorted, s.state.Sections)
	section.SortStable(sorted)
	for _, sec := range sorted {
		if _, listed := rank[sec.ID]; !listed {
			next++
			rank[sec.ID] = next
		}
	}
	for i := range s.state.Sections {
		s.state.Sections[i].Order = rank[s.state.Sections[i].ID]
	}

	s.clearStale()
	s.phase = Ready
	return ok()
}

func (s *Session) indexOf(id string) int {
	for i := range s.state.Sections {
		if s.state.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) markStale(err error) *OpError {
	s.stale = true
	s.lastErr = classify(err)
	s.phase = Ready
	s.logger.Warn("gateway call failed, serving last good state", zap.Error(err))
	return s.lastErr
}

func (s *Session) clearStale() {
	s.stale = false
	s.lastErr = nil
}

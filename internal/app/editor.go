package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"andaman_vendor/internal/domain"
)

type EditState int

const (
	StateLoading EditState = iota
	StateBlockedUnverified
	StateBlockedWrongType
	StateProfileMissing
	StateError
	StateNotFound
	StatePreparing
	StateReady
	StateSubmitting
	StateNavigated
)

func (s EditState) String() string {
	return [...]string{
		"loading", "blocked_unverified", "blocked_wrong_type", "profile_missing",
		"error", "not_found", "preparing", "ready", "submitting", "navigated",
	}[s]
}

func (s EditState) Terminal() bool {
	switch s {
	case StateBlockedUnverified, StateBlockedWrongType, StateProfileMissing,
		StateError, StateNotFound, StateNavigated:
		return true
	}
	return false
}

var (
	ErrSubmitInFlight = errors.New("submit already in progress")
	ErrNotReady       = errors.New("edit session is not ready")
)

// EditSession is one vendor editing one hotel. It owns the form state.
type EditSession struct {
	ID        string
	UserID    int64
	ServiceID int64

	api       domain.ListingsAPI
	principal domain.Principal

	mu         sync.Mutex
	state      EditState
	message    string
	form       HotelForm
	record     *domain.HotelListing
	islands    []domain.Island
	islandsErr string
	lastError  string
}

// View is a consistent copy of the session for rendering.
type View struct {
	ID         string
	ServiceID  int64
	State      EditState
	Message    string
	Form       HotelForm
	Islands    []domain.Island
	IslandsErr string
	LastError  string
}

func (s *EditSession) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:         s.ID,
		ServiceID:  s.ServiceID,
		State:      s.state,
		Message:    s.message,
		Form:       s.form,
		Islands:    append([]domain.Island(nil), s.islands...),
		IslandsErr: s.islandsErr,
		LastError:  s.lastError,
	}
}

func (s *EditSession) State() EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Populate replaces the form with one derived from h. A nil record leaves the
// session in the preparing state.
func (s *EditSession) Populate(h *domain.HotelListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = h
	if h == nil {
		s.form = HotelForm{}
		s.state = StatePreparing
		return
	}
	s.form = FormFromListing(h)
	s.state = StateReady
}

// Edit applies fn to the form while the session is ready.
func (s *EditSession) Edit(fn func(*HotelForm)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateReady:
	case StateSubmitting:
		return ErrSubmitInFlight
	default:
		return ErrNotReady
	}
	fn(&s.form)
	return nil
}

// Submit sends the form as a single update. Only one submit may be in flight;
// the session always leaves Submitting, whatever the outcome.
func (s *EditSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateReady:
	case StateSubmitting:
		s.mu.Unlock()
		return ErrSubmitInFlight
	default:
		s.mu.Unlock()
		return ErrNotReady
	}
	body, err := BuildUpdate(s.form)
	if err != nil {
		s.lastError = failureMessage(err, msgSubmitFailed)
		s.mu.Unlock()
		return err
	}
	s.state = StateSubmitting
	s.lastError = ""
	s.mu.Unlock()

	next, failure := StateReady, msgSubmitFailed
	defer func() {
		s.mu.Lock()
		s.state = next
		if next == StateReady {
			s.lastError = failure
		}
		s.mu.Unlock()
	}()

	env, err := s.api.UpdateHotel(ctx, s.principal, s.ServiceID, body)
	if err != nil {
		failure = failureMessage(err, msgSubmitFailed)
		log.Warn().Err(err).Int64("service_id", s.ServiceID).Msg("hotel update failed")
		return fmt.Errorf("update hotel %d: %w", s.ServiceID, err)
	}
	if !env.Success {
		failure = orDefault(env.Message, msgSubmitFailed)
		log.Warn().Int64("service_id", s.ServiceID).Str("message", env.Message).Msg("hotel update rejected")
		return &RejectedError{Message: failure}
	}
	next = StateNavigated
	log.Info().Int64("service_id", s.ServiceID).Int64("user_id", s.UserID).Msg("hotel updated")
	return nil
}

// RejectedError is a success:false answer to an update.
type RejectedError struct{ Message string }

func (e *RejectedError) Error() string       { return "update rejected: " + e.Message }
func (e *RejectedError) UserMessage() string { return e.Message }

type Editor struct {
	api domain.ListingsAPI
}

func NewEditor(api domain.ListingsAPI) *Editor {
	return &Editor{api: api}
}

// errGateClosed stops the islands fetch when the hotel cannot be edited.
var errGateClosed = errors.New("gate closed")

// Open runs session → profile → (islands ∥ hotel) and returns the resulting
// session. The hotel record is requested only after the profile gate passes.
func (e *Editor) Open(ctx context.Context, sess Session, serviceID int64) *EditSession {
	s := &EditSession{
		UserID:    sess.UserID,
		ServiceID: serviceID,
		api:       e.api,
		principal: sess.Principal(),
		state:     StateLoading,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env, err := e.api.ListIslands(gctx)
		s.mu.Lock()
		defer s.mu.Unlock()
		switch {
		case err != nil:
			if gctx.Err() == nil {
				log.Warn().Err(err).Msg("islands fetch failed")
			}
			s.islandsErr = failureMessage(err, "Islands could not be loaded.")
		case !env.Success:
			s.islandsErr = orDefault(env.Message, "Islands could not be loaded.")
		default:
			s.islands = env.Data
		}
		return nil
	})
	g.Go(func() error {
		outcome, msg := EvaluateProfile(e.api.GetProfile(gctx, s.principal))
		log.Debug().Int64("user_id", sess.UserID).Stringer("gate", outcome).Msg("profile gate")
		if outcome != GatePassed {
			s.block(outcome, msg)
			return errGateClosed
		}
		return e.loadHotel(gctx, s)
	})
	_ = g.Wait()
	return s
}

func (s *EditSession) block(outcome GateOutcome, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch outcome {
	case GateUnverified:
		s.state = StateBlockedUnverified
	case GateWrongType:
		s.state = StateBlockedWrongType
	case GateProfileMissing:
		s.state = StateProfileMissing
	default:
		s.state = StateError
		s.message = msg
	}
}

func (e *Editor) loadHotel(ctx context.Context, s *EditSession) error {
	env, err := e.api.GetHotel(ctx, s.principal, s.ServiceID)
	if err == nil && !env.Success {
		err = &RejectedError{Message: orDefault(env.Message, msgHotelFetchFailed)}
	}
	if err != nil {
		log.Warn().Err(err).Int64("service_id", s.ServiceID).Msg("hotel fetch failed")
		s.mu.Lock()
		s.state = StateError
		s.message = failureMessage(err, msgHotelFetchFailed)
		s.mu.Unlock()
		return errGateClosed
	}
	if env.Data == nil {
		s.mu.Lock()
		s.state = StateNotFound
		s.message = fmt.Sprintf("Hotel with ID %d not found or you do not have permission to edit it.", s.ServiceID)
		s.mu.Unlock()
		return errGateClosed
	}
	s.Populate(env.Data)
	return nil
}

package appstate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pedrohsales/comparaprecos/internal/auth"
	"github.com/pedrohsales/comparaprecos/internal/storage"
	"github.com/pedrohsales/comparaprecos/internal/telemetry"
)

// Store is the single writer of application state. Dispatches apply the
// reducer atomically; async operations only ever dispatch, they never
// touch State directly.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextSub   int
	closed    bool

	persist storage.Store
	now     func() time.Time
	newID   func() string
}

// New builds a store on its initial state. persist may be nil, in
// which case nothing survives a restart.
func New(persist storage.Store) *Store {
	return &Store{
		state:     initialState(),
		listeners: make(map[int]func(State)),
		persist:   persist,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// State returns the current snapshot. Slices inside it are replaced on
// every transition, never mutated, so the snapshot is safe to read.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener for every transition. The returned
// func unsubscribes; it is safe to call more than once.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch applies one action. After Close it is a no-op, which is what
// keeps a stale in-flight response from reviving a torn-down screen.
func (s *Store) Dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	if action.Type == ActionAddNotification {
		if n, ok := action.Payload.(Notification); ok {
			if n.ID == "" {
				n.ID = s.newID()
			}
			if n.Timestamp == "" {
				n.Timestamp = s.now().UTC().Format(time.RFC3339)
			}
			action.Payload = n
		}
	}

	s.state = reduce(s.state, action)
	state := s.state

	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	s.persistSubset(ctx, action, state)

	for _, fn := range listeners {
		fn(state)
	}
}

// Close detaches all listeners and makes further dispatches no-ops.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = make(map[int]func(State))
}

// persistSubset mirrors the persisted slice of state after the actions
// that change it. Best effort: a write failure is logged, not surfaced.
func (s *Store) persistSubset(ctx context.Context, action Action, state State) {
	if s.persist == nil {
		return
	}

	var err error
	switch action.Type {
	case ActionSetUser:
		if state.User != nil {
			err = s.persist.Set(ctx, storage.KeyUserData, state.User)
		}
	case ActionSetTheme:
		err = s.persist.Set(ctx, storage.KeyTheme, state.Theme)
	case ActionSetLanguage:
		err = s.persist.Set(ctx, storage.KeyLanguage, state.Language)
	}

	if err != nil {
		telemetry.LogWarn(ctx, "failed to persist app state",
			telemetry.LogString("action", string(action.Type)),
			telemetry.LogErr(err),
		)
	}
}

// Init hydrates state from the session store. It must complete before
// the first screen renders: IsLoading stays true until it finishes,
// success or not. Missing keys are simply absent; only a store failure
// is reported, and even then hydration runs to the end.
func (s *Store) Init(ctx context.Context) error {
	s.Dispatch(ctx, Action{Type: ActionSetLoading, Payload: true})

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if s.persist != nil {
		var user auth.User
		userFound, err := s.persist.Get(ctx, storage.KeyUserData, &user)
		record(err)

		var token string
		tokenFound, err := s.persist.Get(ctx, storage.KeyAuthToken, &token)
		record(err)

		if userFound && tokenFound && token != "" {
			s.Dispatch(ctx, Action{Type: ActionSetUser, Payload: &user})
			s.Dispatch(ctx, Action{Type: ActionSetAuthenticated, Payload: true})
		}

		var theme string
		if found, err := s.persist.Get(ctx, storage.KeyTheme, &theme); found && theme != "" {
			s.Dispatch(ctx, Action{Type: ActionSetTheme, Payload: theme})
		} else {
			record(err)
		}

		var language string
		if found, err := s.persist.Get(ctx, storage.KeyLanguage, &language); found && language != "" {
			s.Dispatch(ctx, Action{Type: ActionSetLanguage, Payload: language})
		} else {
			record(err)
		}
	}

	s.Dispatch(ctx, Action{Type: ActionSetLoading, Payload: false})
	return firstErr
}

package convert

import (
	"sync"

	"github.com/google/uuid"
)

// Session is one run of the converter from launch to termination. Its process handle lives
// only inside the runner goroutine and is never reused.
type Session struct {
	ID      uuid.UUID
	Request Request

	mu         sync.Mutex
	state      State
	err        error
	frameLines int
	done       chan struct{}
}

func newSession(req Request) *Session {
	return &Session{
		ID:      uuid.New(),
		Request: req,
		state:   Idle,
		done:    make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the failure cause once the session has failed.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// FrameLines is the number of frame lines relayed to the log so far.
func (s *Session) FrameLines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLines
}

// Done is closed after the terminal log line has been appended.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session ends and returns its failure cause, if any.
func (s *Session) Wait() error {
	<-s.done
	return s.Err()
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) countFrameLine() {
	s.mu.Lock()
	s.frameLines++
	s.mu.Unlock()
}

func (s *Session) finish(err error) {
	s.mu.Lock()
	s.err = err
	if err != nil {
		s.state = Failed
	} else {
		s.state = Completed
	}
	s.mu.Unlock()
}

package framework

import (
	"io"
	"sync"
)

// Scope owns acquired resources and releases them exactly once,
// in reverse order of acquisition.
//
//	var scope Scope
//	defer scope.Close()
//	port, err := open()
//	if err != nil {
//		return err
//	}
//	scope.Add(port)
type Scope struct {
	lock    sync.Mutex
	closers []io.Closer
	closed  bool
}

// Add takes ownership of closers. If the scope is already closed,
// the closers are released immediately.
func (s *Scope) Add(closers ...io.Closer) error {
	s.lock.Lock()
	if !s.closed {
		s.closers = append(s.closers, closers...)
		s.lock.Unlock()
		return nil
	}
	s.lock.Unlock()
	var errs AggregatedError
	for i := len(closers) - 1; i >= 0; i-- {
		errs.Add(closers[i].Close())
	}
	return errs.Aggregate()
}

// Close releases all owned resources. Subsequent calls are no-ops.
func (s *Scope) Close() error {
	s.lock.Lock()
	closers := s.closers
	s.closers, s.closed = nil, true
	s.lock.Unlock()
	var errs AggregatedError
	for i := len(closers) - 1; i >= 0; i-- {
		errs.Add(closers[i].Close())
	}
	return errs.Aggregate()
}

// Closed indicates Close has been called.
func (s *Scope) Closed() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.closed
}

package status

import (
	"sync/atomic"
)

// MaxStringLen bounds stored strings; a session uuid (36 chars) must fit
const MaxStringLen = 40

// AtomicString is a lock-free string cell, truncated to MaxStringLen
// Zero value represents the empty string
type AtomicString struct {
	ptr atomic.Pointer[string]
}

func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

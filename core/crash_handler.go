package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores the terminal, satisfied by tcell.Screen
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher
)

// SetCrashTerminal registers the screen restored by HandleCrash
func SetCrashTerminal(f Finisher) {
	crashMu.Lock()
	crashTerminal = f
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term := crashTerminal
	crashTerminal = nil
	crashMu.Unlock()

	if term != nil {
		term.Fini()
	}

	os.Stdout.Sync()

	// \r\n keeps the trace readable if raw mode survived
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mFRUIT-DROP CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

package core

import (
	"fmt"
	"sync"
)

// ErrorLog accumulates collaborator failures (GL errors, asset reload
// problems) until they are printed and cleared once per frame.
type ErrorLog struct {
	mu       sync.Mutex
	messages []string
}

func NewErrorLog() *ErrorLog {
	return &ErrorLog{}
}

func (el *ErrorLog) Add(format string, args ...interface{}) {
	el.mu.Lock()
	el.messages = append(el.messages, fmt.Sprintf(format, args...))
	el.mu.Unlock()
}

// AddError is a shorthand for errors produced by checked operations.
func (el *ErrorLog) AddError(err error) {
	if err != nil {
		el.Add("%v", err)
	}
}

func (el *ErrorLog) Len() int {
	el.mu.Lock()
	defer el.mu.Unlock()
	return len(el.messages)
}

// Messages returns a copy of the pending messages.
func (el *ErrorLog) Messages() []string {
	el.mu.Lock()
	defer el.mu.Unlock()
	return append([]string(nil), el.messages...)
}

// Print logs every pending message and reports whether there was any.
func (el *ErrorLog) Print() bool {
	msgs := el.Messages()
	for _, m := range msgs {
		LogError("%s", m)
	}
	return len(msgs) > 0
}

func (el *ErrorLog) Clear() {
	el.mu.Lock()
	el.messages = nil
	el.mu.Unlock()
}

/*
Copyright 2026 OctoAgent Authors
SPDX-License-Identifier: Apache-2.0
*/

package agent

import (
	"sync"

	"github.com/octoagent/octoagent/llm"
)

// Store holds conversation threads keyed by context id. Threads live for the
// process lifetime; nothing evicts them.
type Store struct {
	mu      sync.Mutex
	threads map[string]*Thread
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{threads: make(map[string]*Thread)}
}

// Acquire returns the thread for contextID, creating it on first use, with
// its lock held. Callers must Release when the turn ends; this serializes
// concurrent turns on the same context id so history stays append-only.
func (s *Store) Acquire(contextID string) *Thread {
	s.mu.Lock()
	th, ok := s.threads[contextID]
	if !ok {
		th = &Thread{}
		s.threads[contextID] = th
	}
	s.mu.Unlock()

	th.mu.Lock()
	return th
}

// Len returns the number of threads ever created.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.threads)
}

// Thread is one logical multi-turn dialogue: the accumulated message history
// and the last structured response. All accessors assume the thread lock is
// held via Store.Acquire.
type Thread struct {
	mu       sync.Mutex
	messages []llm.Message
	last     *Response
}

// Release unlocks the thread at the end of a turn.
func (t *Thread) Release() {
	t.mu.Unlock()
}

// Append adds messages to the history.
func (t *Thread) Append(msgs ...llm.Message) {
	t.messages = append(t.messages, msgs...)
}

// History returns a copy of the message history for handing to a model.
func (t *Thread) History() []llm.Message {
	out := make([]llm.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// SetLast records the turn's structured response.
func (t *Thread) SetLast(r *Response) {
	t.last = r
}

// Last returns the most recent structured response, or nil before the first
// completed turn.
func (t *Thread) Last() *Response {
	return t.last
}

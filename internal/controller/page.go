// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import "sync"

// Phase is a step of the fetch lifecycle.
type Phase int

// Lifecycle phases. Every load goes Idle → Loading → Success|Error → Idle.
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Status is the non-view state of a page.
type Status struct {
	Loading    bool
	Error      string
	Message    string
	Navigation *Navigation

	// Cause is the error behind Error: an API error or a local refusal
	// such as ErrNotLoggedIn.
	Cause error
}

// Page holds the view state V of a controller together with its loading
// flag and messages. Updates after Unmount are ignored.
type Page[V any] struct {
	mu        sync.RWMutex
	view      V
	status    Status
	unmounted bool
	observers []func(Phase)
}

// View returns a copy of the view state.
func (p *Page[V]) View() V {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// Status returns the loading flag, messages and pending navigation.
func (p *Page[V]) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Loading reports whether a fetch is in flight.
func (p *Page[V]) Loading() bool {
	return p.Status().Loading
}

// Unmount detaches the page. In-flight fetches complete but their results
// are discarded.
func (p *Page[V]) Unmount() {
	p.mu.Lock()
	p.unmounted = true
	p.mu.Unlock()
}

// Observe registers fn to be told about every phase change.
func (p *Page[V]) Observe(fn func(Phase)) {
	p.mu.Lock()
	p.observers = append(p.observers, fn)
	p.mu.Unlock()
}

// begin enters the loading phase and clears the previous error.
func (p *Page[V]) begin() {
	if p.update(func(_ *V, s *Status) {
		s.Loading = true
		s.Error = ""
		s.Cause = nil
	}) {
		p.emit(PhaseLoading)
	}
}

// end leaves the loading phase. Always deferred right after begin.
func (p *Page[V]) end() {
	p.mu.Lock()
	p.status.Loading = false
	p.mu.Unlock()
	p.emit(PhaseIdle)
}

// succeed applies fn to the view and reports success.
func (p *Page[V]) succeed(fn func(v *V)) {
	if p.update(func(v *V, _ *Status) { fn(v) }) {
		p.emit(PhaseSuccess)
	}
}

// fail records a user-visible error and its cause.
func (p *Page[V]) fail(cause error, msg string) {
	if p.update(func(_ *V, s *Status) {
		s.Error = msg
		s.Cause = cause
	}) {
		p.emit(PhaseError)
	}
}

// inform records a user-visible informational message.
func (p *Page[V]) inform(msg string) {
	p.update(func(_ *V, s *Status) { s.Message = msg })
}

// navigate records a pending route change.
func (p *Page[V]) navigate(nav Navigation) {
	p.update(func(_ *V, s *Status) { s.Navigation = &nav })
}

// edit applies fn to the view without changing the phase.
func (p *Page[V]) edit(fn func(v *V)) bool {
	return p.update(func(v *V, _ *Status) { fn(v) })
}

// update applies fn while mounted and reports whether it ran.
func (p *Page[V]) update(fn func(v *V, s *Status)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmounted {
		return false
	}
	fn(&p.view, &p.status)
	return true
}

func (p *Page[V]) emit(phase Phase) {
	p.mu.RLock()
	observers := append([]func(Phase){}, p.observers...)
	p.mu.RUnlock()
	for _, fn := range observers {
		fn(phase)
	}
}

// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import "time"

type handlerInfo[H any] struct {
	handler *H
	once    bool
}

// handlerList is the storage shared by every event type. Detached slots are
// left nil and reused by the next Attach so that handles remain stable.
type handlerList[H any] struct {
	handlers []handlerInfo[H]
}

func (l *handlerList[H]) attach(handler H, once bool) int {
	info := handlerInfo[H]{handler: &handler, once: once}
	for i, h := range l.handlers {
		if h.handler == nil {
			l.handlers[i] = info
			return i
		}
	}

	l.handlers = append(l.handlers, info)
	return len(l.handlers) - 1
}

func (l *handlerList[H]) detach(handle int) {
	if handle < 0 || handle >= len(l.handlers) {
		return
	}
	l.handlers[handle].handler = nil
}

func (l *handlerList[H]) len() (n int) {
	for _, h := range l.handlers {
		if h.handler != nil {
			n++
		}
	}
	return n
}

// each invokes fn for every attached handler. Handlers attached while each is
// running are not invoked until the next publish, even if they reuse the slot
// of a handler detached during the same publish.
func (l *handlerList[H]) each(fn func(H)) {
	attached := make([]*H, len(l.handlers))
	for i, h := range l.handlers {
		attached[i] = h.handler
	}

	for i, handler := range attached {
		if handler == nil || i >= len(l.handlers) || l.handlers[i].handler != handler {
			continue
		}
		if l.handlers[i].once {
			l.detach(i)
		}
		fn(*handler)
	}
}

// EventHandler is the handler type used by events without arguments.
type EventHandler func()

// Event is a multicast event without arguments.
type Event struct {
	list handlerList[EventHandler]
}

// Attach registers handler and returns a handle for use with Detach.
func (e *Event) Attach(handler EventHandler) int {
	return e.list.attach(handler, false)
}

// Once registers handler to be invoked at most one time.
func (e *Event) Once(handler EventHandler) {
	e.list.attach(handler, true)
}

// Detach removes the handler identified by handle.
func (e *Event) Detach(handle int) {
	e.list.detach(handle)
}

type EventPublisher struct {
	event Event
}

func (p *EventPublisher) Event() *Event {
	return &p.event
}

func (p *EventPublisher) Publish() {
	p.event.list.each(func(h EventHandler) { h() })
}

// GenericEventHandler is the handler type used by events carrying a single
// argument of type T.
type GenericEventHandler[T any] func(arg T)

// GenericEvent is a multicast event carrying a single argument.
type GenericEvent[T any] struct {
	list handlerList[GenericEventHandler[T]]
}

func (e *GenericEvent[T]) Attach(handler GenericEventHandler[T]) int {
	return e.list.attach(handler, false)
}

func (e *GenericEvent[T]) Once(handler GenericEventHandler[T]) {
	e.list.attach(handler, true)
}

func (e *GenericEvent[T]) Detach(handle int) {
	e.list.detach(handle)
}

type GenericEventPublisher[T any] struct {
	event GenericEvent[T]
}

func (p *GenericEventPublisher[T]) Event() *GenericEvent[T] {
	return &p.event
}

func (p *GenericEventPublisher[T]) Publish(arg T) {
	p.event.list.each(func(h GenericEventHandler[T]) { h(arg) })
}

// ClickEventHandler handles a button click. Setting *cancelClose to true keeps
// the dialog open even though the button would otherwise close it.
type ClickEventHandler func(cancelClose *bool)

// ClickEvent is published when a button is clicked, either by the user or
// programmatically.
type ClickEvent struct {
	list handlerList[ClickEventHandler]
}

func (e *ClickEvent) Attach(handler ClickEventHandler) int {
	return e.list.attach(handler, false)
}

func (e *ClickEvent) Once(handler ClickEventHandler) {
	e.list.attach(handler, true)
}

func (e *ClickEvent) Detach(handle int) {
	e.list.detach(handle)
}

type ClickEventPublisher struct {
	event ClickEvent
}

func (p *ClickEventPublisher) Event() *ClickEvent {
	return &p.event
}

// Publish runs all handlers and reports whether any of them asked to keep
// the dialog open. Every handler sees the value set by its predecessors.
func (p *ClickEventPublisher) Publish() (cancelClose bool) {
	p.event.list.each(func(h ClickEventHandler) { h(&cancelClose) })
	return cancelClose
}

// TickEventHandler handles a timer notification. elapsed is the time since
// the page was created or since the last reset. Setting *resetTimer to true
// makes the native dialog restart its tick count.
type TickEventHandler func(elapsed time.Duration, resetTimer *bool)

// TickEvent is published roughly every 200 milliseconds while a page with an
// enabled timer is shown.
type TickEvent struct {
	list handlerList[TickEventHandler]
}

func (e *TickEvent) Attach(handler TickEventHandler) int {
	return e.list.attach(handler, false)
}

func (e *TickEvent) Detach(handle int) {
	e.list.detach(handle)
}

type TickEventPublisher struct {
	event TickEvent
}

func (p *TickEventPublisher) Event() *TickEvent {
	return &p.event
}

func (p *TickEventPublisher) Publish(elapsed time.Duration) (resetTimer bool) {
	p.event.list.each(func(h TickEventHandler) { h(elapsed, &resetTimer) })
	return resetTimer
}

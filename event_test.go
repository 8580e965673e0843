// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventAttachDetach(t *testing.T) {
	var p EventPublisher
	var calls []string

	a := p.Event().Attach(func() { calls = append(calls, "a") })
	p.Event().Attach(func() { calls = append(calls, "b") })
	p.Publish()
	assert.Equal(t, []string{"a", "b"}, calls)

	p.Event().Detach(a)
	calls = nil
	p.Publish()
	assert.Equal(t, []string{"b"}, calls)

	// The freed slot is reused.
	c := p.Event().Attach(func() { calls = append(calls, "c") })
	assert.Equal(t, a, c)
}

func TestEventOnce(t *testing.T) {
	var p GenericEventPublisher[string]
	var got []string

	p.Event().Once(func(s string) { got = append(got, s) })
	p.Publish("first")
	p.Publish("second")
	assert.Equal(t, []string{"first"}, got)
}

func TestEventAttachDuringPublish(t *testing.T) {
	var p EventPublisher
	var calls int

	p.Event().Attach(func() {
		calls++
		p.Event().Attach(func() { calls += 10 })
	})
	p.Publish()
	assert.Equal(t, 1, calls)
}

func TestEventSlotReusedDuringPublish(t *testing.T) {
	var p EventPublisher
	var calls []string

	var b int
	p.Event().Attach(func() {
		calls = append(calls, "a")
		p.Event().Detach(b)
		p.Event().Attach(func() { calls = append(calls, "c") })
	})
	b = p.Event().Attach(func() { calls = append(calls, "b") })

	p.Publish()
	assert.Equal(t, []string{"a"}, calls, "neither the detached nor the new handler runs")

	calls = nil
	p.Event().Detach(0)
	p.Publish()
	assert.Equal(t, []string{"c"}, calls)
}

func TestClickEventCancelClose(t *testing.T) {
	var p ClickEventPublisher
	assert.False(t, p.Publish())

	var seen bool
	p.Event().Attach(func(cancelClose *bool) { *cancelClose = true })
	p.Event().Attach(func(cancelClose *bool) { seen = *cancelClose })
	assert.True(t, p.Publish())
	assert.True(t, seen, "later handlers observe earlier requests")
}

func TestTickEvent(t *testing.T) {
	var p TickEventPublisher
	var elapsed time.Duration

	h := p.Event().Attach(func(d time.Duration, reset *bool) {
		elapsed = d
		*reset = d > time.Second
	})
	assert.False(t, p.Publish(200*time.Millisecond))
	assert.Equal(t, 200*time.Millisecond, elapsed)
	assert.True(t, p.Publish(2*time.Second))

	p.Event().Detach(h)
	assert.False(t, p.Publish(3*time.Second))
}

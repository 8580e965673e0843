// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"log"
	"strings"
)

// ControlState describes how far a control has progressed towards being
// shown by a task dialog.
type ControlState byte

const (
	// ControlUnbound means the control is not attached to a showing dialog.
	ControlUnbound ControlState = iota
	// ControlBound means the control's page is bound to a dialog, but the
	// native dialog does not contain a widget for the control.
	ControlBound
	// ControlCreated means the native dialog materialized the control.
	ControlCreated
)

func (s ControlState) String() string {
	switch s {
	case ControlBound:
		return "bound"
	case ControlCreated:
		return "created"
	default:
		return "unbound"
	}
}

// Control is implemented by everything a Page can contain: *CommonButton,
// *CustomButton, *RadioButton, *CheckBox, *Expander, *Footer and
// *ProgressBar. The set is closed; other packages cannot implement it.
type Control interface {
	// BoundPage returns the page the control is bound to, or nil.
	BoundPage() *Page
	// BindingState returns the control's current binding state.
	BindingState() ControlState
	base() *controlBase
}

type controlBase struct {
	owner     any   // collection or page holding the control; nil when free
	boundPage *Page // non-nil while the owning page is bound
	created   bool  // the native dialog contains a widget for this control
}

func (c *controlBase) base() *controlBase {
	return c
}

func (c *controlBase) BoundPage() *Page {
	return c.boundPage
}

func (c *controlBase) BindingState() ControlState {
	switch {
	case c.boundPage == nil:
		return ControlUnbound
	case c.created:
		return ControlCreated
	default:
		return ControlBound
	}
}

func (c *controlBase) bind(p *Page, created bool) {
	c.boundPage = p
	c.created = created
}

func (c *controlBase) unbind() {
	c.boundPage = nil
	c.created = false
}

// denyIfBound fails when the control's page is bound. It guards properties
// that influence the dialog's layout and cannot be changed on the fly.
func (c *controlBase) denyIfBound(what string) error {
	if c.boundPage != nil {
		return invalidState("%s cannot be changed while the page is bound", what)
	}
	return nil
}

// denyIfBoundAndNotCreated fails when the control's page is bound but the
// native dialog has no widget to apply an update to.
func (c *controlBase) denyIfBoundAndNotCreated(what string) error {
	if c.boundPage != nil && !c.created {
		return invalidState("%s cannot be changed because the control was not created", what)
	}
	return nil
}

// liveDialog returns the dialog that live updates of the control must be
// forwarded to. It returns nil when the new value only needs to be cached,
// either because the control is not bound or created, or because the dialog
// window does not exist yet.
func (c *controlBase) liveDialog() *TaskDialog {
	if c.boundPage == nil || !c.created {
		return nil
	}
	d := c.boundPage.boundDialog
	if d == nil || !d.created || d.page != c.boundPage {
		return nil
	}
	return d
}

// claim records owner as the holder of c, failing if c is already held by
// something else.
func (c *controlBase) claim(owner any) error {
	if c.owner != nil {
		if c.owner == owner {
			return invalidState("the control was already added")
		}
		return invalidState("the control already belongs to another page")
	}
	c.owner = owner
	return nil
}

func (c *controlBase) release() {
	c.owner = nil
}

// nativeText returns s as the native task dialog will see it: everything
// from the first NUL onwards is ignored.
func nativeText(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

func isNativeTextEmpty(s string) bool {
	return nativeText(s) == ""
}

// logLiveUpdate reports a live update that failed while applying cached
// state from inside a notification, where there is no caller to return to.
func logLiveUpdate(op string, err error) {
	if err != nil {
		log.Printf("taskdialog - %s: %v", op, err)
	}
}

// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

// Package taskdialog binds a declarative, event-driven object model to the
// Windows task dialog (TaskDialogIndirect).
//
// A Page describes the dialog's contents. TaskDialog.Show serializes the page
// into the single memory block the native dialog expects, blocks while the
// native dialog runs its own message loop, and routes the dialog's
// notifications to the page's controls, which publish them as events. Event
// handlers may update the shown page live, or Navigate to another page
// without closing the dialog window.
package taskdialog

import (
	"runtime"
	"sync/atomic"

	"github.com/tailscale/win"
)

// ShowOptions configures one Show call.
type ShowOptions struct {
	// Owner is the window owning the dialog. The dialog is modal to it.
	Owner win.HWND
	// CenterOwner centers the dialog on Owner instead of the monitor.
	CenterOwner bool
}

func (opts ShowOptions) flags() uint32 {
	if opts.CenterOwner && opts.Owner != 0 {
		return tdfPositionRelativeToWindow
	}
	return 0
}

type clickRecord struct {
	button Button
	id     int32
}

// TaskDialog shows pages. A TaskDialog shows at most one page at a time, but
// an event handler running inside Show may show other TaskDialogs.
//
// All methods must be called on the goroutine that called Show while Show is
// running.
type TaskDialog struct {
	engine nativeEngine

	page     *Page
	hwnd     win.HWND
	created  bool // the native dialog created the contents of page
	token    uintptr
	opts     ShowOptions
	showing  atomic.Bool
	threadID uint32

	lastClick     *clickRecord
	suppressClick bool
	navigating    bool
	destroying    bool
	navigations   uint64
}

// NewTaskDialog returns a TaskDialog backed by comctl32.
func NewTaskDialog() *TaskDialog {
	return newTaskDialogWithEngine(comctl32Engine{})
}

func newTaskDialogWithEngine(engine nativeEngine) *TaskDialog {
	return &TaskDialog{engine: engine}
}

// ShowDialog shows page in a new TaskDialog and returns the button that
// closed it.
func ShowDialog(page *Page, opts ShowOptions) (Button, error) {
	return NewTaskDialog().Show(page, opts)
}

// Handle returns the dialog's window handle. It is 0 unless the native
// dialog window exists.
func (d *TaskDialog) Handle() win.HWND {
	return d.hwnd
}

// Page returns the page currently bound to the dialog, or nil.
func (d *TaskDialog) Page() *Page {
	return d.page
}

// Show shows page and blocks until the dialog closes. It returns the button
// that closed the dialog, which belongs to the page shown last: a page that
// was navigated to, or a common button synthesized for a result the page
// has no button for.
func (d *TaskDialog) Show(page *Page, opts ShowOptions) (result Button, err error) {
	// Claimed atomically so that a second goroutine cannot enter Show while
	// the first one is still running it.
	if !d.showing.CompareAndSwap(false, true) {
		return nil, invalidState("the dialog is already shown")
	}
	defer d.showing.Store(false)

	if page == nil {
		return nil, invalidState("no page to show")
	}
	if err := page.validate(d); err != nil {
		return nil, err
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	d.opts = opts
	d.threadID = d.engine.threadID()
	d.lastClick = nil
	d.suppressClick = false
	d.navigating = false
	d.destroying = false
	d.token = registerDialog(d)
	defer func() {
		if d.page != nil {
			d.page.unbind()
			d.page = nil
		}
		unregisterDialog(d.token)
		d.token = 0
		d.hwnd = 0
		d.created = false
		runtime.KeepAlive(d)
	}()

	page.bind(d)
	d.page = page

	block, err := buildConfig(page, d.configParams())
	if err != nil {
		return nil, err
	}
	defer block.free()

	id, err := d.engine.indirect(block.addr)
	d.hwnd = 0
	d.created = false
	if err != nil {
		return nil, err
	}

	return d.resolveResult(id), nil
}

func (d *TaskDialog) configParams() configParams {
	return configParams{
		owner:        d.opts.Owner,
		flags:        d.opts.flags(),
		callback:     d.engine.callbackAddr(),
		callbackData: d.token,
	}
}

// resolveResult maps the id returned by the native dialog to a button.
func (d *TaskDialog) resolveResult(id int32) Button {
	if lc := d.lastClick; lc != nil && lc.id == id && lc.button != nil {
		return lc.button
	}
	if d.page != nil {
		if id >= firstCustomButtonID {
			if b := d.page.buttonByID(id); b != nil {
				return b
			}
		} else if b := d.page.commonButtons.Get(Result(id)); b != nil {
			return b
		}
	}
	return synthesizeCommonButton(Result(id))
}

// Navigate replaces the shown page with page without closing the dialog
// window. The current page publishes Destroyed and is unbound before page is
// bound. Navigate must be called while the dialog window exists, typically
// from an event handler of the current page.
func (d *TaskDialog) Navigate(page *Page) error {
	if d.hwnd == 0 {
		return invalidState("navigation requires the dialog to be shown")
	}
	if err := d.checkThread(); err != nil {
		return err
	}
	if d.navigating || d.destroying {
		return invalidState("the dialog cannot navigate while its current page is being torn down")
	}
	if page == nil {
		return invalidState("no page to navigate to")
	}
	if page == d.page {
		return invalidState("the page is already shown by this dialog")
	}
	if err := page.validate(d); err != nil {
		return err
	}

	old := d.page
	d.navigating = true
	old.raiseDestroyed()
	d.navigating = false

	// Destroyed handlers may have closed the dialog or modified page.
	if d.hwnd == 0 {
		return invalidState("the dialog was closed while navigating")
	}
	if err := page.validate(d); err != nil {
		return err
	}

	old.unbind()
	d.page = nil
	d.created = false

	page.bind(d)
	d.page = page
	d.navigations++

	block, err := buildConfig(page, d.configParams())
	if err != nil {
		// The new page cannot be shown and the old page is gone.
		d.Close()
		return err
	}
	defer block.free()

	if _, err := d.send(tdmNavigatePage, 0, block.addr); err != nil {
		return err
	}
	return nil
}

// Close closes the dialog as if it had been cancelled. The page's Cancel
// button, if any, does not publish Clicked.
func (d *TaskDialog) Close() error {
	if d.hwnd == 0 {
		return invalidState("the dialog is not shown")
	}
	if err := d.checkThread(); err != nil {
		return err
	}
	d.suppressClick = true
	_, err := d.send(tdmClickButton, uintptr(win.IDCANCEL), 0)
	d.suppressClick = false
	return err
}

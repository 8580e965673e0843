// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"log"
	"time"
	"unsafe"

	"github.com/tailscale/win"
	"golang.org/x/sys/windows"
)

// handleNotification is the PFTASKDIALOGCALLBACK of d.
func (d *TaskDialog) handleNotification(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case tdnDialogConstructed:
		// The window exists but its contents have not been laid out yet;
		// everything is applied on TDN_CREATED.

	case tdnCreated, tdnNavigated:
		d.hwnd = hwnd
		d.created = true
		if p := d.page; p != nil {
			p.applyInitialization(d)
			p.createdPublisher.Publish()
		}

	case tdnDestroyed:
		d.destroying = true
		if p := d.page; p != nil {
			p.raiseDestroyed()
		}
		d.hwnd = 0
		d.created = false
		d.destroying = false

	case tdnButtonClicked:
		return d.handleButtonClicked(int32(wParam))

	case tdnRadioButtonClicked:
		if p := d.page; p != nil {
			p.handleRadioButtonClicked(int32(wParam))
		}

	case tdnVerificationClicked:
		if p := d.page; p != nil && p.checkBox != nil {
			p.checkBox.handleVerificationClicked(wParam != 0)
		}

	case tdnExpandoButtonClicked:
		if p := d.page; p != nil && p.expander != nil {
			p.expander.handleExpandoButtonClicked(wParam != 0)
		}

	case tdnHelp:
		if p := d.page; p != nil {
			p.helpPublisher.Publish()
		}

	case tdnHyperlinkClicked:
		if p := d.page; p != nil {
			href := windows.UTF16PtrToString((*uint16)(unsafe.Pointer(lParam)))
			p.hyperlinkClickedPublisher.Publish(href)
		}

	case tdnTimer:
		if p := d.page; p != nil {
			if p.tickPublisher.Publish(time.Duration(wParam) * time.Millisecond) {
				return sFalse
			}
		}

	default:
		log.Printf("taskdialog - unknown notification %d", msg)
	}

	return sOK
}

// handleButtonClicked publishes the click of the button identified by id and
// decides whether the native dialog may close. S_OK closes the dialog,
// S_FALSE keeps it open.
func (d *TaskDialog) handleButtonClicked(id int32) uintptr {
	var button Button
	if d.page != nil {
		button = d.page.buttonByID(id)
	}

	if d.suppressClick {
		d.lastClick = &clickRecord{button: button, id: id}
		return sOK
	}

	if button == nil {
		// Closing with ESC or the title bar reports IDCANCEL even if the page
		// has no Cancel button.
		if id >= firstCustomButtonID {
			log.Printf("taskdialog - click of button %d which is not part of the page", id)
		}
		d.lastClick = &clickRecord{id: id}
		return sOK
	}

	navigations := d.navigations
	cancelClose := button.button().clickedPublisher.Publish()

	if d.navigations != navigations {
		// A handler navigated to another page; the dialog stays open to
		// show it.
		return sFalse
	}
	if cancelClose || !button.button().AllowCloseDialog() {
		return sFalse
	}

	d.lastClick = &clickRecord{button: button, id: id}
	return sOK
}

func (p *Page) raiseDestroyed() {
	if p.destroyRaised {
		return
	}
	p.destroyRaised = true
	p.destroyedPublisher.Publish()
}

// handleRadioButtonClicked unchecks the siblings of the clicked radio button,
// publishing their CheckedChanged events, then checks the clicked one.
// Handlers may click another radio button; the outer run then stops.
func (p *Page) handleRadioButtonClicked(id int32) {
	target := p.radioButtonByID(id)
	if target == nil {
		log.Printf("taskdialog - click of radio button %d which is not part of the page", id)
		return
	}

	p.radioClickSeq++
	seq := p.radioClickSeq

	for _, rb := range p.radioButtons.items {
		if rb == target || !rb.checked {
			continue
		}
		rb.checked = false
		rb.checkedChangedPublisher.Publish()
		if p.radioClickSeq != seq {
			return
		}
	}

	if !target.checked {
		target.checked = true
		target.checkedChangedPublisher.Publish()
	}
}

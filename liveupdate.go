// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// send delivers a TDM_* message to the dialog window. It fails unless the
// window exists and the caller runs on the thread that owns it.
func (d *TaskDialog) send(msg uint32, wParam, lParam uintptr) (uintptr, error) {
	if d.hwnd == 0 {
		return 0, invalidState("the dialog window does not exist")
	}
	if err := d.checkThread(); err != nil {
		return 0, err
	}
	return d.engine.sendMessage(d.hwnd, msg, wParam, lParam), nil
}

// checkThread fails unless the caller runs on the thread that called Show.
func (d *TaskDialog) checkThread() error {
	if tid := d.engine.threadID(); tid != d.threadID {
		return invalidState("the dialog is owned by thread %d, not %d", d.threadID, tid)
	}
	return nil
}

func boolToUintptr(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

// makeLParam packs two 16-bit values like MAKELPARAM.
func makeLParam(lo, hi int) uintptr {
	return uintptr(uint32(uint16(lo)) | uint32(uint16(hi))<<16)
}

func (d *TaskDialog) clickButton(id int32) error {
	_, err := d.send(tdmClickButton, uintptr(id), 0)
	return err
}

func (d *TaskDialog) clickRadioButton(id int32) error {
	_, err := d.send(tdmClickRadioButton, uintptr(id), 0)
	return err
}

func (d *TaskDialog) clickVerification(checked, focus bool) error {
	_, err := d.send(tdmClickVerification, boolToUintptr(checked), boolToUintptr(focus))
	return err
}

func (d *TaskDialog) setButtonEnabled(id int32, enabled bool) error {
	_, err := d.send(tdmEnableButton, uintptr(id), boolToUintptr(enabled))
	return err
}

func (d *TaskDialog) setRadioButtonEnabled(id int32, enabled bool) error {
	_, err := d.send(tdmEnableRadioButton, uintptr(id), boolToUintptr(enabled))
	return err
}

func (d *TaskDialog) setButtonElevationRequired(id int32, required bool) error {
	_, err := d.send(tdmSetButtonElevationRequired, uintptr(id), boolToUintptr(required))
	return err
}

// updateTextElement replaces the text of one of the TDE_* elements and lets
// the dialog resize to fit it.
func (d *TaskDialog) updateTextElement(element uintptr, text string) error {
	text16, err := windows.UTF16FromString(nativeText(text))
	if err != nil {
		return err
	}
	_, err = d.send(tdmSetElementText, element, uintptr(unsafe.Pointer(unsafe.SliceData(text16))))
	runtime.KeepAlive(text16)
	return err
}

func (d *TaskDialog) updateIcon(element uintptr, icon Icon) error {
	_, err := d.send(tdmUpdateIcon, element, icon.nativeValue())
	return err
}

func (d *TaskDialog) switchProgressBarMode(marquee bool) error {
	_, err := d.send(tdmSetMarqueeProgressBar, boolToUintptr(marquee), 0)
	return err
}

func (d *TaskDialog) setProgressBarMarquee(enabled bool, speed int) error {
	_, err := d.send(tdmSetProgressBarMarquee, boolToUintptr(enabled), uintptr(uint32(speed)))
	return err
}

func (d *TaskDialog) setProgressBarRange(minimum, maximum int) error {
	_, err := d.send(tdmSetProgressBarRange, 0, makeLParam(minimum, maximum))
	return err
}

func (d *TaskDialog) setProgressBarPosition(pos int) error {
	_, err := d.send(tdmSetProgressBarPos, uintptr(uint32(pos)), 0)
	return err
}

func (d *TaskDialog) setProgressBarState(state uintptr) error {
	_, err := d.send(tdmSetProgressBarState, state, 0)
	return err
}

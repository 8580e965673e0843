// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

// CheckBox is the verification check box shown at the bottom of the page. It
// is created only when its text is not empty.
type CheckBox struct {
	controlBase
	checkedChangedPublisher EventPublisher
	text                    string
	checked                 bool
	boundChecked            bool
}

func NewCheckBox(text string) *CheckBox {
	return &CheckBox{text: text}
}

func (cb *CheckBox) Text() string {
	return cb.text
}

func (cb *CheckBox) SetText(text string) error {
	if err := cb.denyIfBound("Text"); err != nil {
		return err
	}
	cb.text = text
	return nil
}

func (cb *CheckBox) Checked() bool {
	return cb.checked
}

// SetChecked sets the check state. When the page is shown the verification
// control is clicked and the state follows the native dialog's
// notification.
func (cb *CheckBox) SetChecked(checked bool) error {
	if err := cb.denyIfBoundAndNotCreated("Checked"); err != nil {
		return err
	}
	if d := cb.liveDialog(); d != nil {
		return d.clickVerification(checked, false)
	}
	cb.checked = checked
	return nil
}

// Focus moves the keyboard focus to the check box without changing its
// state. The page must be shown.
func (cb *CheckBox) Focus() error {
	d := cb.liveDialog()
	if d == nil {
		return invalidState("the check box is not shown")
	}
	return d.clickVerification(cb.checked, true)
}

// CheckedChanged returns the event published after Checked changed while the
// page is shown.
func (cb *CheckBox) CheckedChanged() *Event {
	return cb.checkedChangedPublisher.Event()
}

func (cb *CheckBox) isCreatable() bool {
	return !isNativeTextEmpty(cb.text)
}

func (cb *CheckBox) bindFlags() uint32 {
	cb.boundChecked = cb.checked
	if cb.checked {
		return tdfVerificationFlagChecked
	}
	return 0
}

func (cb *CheckBox) applyInitialization(d *TaskDialog) {
	if cb.checked != cb.boundChecked {
		logLiveUpdate("CheckBox.SetChecked", d.clickVerification(cb.checked, false))
	}
}

func (cb *CheckBox) handleVerificationClicked(checked bool) {
	if cb.checked == checked {
		return
	}
	cb.checked = checked
	cb.checkedChangedPublisher.Publish()
}

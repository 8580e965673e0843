// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

// RadioButton is one option of the page's radio button group. At most one
// radio button of a page may be checked.
type RadioButton struct {
	controlBase
	checkedChangedPublisher EventPublisher
	text                    string
	id                      int32
	checked                 bool
	disabled                bool
}

func NewRadioButton(text string) *RadioButton {
	return &RadioButton{text: text}
}

// ID returns the id assigned to the radio button while its page is bound, or
// 0.
func (rb *RadioButton) ID() int32 {
	return rb.id
}

func (rb *RadioButton) Text() string {
	return rb.text
}

func (rb *RadioButton) SetText(text string) error {
	if err := rb.denyIfBound("Text"); err != nil {
		return err
	}
	rb.text = text
	return nil
}

func (rb *RadioButton) Enabled() bool {
	return !rb.disabled
}

func (rb *RadioButton) SetEnabled(enabled bool) error {
	if d := rb.liveDialog(); d != nil {
		if err := d.setRadioButtonEnabled(rb.id, enabled); err != nil {
			return err
		}
	}
	rb.disabled = !enabled
	return nil
}

func (rb *RadioButton) Checked() bool {
	return rb.checked
}

// SetChecked checks or unchecks the radio button. While the page is bound a
// radio button can only be checked, which unchecks its siblings; the native
// dialog offers no way to clear the selection.
//
// When the page is shown, the radio button is clicked and the checked state
// follows the native dialog's notification.
func (rb *RadioButton) SetChecked(checked bool) error {
	if rb.boundPage == nil {
		rb.checked = checked
		return nil
	}

	if !checked {
		return invalidState("a radio button cannot be unchecked while the page is bound")
	}
	if rb.checked {
		return nil
	}

	if d := rb.liveDialog(); d != nil {
		return d.clickRadioButton(rb.id)
	}

	// The window does not exist yet; the click is sent once it does.
	rb.boundPage.checkRadioButton(rb)
	return nil
}

// CheckedChanged returns the event published after Checked changed while the
// page is shown.
func (rb *RadioButton) CheckedChanged() *Event {
	return rb.checkedChangedPublisher.Event()
}

func (rb *RadioButton) unbind() {
	rb.controlBase.unbind()
	rb.id = 0
}

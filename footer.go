// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

// Footer is the text and optional icon at the bottom of the page. It is
// created only when its text is not empty.
type Footer struct {
	controlBase
	text      string
	icon      Icon
	boundText string
	boundIcon Icon
}

func NewFooter(text string) *Footer {
	return &Footer{text: text}
}

func (f *Footer) Text() string {
	return f.text
}

// SetText sets the footer text. It may be called while the page is shown,
// provided the footer was created.
func (f *Footer) SetText(text string) error {
	if err := f.denyIfBoundAndNotCreated("Text"); err != nil {
		return err
	}
	if d := f.liveDialog(); d != nil {
		if err := d.updateTextElement(tdeFooter, text); err != nil {
			return err
		}
	}
	f.text = text
	return nil
}

func (f *Footer) Icon() Icon {
	return f.icon
}

// SetIcon sets the footer icon. While the page is bound the icon may only be
// replaced by one of the same family, see Icon.
func (f *Footer) SetIcon(icon Icon) error {
	if err := f.denyIfBoundAndNotCreated("Icon"); err != nil {
		return err
	}
	if f.boundPage != nil && icon.IsHandle() != f.boundIcon.IsHandle() {
		return invalidState("the footer icon cannot switch between handle and non-handle icons while the page is bound")
	}
	if d := f.liveDialog(); d != nil {
		if err := d.updateIcon(tdieIconFooter, icon); err != nil {
			return err
		}
	}
	f.icon = icon
	return nil
}

func (f *Footer) isCreatable() bool {
	return !isNativeTextEmpty(f.text)
}

func (f *Footer) bindFlags() uint32 {
	f.boundText = f.text
	f.boundIcon = f.icon
	if f.icon.IsHandle() {
		return tdfUseHIconFooter
	}
	return 0
}

func (f *Footer) applyInitialization(d *TaskDialog) {
	if f.text != f.boundText {
		logLiveUpdate("Footer.SetText", d.updateTextElement(tdeFooter, f.text))
	}
	if f.icon != f.boundIcon {
		logLiveUpdate("Footer.SetIcon", d.updateIcon(tdieIconFooter, f.icon))
	}
}

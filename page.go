// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

// Page describes the complete contents of a task dialog. A page is shown by
// TaskDialog.Show or swapped into a dialog that is already shown by
// TaskDialog.Navigate. The zero value is an empty page.
//
// Properties that influence the dialog's layout cannot be changed while the
// page is bound to a dialog. Heading, Text and Icon, like several properties
// of the contained controls, may be changed at any time and are forwarded to
// the native dialog when it is shown.
type Page struct {
	commonButtons CommonButtonCollection
	customButtons CustomButtonCollection
	radioButtons  RadioButtonCollection
	checkBox      *CheckBox
	expander      *Expander
	footer        *Footer
	progressBar   *ProgressBar

	caption           string
	heading           string
	text              string
	icon              Icon
	width             uint32
	customButtonStyle CustomButtonStyle
	allowCancel       bool
	allowMinimize     bool
	rightToLeft       bool
	sizeToContent     bool
	enableHyperlinks  bool
	enableTimer       bool
	noSetForeground   bool

	createdPublisher          EventPublisher
	destroyedPublisher        EventPublisher
	helpPublisher             EventPublisher
	hyperlinkClickedPublisher GenericEventPublisher[string]
	tickPublisher             TickEventPublisher

	binding         *bindingToken
	boundDialog     *TaskDialog
	boundFlags      uint32
	boundButtons    uint32
	defaultButtonID int32
	defaultRadioID  int32
	boundHeading    string
	boundText       string
	boundIcon       Icon
	destroyRaised   bool
	radioClickSeq   uint64
}

// NewPage returns an empty page with the given heading.
func NewPage(heading string) *Page {
	return &Page{heading: heading}
}

func (p *Page) CommonButtons() *CommonButtonCollection {
	return &p.commonButtons
}

func (p *Page) CustomButtons() *CustomButtonCollection {
	return &p.customButtons
}

func (p *Page) RadioButtons() *RadioButtonCollection {
	return &p.radioButtons
}

// BoundDialog returns the dialog the page is bound to, or nil.
func (p *Page) BoundDialog() *TaskDialog {
	return p.boundDialog
}

// Navigate replaces p, which must be the page currently shown by its dialog,
// with page.
func (p *Page) Navigate(page *Page) error {
	if p.boundDialog == nil {
		return invalidState("the page is not bound to a dialog")
	}
	return p.boundDialog.Navigate(page)
}

func (p *Page) denyIfBound(what string) error {
	if p.binding != nil {
		return invalidState("%s cannot be changed while the page is bound", what)
	}
	return nil
}

// liveDialog returns the dialog live updates of the page must be sent to, or
// nil if they only need to be cached.
func (p *Page) liveDialog() *TaskDialog {
	d := p.boundDialog
	if d == nil || !d.created || d.page != p {
		return nil
	}
	return d
}

// setSingleton replaces the control held in *slot by c, transferring the
// page's ownership.
func setSingleton[T Control](p *Page, slot *T, c T, isNil func(T) bool, what string) error {
	if err := p.denyIfBound(what); err != nil {
		return err
	}
	if !isNil(*slot) && !isNil(c) && (*slot).base() == c.base() {
		return nil
	}
	if !isNil(c) {
		if err := c.base().claim(p); err != nil {
			return err
		}
	}
	if !isNil(*slot) {
		(*slot).base().release()
	}
	*slot = c
	return nil
}

func (p *Page) CheckBox() *CheckBox {
	return p.checkBox
}

// SetCheckBox sets the verification check box; nil removes it.
func (p *Page) SetCheckBox(cb *CheckBox) error {
	return setSingleton(p, &p.checkBox, cb, func(v *CheckBox) bool { return v == nil }, "CheckBox")
}

func (p *Page) Expander() *Expander {
	return p.expander
}

// SetExpander sets the expander; nil removes it.
func (p *Page) SetExpander(e *Expander) error {
	return setSingleton(p, &p.expander, e, func(v *Expander) bool { return v == nil }, "Expander")
}

func (p *Page) Footer() *Footer {
	return p.footer
}

// SetFooter sets the footer; nil removes it.
func (p *Page) SetFooter(f *Footer) error {
	return setSingleton(p, &p.footer, f, func(v *Footer) bool { return v == nil }, "Footer")
}

func (p *Page) ProgressBar() *ProgressBar {
	return p.progressBar
}

// SetProgressBar sets the progress bar; nil removes it.
func (p *Page) SetProgressBar(pb *ProgressBar) error {
	return setSingleton(p, &p.progressBar, pb, func(v *ProgressBar) bool { return v == nil }, "ProgressBar")
}

// Caption returns the window title.
func (p *Page) Caption() string {
	return p.caption
}

func (p *Page) SetCaption(caption string) error {
	if err := p.denyIfBound("Caption"); err != nil {
		return err
	}
	p.caption = caption
	return nil
}

// Heading returns the main instruction.
func (p *Page) Heading() string {
	return p.heading
}

func (p *Page) SetHeading(heading string) error {
	if d := p.liveDialog(); d != nil {
		if err := d.updateTextElement(tdeMainInstruction, heading); err != nil {
			return err
		}
	}
	p.heading = heading
	return nil
}

// Text returns the content text.
func (p *Page) Text() string {
	return p.text
}

func (p *Page) SetText(text string) error {
	if d := p.liveDialog(); d != nil {
		if err := d.updateTextElement(tdeContent, text); err != nil {
			return err
		}
	}
	p.text = text
	return nil
}

// Icon returns the main icon.
func (p *Page) Icon() Icon {
	return p.icon
}

// SetIcon sets the main icon. While the page is bound the icon may only be
// replaced by one of the same family, see Icon.
func (p *Page) SetIcon(icon Icon) error {
	if p.binding != nil && icon.IsHandle() != p.boundIcon.IsHandle() {
		return invalidState("the icon cannot switch between handle and non-handle icons while the page is bound")
	}
	if d := p.liveDialog(); d != nil {
		if err := d.updateIcon(tdieIconMain, icon); err != nil {
			return err
		}
	}
	p.icon = icon
	return nil
}

// Width returns the width of the dialog's client area in dialog units. 0
// lets the native dialog choose.
func (p *Page) Width() uint32 {
	return p.width
}

func (p *Page) SetWidth(width uint32) error {
	if err := p.denyIfBound("Width"); err != nil {
		return err
	}
	p.width = width
	return nil
}

func (p *Page) CustomButtonStyle() CustomButtonStyle {
	return p.customButtonStyle
}

func (p *Page) SetCustomButtonStyle(style CustomButtonStyle) error {
	if style > CustomButtonStyleCommandLinksNoIcon {
		return outOfRange("invalid custom button style %d", style)
	}
	if err := p.denyIfBound("CustomButtonStyle"); err != nil {
		return err
	}
	p.customButtonStyle = style
	return nil
}

func (p *Page) setFlag(field *bool, value bool, what string) error {
	if err := p.denyIfBound(what); err != nil {
		return err
	}
	*field = value
	return nil
}

// AllowCancel reports whether the dialog can be closed with ESC, Alt+F4 or
// the title bar's close button even without a Cancel button.
func (p *Page) AllowCancel() bool {
	return p.allowCancel
}

func (p *Page) SetAllowCancel(allow bool) error {
	return p.setFlag(&p.allowCancel, allow, "AllowCancel")
}

func (p *Page) AllowMinimize() bool {
	return p.allowMinimize
}

func (p *Page) SetAllowMinimize(allow bool) error {
	return p.setFlag(&p.allowMinimize, allow, "AllowMinimize")
}

func (p *Page) RightToLeftLayout() bool {
	return p.rightToLeft
}

func (p *Page) SetRightToLeftLayout(rtl bool) error {
	return p.setFlag(&p.rightToLeft, rtl, "RightToLeftLayout")
}

// SizeToContent reports whether the width is derived from the content area
// rather than the button area.
func (p *Page) SizeToContent() bool {
	return p.sizeToContent
}

func (p *Page) SetSizeToContent(value bool) error {
	return p.setFlag(&p.sizeToContent, value, "SizeToContent")
}

// EnableHyperlinks reports whether <a href="..."> markup in the content,
// expanded information and footer texts is rendered as links.
func (p *Page) EnableHyperlinks() bool {
	return p.enableHyperlinks
}

func (p *Page) SetEnableHyperlinks(enable bool) error {
	return p.setFlag(&p.enableHyperlinks, enable, "EnableHyperlinks")
}

// EnableTimer reports whether the Tick event is published.
func (p *Page) EnableTimer() bool {
	return p.enableTimer
}

func (p *Page) SetEnableTimer(enable bool) error {
	return p.setFlag(&p.enableTimer, enable, "EnableTimer")
}

func (p *Page) NoSetForeground() bool {
	return p.noSetForeground
}

func (p *Page) SetNoSetForeground(value bool) error {
	return p.setFlag(&p.noSetForeground, value, "NoSetForeground")
}

// Created returns the event published after the native dialog created the
// page's window contents, either when the dialog opens or after navigating
// to the page.
func (p *Page) Created() *Event {
	return p.createdPublisher.Event()
}

// Destroyed returns the event published before the page is unbound, either
// because the dialog closes or because it navigates to another page.
func (p *Page) Destroyed() *Event {
	return p.destroyedPublisher.Event()
}

// Help returns the event published when the user presses F1.
func (p *Page) Help() *Event {
	return p.helpPublisher.Event()
}

// HyperlinkClicked returns the event published with the href of a clicked
// link. See EnableHyperlinks.
func (p *Page) HyperlinkClicked() *GenericEvent[string] {
	return p.hyperlinkClickedPublisher.Event()
}

// Tick returns the event published about every 200 milliseconds. See
// EnableTimer.
func (p *Page) Tick() *TickEvent {
	return p.tickPublisher.Event()
}

// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"fmt"
	"strings"

	"github.com/tailscale/win"
)

// Result identifies a common button. Its value is the id the native dialog
// reports when that button closes it.
type Result int32

const (
	ResultNone     Result = 0
	ResultOK       Result = win.IDOK
	ResultCancel   Result = win.IDCANCEL
	ResultAbort    Result = win.IDABORT
	ResultRetry    Result = win.IDRETRY
	ResultIgnore   Result = win.IDIGNORE
	ResultYes      Result = win.IDYES
	ResultNo       Result = win.IDNO
	ResultClose    Result = win.IDCLOSE
	ResultHelp     Result = win.IDHELP
	ResultTryAgain Result = win.IDTRYAGAIN
	ResultContinue Result = win.IDCONTINUE
)

var resultNames = map[Result]string{
	ResultOK:       "ok",
	ResultCancel:   "cancel",
	ResultAbort:    "abort",
	ResultRetry:    "retry",
	ResultIgnore:   "ignore",
	ResultYes:      "yes",
	ResultNo:       "no",
	ResultClose:    "close",
	ResultHelp:     "help",
	ResultTryAgain: "tryAgain",
	ResultContinue: "continue",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int32(r))
}

// IsValid reports whether r names one of the common buttons.
func (r Result) IsValid() bool {
	_, ok := resultNames[r]
	return ok
}

func (r Result) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, outOfRange("invalid result %d", int32(r))
	}
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	for result, name := range resultNames {
		if strings.EqualFold(name, string(text)) {
			*r = result
			return nil
		}
	}
	return outOfRange("unknown result %q", text)
}

// commonButtonFlag returns r's TDCBF_* bit.
func (r Result) commonButtonFlag() uint32 {
	switch r {
	case ResultOK:
		return tdcbfOKButton
	case ResultYes:
		return tdcbfYesButton
	case ResultNo:
		return tdcbfNoButton
	case ResultCancel:
		return tdcbfCancelButton
	case ResultRetry:
		return tdcbfRetryButton
	case ResultClose:
		return tdcbfCloseButton
	case ResultAbort:
		return tdcbfAbortButton
	case ResultIgnore:
		return tdcbfIgnoreButton
	case ResultTryAgain:
		return tdcbfTryAgainButton
	case ResultContinue:
		return tdcbfContinueButton
	case ResultHelp:
		return tdcbfHelpButton
	default:
		return 0
	}
}

// Button is implemented by *CommonButton and *CustomButton. A Button is what
// Show reports as the dialog's result.
type Button interface {
	Control
	// Text returns the button's label.
	Text() string
	// Clicked returns the event published when the button is clicked.
	Clicked() *ClickEvent
	button() *buttonBase
}

type buttonBase struct {
	controlBase
	clickedPublisher ClickEventPublisher
	id               int32
	disabled         bool
	hidden           bool
	keepOpen         bool
	showShield       bool
	defaultButton    bool
}

func (b *buttonBase) button() *buttonBase {
	return b
}

// Clicked returns the event published when the button is clicked. Handlers
// may set cancelClose to keep the dialog open.
func (b *buttonBase) Clicked() *ClickEvent {
	return b.clickedPublisher.Event()
}

// ID returns the id assigned to the button while its page is bound, or 0.
func (b *buttonBase) ID() int32 {
	return b.id
}

func (b *buttonBase) Enabled() bool {
	return !b.disabled
}

// SetEnabled enables or disables the button. It may be called while the
// page is shown.
func (b *buttonBase) SetEnabled(enabled bool) error {
	if d := b.liveDialog(); d != nil {
		if err := d.setButtonEnabled(b.id, enabled); err != nil {
			return err
		}
	}
	b.disabled = !enabled
	return nil
}

// ShowShieldIcon reports whether the button shows the elevation shield.
func (b *buttonBase) ShowShieldIcon() bool {
	return b.showShield
}

// SetShowShieldIcon sets whether the button shows the elevation shield. It
// may be called while the page is shown.
func (b *buttonBase) SetShowShieldIcon(show bool) error {
	if d := b.liveDialog(); d != nil {
		if err := d.setButtonElevationRequired(b.id, show); err != nil {
			return err
		}
	}
	b.showShield = show
	return nil
}

// AllowCloseDialog reports whether clicking the button closes the dialog.
func (b *buttonBase) AllowCloseDialog() bool {
	return !b.keepOpen
}

func (b *buttonBase) SetAllowCloseDialog(allow bool) {
	b.keepOpen = !allow
}

// Visible reports whether the button is part of the rendered button set.
// An invisible button is still bound and can be reported as the result, for
// example an invisible Cancel button for a dialog closed with ESC.
func (b *buttonBase) Visible() bool {
	return !b.hidden
}

func (b *buttonBase) SetVisible(visible bool) error {
	if err := b.denyIfBound("Visible"); err != nil {
		return err
	}
	b.hidden = !visible
	return nil
}

// DefaultButton reports whether the button has the initial focus.
func (b *buttonBase) DefaultButton() bool {
	return b.defaultButton
}

func (b *buttonBase) SetDefaultButton(value bool) error {
	if err := b.denyIfBound("DefaultButton"); err != nil {
		return err
	}
	b.defaultButton = value
	return nil
}

// PerformClick clicks the button programmatically. The page must be shown.
func (b *buttonBase) PerformClick() error {
	if b.boundPage == nil || !b.created {
		return invalidState("the button is not shown")
	}
	d := b.boundPage.boundDialog
	if d == nil {
		return invalidState("the button is not shown")
	}
	return d.clickButton(b.id)
}

func (b *buttonBase) unbind() {
	b.controlBase.unbind()
	b.id = 0
}

func (b *buttonBase) applyInitialization(d *TaskDialog) {
	if b.disabled {
		logLiveUpdate("SetEnabled", d.setButtonEnabled(b.id, false))
	}
	if b.showShield {
		logLiveUpdate("SetShowShieldIcon", d.setButtonElevationRequired(b.id, true))
	}
}

// CommonButton is one of the predefined buttons of the native dialog, such
// as OK or Cancel.
type CommonButton struct {
	buttonBase
	result Result
}

// NewCommonButton returns a visible, enabled common button for result.
func NewCommonButton(result Result) (*CommonButton, error) {
	if !result.IsValid() {
		return nil, outOfRange("invalid result %d", int32(result))
	}
	return &CommonButton{result: result}, nil
}

// synthesizeCommonButton creates a free-standing button reporting result
// when the dialog closes with an id for which the page has no button.
func synthesizeCommonButton(result Result) *CommonButton {
	return &CommonButton{result: result}
}

// Result returns the result identifying the button.
func (b *CommonButton) Result() Result {
	return b.result
}

func (b *CommonButton) Text() string {
	return b.result.String()
}

// CustomButtonStyle controls how custom buttons are presented.
type CustomButtonStyle byte

const (
	CustomButtonStyleDefault            CustomButtonStyle = iota // Push buttons next to the common buttons.
	CustomButtonStyleCommandLinks                                // Command links with an arrow glyph.
	CustomButtonStyleCommandLinksNoIcon                          // Command links without glyph.
)

var customButtonStyleNames = map[CustomButtonStyle]string{
	CustomButtonStyleDefault:            "default",
	CustomButtonStyleCommandLinks:       "commandLinks",
	CustomButtonStyleCommandLinksNoIcon: "commandLinksNoIcon",
}

func (s CustomButtonStyle) String() string {
	return customButtonStyleNames[s]
}

func (s *CustomButtonStyle) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = CustomButtonStyleDefault
		return nil
	}
	for style, name := range customButtonStyleNames {
		if strings.EqualFold(name, string(text)) {
			*s = style
			return nil
		}
	}
	return outOfRange("unknown custom button style %q", text)
}

func (s CustomButtonStyle) isCommandLinks() bool {
	return s == CustomButtonStyleCommandLinks || s == CustomButtonStyleCommandLinksNoIcon
}

// CustomButton is a button with application-defined text. When the page uses
// command links, the description text is shown below the button text.
type CustomButton struct {
	buttonBase
	text            string
	descriptionText string
}

func NewCustomButton(text string) *CustomButton {
	return &CustomButton{text: text}
}

func (b *CustomButton) Text() string {
	return b.text
}

func (b *CustomButton) SetText(text string) error {
	if err := b.denyIfBound("Text"); err != nil {
		return err
	}
	b.text = text
	return nil
}

func (b *CustomButton) DescriptionText() string {
	return b.descriptionText
}

func (b *CustomButton) SetDescriptionText(text string) error {
	if err := b.denyIfBound("DescriptionText"); err != nil {
		return err
	}
	b.descriptionText = text
	return nil
}

// Command links split their label from the description at the first "\n",
// so line breaks inside the label are turned into "\r".
var labelLineBreaks = strings.NewReplacer("\r\n", "\r", "\n", "\r")

// resultingText returns the text handed to the native dialog. In command link
// mode the description follows the label after a single "\n".
func (b *CustomButton) resultingText(style CustomButtonStyle) string {
	text := nativeText(b.text)
	if !style.isCommandLinks() {
		return text
	}

	text = labelLineBreaks.Replace(text)
	if desc := nativeText(b.descriptionText); desc != "" {
		text += "\n" + desc
	}
	return text
}

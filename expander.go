// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import "strings"

// ExpanderPosition selects where the expanded information is shown.
type ExpanderPosition byte

const (
	ExpanderPositionAfterText   ExpanderPosition = iota // Below the content text.
	ExpanderPositionAfterFooter                         // Below the footer.
)

func (p ExpanderPosition) String() string {
	if p == ExpanderPositionAfterFooter {
		return "afterFooter"
	}
	return "afterText"
}

func (p *ExpanderPosition) UnmarshalText(text []byte) error {
	switch {
	case len(text) == 0, strings.EqualFold(string(text), "afterText"):
		*p = ExpanderPositionAfterText
	case strings.EqualFold(string(text), "afterFooter"):
		*p = ExpanderPositionAfterFooter
	default:
		return outOfRange("unknown expander position %q", text)
	}
	return nil
}

// Expander shows additional information that the user can expand or
// collapse. It is created only when its text is not empty.
type Expander struct {
	controlBase
	expandedChangedPublisher EventPublisher
	text                     string
	expandedButtonText       string
	collapsedButtonText      string
	boundText                string
	position                 ExpanderPosition
	expanded                 bool
}

func NewExpander(text string) *Expander {
	return &Expander{text: text}
}

func (e *Expander) Text() string {
	return e.text
}

// SetText sets the expanded information. It may be called while the page is
// shown, provided the expander was created.
func (e *Expander) SetText(text string) error {
	if err := e.denyIfBoundAndNotCreated("Text"); err != nil {
		return err
	}
	if d := e.liveDialog(); d != nil {
		if err := d.updateTextElement(tdeExpandedInformation, text); err != nil {
			return err
		}
	}
	e.text = text
	return nil
}

// ExpandedButtonText returns the label shown next to the expando button
// while expanded.
func (e *Expander) ExpandedButtonText() string {
	return e.expandedButtonText
}

func (e *Expander) SetExpandedButtonText(text string) error {
	if err := e.denyIfBound("ExpandedButtonText"); err != nil {
		return err
	}
	e.expandedButtonText = text
	return nil
}

// CollapsedButtonText returns the label shown next to the expando button
// while collapsed.
func (e *Expander) CollapsedButtonText() string {
	return e.collapsedButtonText
}

func (e *Expander) SetCollapsedButtonText(text string) error {
	if err := e.denyIfBound("CollapsedButtonText"); err != nil {
		return err
	}
	e.collapsedButtonText = text
	return nil
}

func (e *Expander) Expanded() bool {
	return e.expanded
}

// SetExpanded sets whether the expander is initially expanded. The native
// dialog cannot toggle the expander programmatically, so this fails while
// the page is bound.
func (e *Expander) SetExpanded(expanded bool) error {
	if err := e.denyIfBound("Expanded"); err != nil {
		return err
	}
	e.expanded = expanded
	return nil
}

func (e *Expander) Position() ExpanderPosition {
	return e.position
}

func (e *Expander) SetPosition(position ExpanderPosition) error {
	if err := e.denyIfBound("Position"); err != nil {
		return err
	}
	e.position = position
	return nil
}

// ExpandedChanged returns the event published after the user expanded or
// collapsed the expander.
func (e *Expander) ExpandedChanged() *Event {
	return e.expandedChangedPublisher.Event()
}

func (e *Expander) isCreatable() bool {
	return !isNativeTextEmpty(e.text)
}

func (e *Expander) bindFlags() (flags uint32) {
	e.boundText = e.text
	if e.expanded {
		flags |= tdfExpandedByDefault
	}
	if e.position == ExpanderPositionAfterFooter {
		flags |= tdfExpandFooterArea
	}
	return flags
}

func (e *Expander) applyInitialization(d *TaskDialog) {
	if e.text != e.boundText {
		logLiveUpdate("Expander.SetText", d.updateTextElement(tdeExpandedInformation, e.text))
	}
}

func (e *Expander) handleExpandoButtonClicked(expanded bool) {
	if e.expanded == expanded {
		return
	}
	e.expanded = expanded
	e.expandedChangedPublisher.Publish()
}

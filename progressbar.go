// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import "strings"

// ProgressBarState controls how the progress bar is displayed.
type ProgressBarState byte

const (
	ProgressBarStateNormal        ProgressBarState = iota // Determinate, green.
	ProgressBarStatePaused                                // Determinate, yellow.
	ProgressBarStateError                                 // Determinate, red.
	ProgressBarStateMarquee                               // Indeterminate, animated.
	ProgressBarStateMarqueePaused                         // Indeterminate, not animated.
	ProgressBarStateNone                                  // Not shown.
)

var progressBarStateNames = map[ProgressBarState]string{
	ProgressBarStateNormal:        "normal",
	ProgressBarStatePaused:        "paused",
	ProgressBarStateError:         "error",
	ProgressBarStateMarquee:       "marquee",
	ProgressBarStateMarqueePaused: "marqueePaused",
	ProgressBarStateNone:          "none",
}

func (s ProgressBarState) String() string {
	return progressBarStateNames[s]
}

func (s *ProgressBarState) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ProgressBarStateNormal
		return nil
	}
	for state, name := range progressBarStateNames {
		if strings.EqualFold(name, string(text)) {
			*s = state
			return nil
		}
	}
	return outOfRange("unknown progress bar state %q", text)
}

func (s ProgressBarState) isMarquee() bool {
	return s == ProgressBarStateMarquee || s == ProgressBarStateMarqueePaused
}

func (s ProgressBarState) nativeState() uintptr {
	switch s {
	case ProgressBarStatePaused:
		return pbstPaused
	case ProgressBarStateError:
		return pbstError
	default:
		return pbstNormal
	}
}

// Bounds of the progress bar range accepted by the native control.
const (
	ProgressBarMinimum = 0
	ProgressBarMaximum = 0xFFFF
)

const (
	defaultProgressBarMaximum = 100
	defaultMarqueeSpeed       = 0
)

// ProgressBar is the page's progress indicator. It is created unless its
// state is ProgressBarStateNone.
type ProgressBar struct {
	controlBase
	state        ProgressBarState
	minimum      int
	maximum      int
	value        int
	marqueeSpeed int
	boundMarquee bool
}

// NewProgressBar returns a progress bar in the given state with a range of
// 0 to 100.
func NewProgressBar(state ProgressBarState) *ProgressBar {
	return &ProgressBar{
		state:        state,
		maximum:      defaultProgressBarMaximum,
		marqueeSpeed: defaultMarqueeSpeed,
	}
}

func (pb *ProgressBar) State() ProgressBarState {
	return pb.state
}

// SetState changes the progress bar's state. While the page is bound the
// progress bar can neither be removed by switching to ProgressBarStateNone
// nor added if it was bound in that state.
func (pb *ProgressBar) SetState(state ProgressBarState) error {
	if state > ProgressBarStateNone {
		return outOfRange("invalid progress bar state %d", state)
	}
	if pb.boundPage != nil && state == ProgressBarStateNone {
		return invalidState("the progress bar cannot be removed while the page is bound")
	}
	if err := pb.denyIfBoundAndNotCreated("State"); err != nil {
		return err
	}

	if d := pb.liveDialog(); d != nil {
		if err := pb.sendState(d, pb.state, state); err != nil {
			return err
		}
	}
	pb.state = state
	return nil
}

func (pb *ProgressBar) sendState(d *TaskDialog, previous, state ProgressBarState) error {
	wasMarquee := previous.isMarquee()
	isMarquee := state.isMarquee()

	if wasMarquee != isMarquee {
		if err := d.switchProgressBarMode(isMarquee); err != nil {
			return err
		}
	}

	if isMarquee {
		return d.setProgressBarMarquee(state == ProgressBarStateMarquee, pb.marqueeSpeed)
	}

	if wasMarquee {
		// The native control forgets range and position when it leaves
		// marquee mode.
		if err := d.setProgressBarRange(pb.minimum, pb.maximum); err != nil {
			return err
		}
		if err := d.setProgressBarPosition(pb.value); err != nil {
			return err
		}
	}
	return d.setProgressBarState(state.nativeState())
}

func (pb *ProgressBar) Minimum() int {
	return pb.minimum
}

func (pb *ProgressBar) Maximum() int {
	return pb.maximum
}

// SetRange sets the minimum and maximum value. Both must lie within
// ProgressBarMinimum and ProgressBarMaximum, and minimum must not exceed
// maximum.
func (pb *ProgressBar) SetRange(minimum, maximum int) error {
	if err := checkProgressBarValue("minimum", minimum); err != nil {
		return err
	}
	if err := checkProgressBarValue("maximum", maximum); err != nil {
		return err
	}
	if minimum > maximum {
		return outOfRange("progress bar minimum %d exceeds maximum %d", minimum, maximum)
	}
	if err := pb.denyIfBoundAndNotCreated("Range"); err != nil {
		return err
	}

	if d := pb.liveDialog(); d != nil && !pb.state.isMarquee() {
		if err := d.setProgressBarRange(minimum, maximum); err != nil {
			return err
		}
	}
	pb.minimum, pb.maximum = minimum, maximum
	return nil
}

func (pb *ProgressBar) Value() int {
	return pb.value
}

func (pb *ProgressBar) SetValue(value int) error {
	if err := checkProgressBarValue("value", value); err != nil {
		return err
	}
	if err := pb.denyIfBoundAndNotCreated("Value"); err != nil {
		return err
	}

	if d := pb.liveDialog(); d != nil && !pb.state.isMarquee() {
		if err := d.setProgressBarPosition(value); err != nil {
			return err
		}
	}
	pb.value = value
	return nil
}

// MarqueeSpeed returns the time in milliseconds between marquee animation
// updates. 0 selects the native default.
func (pb *ProgressBar) MarqueeSpeed() int {
	return pb.marqueeSpeed
}

func (pb *ProgressBar) SetMarqueeSpeed(speed int) error {
	if speed < 0 {
		return outOfRange("negative marquee speed %d", speed)
	}
	if err := pb.denyIfBoundAndNotCreated("MarqueeSpeed"); err != nil {
		return err
	}

	if d := pb.liveDialog(); d != nil && pb.state == ProgressBarStateMarquee {
		if err := d.setProgressBarMarquee(true, speed); err != nil {
			return err
		}
	}
	pb.marqueeSpeed = speed
	return nil
}

func checkProgressBarValue(what string, v int) error {
	if v < ProgressBarMinimum || v > ProgressBarMaximum {
		return outOfRange("progress bar %s %d is outside %d..%d", what, v, ProgressBarMinimum, ProgressBarMaximum)
	}
	return nil
}

func (pb *ProgressBar) isCreatable() bool {
	return pb.state != ProgressBarStateNone
}

func (pb *ProgressBar) bindFlags() uint32 {
	pb.boundMarquee = pb.state.isMarquee()
	if pb.boundMarquee {
		return tdfShowMarqueeProgressBar
	}
	return tdfShowProgressBar
}

// applyInitialization brings the freshly created native progress bar, which
// starts in the mode chosen at bind time with a range of 0 to 100, position
// 0 and the normal state, in line with the cached values.
func (pb *ProgressBar) applyInitialization(d *TaskDialog) {
	if pb.state.isMarquee() != pb.boundMarquee {
		logLiveUpdate("ProgressBar.SetState", d.switchProgressBarMode(pb.state.isMarquee()))
	}

	if pb.state.isMarquee() {
		if pb.state == ProgressBarStateMarquee {
			logLiveUpdate("ProgressBar.SetState", d.setProgressBarMarquee(true, pb.marqueeSpeed))
		}
		return
	}

	if pb.minimum != 0 || pb.maximum != defaultProgressBarMaximum {
		logLiveUpdate("ProgressBar.SetRange", d.setProgressBarRange(pb.minimum, pb.maximum))
	}
	if pb.value != 0 {
		logLiveUpdate("ProgressBar.SetValue", d.setProgressBarPosition(pb.value))
	}
	if pb.state != ProgressBarStateNormal {
		logLiveUpdate("ProgressBar.SetState", d.setProgressBarState(pb.state.nativeState()))
	}
}

// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import "github.com/tailscale/win"

// TASKDIALOGCONFIG dwFlags.
const (
	tdfEnableHyperlinks         = 0x0001
	tdfUseHIconMain             = 0x0002
	tdfUseHIconFooter           = 0x0004
	tdfAllowDialogCancellation  = 0x0008
	tdfUseCommandLinks          = 0x0010
	tdfUseCommandLinksNoIcon    = 0x0020
	tdfExpandFooterArea         = 0x0040
	tdfExpandedByDefault        = 0x0080
	tdfVerificationFlagChecked  = 0x0100
	tdfShowProgressBar          = 0x0200
	tdfShowMarqueeProgressBar   = 0x0400
	tdfCallbackTimer            = 0x0800
	tdfPositionRelativeToWindow = 0x1000
	tdfRTLLayout                = 0x2000
	tdfNoDefaultRadioButton     = 0x4000
	tdfCanBeMinimized           = 0x8000
	tdfNoSetForeground          = 0x00010000
	tdfSizeToContent            = 0x01000000
	tdfLayoutFlags              = tdfUseHIconMain | tdfUseHIconFooter | tdfUseCommandLinks | tdfUseCommandLinksNoIcon | tdfExpandFooterArea | tdfShowProgressBar | tdfShowMarqueeProgressBar
)

// TASKDIALOGCONFIG dwCommonButtons.
const (
	tdcbfOKButton       = 0x0001
	tdcbfYesButton      = 0x0002
	tdcbfNoButton       = 0x0004
	tdcbfCancelButton   = 0x0008
	tdcbfRetryButton    = 0x0010
	tdcbfCloseButton    = 0x0020
	tdcbfAbortButton    = 0x00010000
	tdcbfIgnoreButton   = 0x00020000
	tdcbfTryAgainButton = 0x00040000
	tdcbfContinueButton = 0x00080000
	tdcbfHelpButton     = 0x00100000
)

// Notification codes delivered to the callback.
const (
	tdnCreated              = 0
	tdnNavigated            = 1
	tdnButtonClicked        = 2
	tdnHyperlinkClicked     = 3
	tdnTimer                = 4
	tdnDestroyed            = 5
	tdnRadioButtonClicked   = 6
	tdnDialogConstructed    = 7
	tdnVerificationClicked  = 8
	tdnHelp                 = 9
	tdnExpandoButtonClicked = 10
)

// Messages accepted by a task dialog window.
const (
	tdmNavigatePage               = win.WM_USER + 101
	tdmClickButton                = win.WM_USER + 102
	tdmSetMarqueeProgressBar      = win.WM_USER + 103
	tdmSetProgressBarState        = win.WM_USER + 104
	tdmSetProgressBarRange        = win.WM_USER + 105
	tdmSetProgressBarPos          = win.WM_USER + 106
	tdmSetProgressBarMarquee      = win.WM_USER + 107
	tdmSetElementText             = win.WM_USER + 108
	tdmClickRadioButton           = win.WM_USER + 110
	tdmEnableButton               = win.WM_USER + 111
	tdmEnableRadioButton          = win.WM_USER + 112
	tdmClickVerification          = win.WM_USER + 113
	tdmUpdateElementText          = win.WM_USER + 114
	tdmSetButtonElevationRequired = win.WM_USER + 115
	tdmUpdateIcon                 = win.WM_USER + 116
)

// TASKDIALOG_ELEMENTS
const (
	tdeContent             = 0
	tdeExpandedInformation = 1
	tdeFooter              = 2
	tdeMainInstruction     = 3
)

// TASKDIALOG_ICON_ELEMENTS
const (
	tdieIconMain   = 0
	tdieIconFooter = 1
)

// Progress bar states understood by PBM_SETSTATE.
const (
	pbstNormal = 0x0001
	pbstError  = 0x0002
	pbstPaused = 0x0003
)

// Callback return values.
const (
	sOK    = uintptr(0)
	sFalse = uintptr(1)
)

const (
	// firstCustomButtonID is the id assigned to the first custom button.
	// Everything below it belongs to the common button result codes.
	firstCustomButtonID = 100
	// firstRadioButtonID is the id assigned to the first radio button.
	firstRadioButtonID  = 1
)

// nativeEngine abstracts the comctl32 task dialog so that the binding and
// routing layers can be driven without a real window.
type nativeEngine interface {
	// callbackAddr returns the address stored in the config block's
	// pfCallback field.
	callbackAddr() uintptr
	// indirect runs the dialog described by the config block at config and
	// blocks until it closes, returning the id of the button that closed it.
	indirect(config uintptr) (buttonID int32, err error)
	// sendMessage sends msg to the task dialog window hwnd.
	sendMessage(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr
	// threadID returns the id of the calling OS thread.
	threadID() uint32
}

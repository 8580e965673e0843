// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"fmt"
	"unsafe"

	"github.com/dblohm7/wingoes"
	"github.com/tailscale/win"
	"golang.org/x/sys/windows"
)

var (
	modComctl32            = windows.NewLazySystemDLL("comctl32.dll")
	procTaskDialogIndirect = modComctl32.NewProc("TaskDialogIndirect")
)

// comctl32Engine drives the task dialog implemented by version 6 of the
// common controls. The executable must carry a manifest selecting that
// version, otherwise TaskDialogIndirect cannot be found.
type comctl32Engine struct{}

func (comctl32Engine) callbackAddr() uintptr {
	return taskDialogCallbackAddr()
}

func (comctl32Engine) indirect(config uintptr) (int32, error) {
	if err := procTaskDialogIndirect.Find(); err != nil {
		return 0, &NativeError{
			Op:  "TaskDialogIndirect",
			Err: fmt.Errorf("%w (is the application manifested for comctl32 v6?)", err),
		}
	}

	var button int32
	// The radio button and verification results are tracked through
	// notifications, so only the button is requested.
	hr, _, _ := procTaskDialogIndirect.Call(config, uintptr(unsafe.Pointer(&button)), 0, 0)
	if h := wingoes.HRESULT(hr); h < 0 {
		return 0, errorFromHRESULT("TaskDialogIndirect", h)
	}
	return button, nil
}

func (comctl32Engine) sendMessage(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	return win.SendMessage(hwnd, msg, wParam, lParam)
}

func (comctl32Engine) threadID() uint32 {
	return windows.GetCurrentThreadId()
}

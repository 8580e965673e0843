// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"fmt"
	"log"
	"runtime/debug"
	"sync"

	"github.com/tailscale/win"
	"golang.org/x/sys/windows"
)

// The native dialog passes lpCallbackData back to every invocation of the
// shared callback. Instead of a Go pointer, which must not be retained by
// native code, it carries a token that is resolved through this registry.
var (
	registryMu   sync.Mutex
	registry     = make(map[uintptr]*TaskDialog)
	lastToken    uintptr
	callbackOnce sync.Once
	callbackPtr  uintptr
)

// registerDialog returns a fresh token identifying d for the duration of one
// Show call.
func registerDialog(d *TaskDialog) uintptr {
	registryMu.Lock()
	defer registryMu.Unlock()

	for {
		lastToken++
		if lastToken == 0 {
			continue
		}
		if _, exists := registry[lastToken]; !exists {
			break
		}
	}
	registry[lastToken] = d
	return lastToken
}

func unregisterDialog(token uintptr) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, token)
}

func lookupDialog(token uintptr) *TaskDialog {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[token]
}

// taskDialogCallbackAddr returns the address of the PFTASKDIALOGCALLBACK
// shared by all dialogs of the process.
func taskDialogCallbackAddr() uintptr {
	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(taskDialogCallback)
	})
	return callbackPtr
}

func taskDialogCallback(hwnd win.HWND, msg uint32, wParam, lParam, refData uintptr) uintptr {
	defer recoverHandlerPanic(msg)

	return dispatchNotification(hwnd, msg, wParam, lParam, refData)
}

// dispatchNotification routes one notification to the dialog identified by
// refData.
func dispatchNotification(hwnd win.HWND, msg uint32, wParam, lParam, refData uintptr) uintptr {
	d := lookupDialog(refData)
	if d == nil {
		log.Printf("taskdialog - notification %d for unknown dialog token %d", msg, refData)
		return sOK
	}
	return d.handleNotification(hwnd, msg, wParam, lParam)
}

// handlerPanic carries a panic raised by an event handler out of the native
// callback.
type handlerPanic struct {
	notification uint32
	value        any
	stack        []byte
}

func (e *handlerPanic) Error() string {
	return fmt.Sprintf("taskdialog - panic while handling notification %d: %v\n%s", e.notification, e.value, e.stack)
}

func (e *handlerPanic) Unwrap() error {
	err, _ := e.value.(error)
	return err
}

// recoverHandlerPanic must be deferred by taskDialogCallback. comctl32 calls
// the callback from inside TaskDialogIndirect and a Go panic must not unwind
// through its frames, so the panic is raised again on a new goroutine, which
// ends the process with the handler's stack, and the dialog thread is parked.
func recoverHandlerPanic(notification uint32) {
	x := recover()
	if x == nil {
		return
	}

	// Inside the deferred call the stack still shows the panicking handler.
	go panic(&handlerPanic{notification: notification, value: x, stack: debug.Stack()})
	select {}
}

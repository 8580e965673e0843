// Copyright 2024 Tailscale Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows
// +build windows

package taskdialog

import (
	"strings"

	"github.com/tailscale/win"
	"golang.org/x/exp/constraints"
	"golang.org/x/sys/windows"
)

type iconKind byte

const (
	iconKindNone iconKind = iota
	iconKindStandard
	iconKindResource
	iconKindHandle
)

// Icon identifies the image shown next to the main instruction or the footer
// text. The zero value means no icon.
//
// An icon is either one of the standard icons, an icon resource of the
// current process's executable, or an icon handle owned by the caller. While
// a page is bound, its icons may be replaced only by icons of the same
// family: a handle by another handle, anything else by anything but a handle.
type Icon struct {
	kind  iconKind
	value uintptr
}

// Standard icons provided by the native task dialog.
var (
	IconNone                   = Icon{}
	IconWarning                = standardIcon(0xFFFF)
	IconError                  = standardIcon(0xFFFE)
	IconInformation            = standardIcon(0xFFFD)
	IconShield                 = standardIcon(0xFFFC)
	IconShieldBlueBar          = standardIcon(0xFFFB)
	IconShieldWarningYellowBar = standardIcon(0xFFFA)
	IconShieldErrorRedBar      = standardIcon(0xFFF9)
	IconShieldSuccessGreenBar  = standardIcon(0xFFF8)
	IconShieldGrayBar          = standardIcon(0xFFF7)
)

var iconNames = map[string]Icon{
	"none":                   IconNone,
	"warning":                IconWarning,
	"error":                  IconError,
	"information":            IconInformation,
	"shield":                 IconShield,
	"shieldBlueBar":          IconShieldBlueBar,
	"shieldWarningYellowBar": IconShieldWarningYellowBar,
	"shieldErrorRedBar":      IconShieldErrorRedBar,
	"shieldSuccessGreenBar":  IconShieldSuccessGreenBar,
	"shieldGrayBar":          IconShieldGrayBar,
}

func standardIcon(id uint16) Icon {
	return Icon{kind: iconKindStandard, value: uintptr(id)}
}

// IconFromHandle returns an Icon showing hIcon. The caller retains ownership
// of hIcon and must keep it valid while a dialog displays it.
func IconFromHandle(hIcon win.HICON) Icon {
	if hIcon == 0 {
		return IconNone
	}
	return Icon{kind: iconKindHandle, value: uintptr(hIcon)}
}

// IconFromResourceID returns an Icon showing the icon resource identified by
// id in the current process's executable binary.
func IconFromResourceID[ID constraints.Integer](id ID) Icon {
	return Icon{kind: iconKindResource, value: uintptr(uint16(id))}
}

// IsNone reports whether i means no icon.
func (i Icon) IsNone() bool {
	return i.kind == iconKindNone
}

// IsHandle reports whether i was created by IconFromHandle.
func (i Icon) IsHandle() bool {
	return i.kind == iconKindHandle
}

// Handle returns the icon handle for icons created by IconFromHandle, or 0.
func (i Icon) Handle() win.HICON {
	if i.kind != iconKindHandle {
		return 0
	}
	return win.HICON(i.value)
}

// nativeValue returns what goes into the icon union of TASKDIALOGCONFIG, or
// into the lParam of TDM_UPDATE_ICON.
func (i Icon) nativeValue() uintptr {
	return i.value
}

func (i Icon) needsModule() bool {
	return i.kind == iconKindResource
}

func (i *Icon) UnmarshalText(text []byte) error {
	for name, icon := range iconNames {
		if strings.EqualFold(name, string(text)) {
			*i = icon
			return nil
		}
	}
	return outOfRange("unknown icon %q", text)
}

// executableModule returns the module handle of the current process's
// executable, which resource icons are loaded from.
func executableModule() (uintptr, error) {
	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		return 0, &NativeError{Op: "GetModuleHandleEx", Err: err}
	}
	return uintptr(module), nil
}

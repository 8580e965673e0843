// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"github.com/tailscale/win"
	"golang.org/x/sys/windows"
)

// decodedButton is one TASKDIALOG_BUTTON read back from a config block.
type decodedButton struct {
	id   int32
	text string
}

// decodedConfig is a TASKDIALOGCONFIG read back from a config block. Text
// fields are nil when the block holds a null pointer.
type decodedConfig struct {
	fields        [configFieldCount]uintptr
	texts         map[configField]*string
	customButtons []decodedButton
	radioButtons  []decodedButton
}

var configTextFields = []configField{
	cfgTitle,
	cfgInstruction,
	cfgContent,
	cfgVerification,
	cfgExpandedInformation,
	cfgExpandedControlText,
	cfgCollapsedControlText,
	cfgFooter,
}

func (c *decodedConfig) text(f configField) string {
	if s := c.texts[f]; s != nil {
		return *s
	}
	return ""
}

func (c *decodedConfig) flags() uint32 {
	return uint32(c.fields[cfgFlags])
}

func readBytes(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

func readPtr(addr uintptr) uintptr {
	b := readBytes(addr, ptrSize)
	if ptrSize == 8 {
		return uintptr(binary.LittleEndian.Uint64(b))
	}
	return uintptr(binary.LittleEndian.Uint32(b))
}

func readUTF16(addr uintptr) string {
	var s16 []uint16
	for p := addr; ; p += 2 {
		c := binary.LittleEndian.Uint16(readBytes(p, 2))
		if c == 0 {
			break
		}
		s16 = append(s16, c)
	}
	return windows.UTF16ToString(s16)
}

// decodeConfig reads the TASKDIALOGCONFIG at addr by field offsets. If size
// is positive, every pointer is required to point into [addr, addr+size).
func decodeConfig(t testing.TB, addr uintptr, size int) *decodedConfig {
	t.Helper()

	require.Zero(t, addr%uintptr(ptrSize), "config block is not pointer aligned")

	c := &decodedConfig{texts: make(map[configField]*string)}
	for f := configField(0); f < configFieldCount; f++ {
		at := addr + uintptr(configFieldOffset(f))
		if configFieldIsPtr[f] {
			c.fields[f] = readPtr(at)
		} else {
			c.fields[f] = uintptr(binary.LittleEndian.Uint32(readBytes(at, 4)))
		}
	}

	checkInside := func(p uintptr) {
		require.GreaterOrEqual(t, p, addr+uintptr(configHeaderSize), "pointer into the header")
		if size > 0 {
			require.Less(t, p, addr+uintptr(size), "pointer outside the config block")
		}
	}

	for _, f := range configTextFields {
		p := c.fields[f]
		if p == 0 {
			continue
		}
		checkInside(p)
		s := readUTF16(p)
		c.texts[f] = &s
	}

	readButtons := func(array uintptr, count uintptr) []decodedButton {
		if count == 0 {
			require.Zero(t, array, "button array without buttons")
			return nil
		}
		checkInside(array)
		buttons := make([]decodedButton, count)
		for i := range buttons {
			rec := array + uintptr(i*buttonRecordSize)
			textPtr := readPtr(rec + 4)
			checkInside(textPtr)
			buttons[i] = decodedButton{
				id:   int32(binary.LittleEndian.Uint32(readBytes(rec, 4))),
				text: readUTF16(textPtr),
			}
		}
		return buttons
	}
	c.customButtons = readButtons(c.fields[cfgButtons], c.fields[cfgButtonCount])
	c.radioButtons = readButtons(c.fields[cfgRadioButtons], c.fields[cfgRadioButtonCount])

	return c
}

type sentMessage struct {
	msg    uint32
	wParam uintptr
	lParam uintptr
	text   string // payload of TDM_SET_ELEMENT_TEXT
}

const fakeHWND = win.HWND(0x1234)

// fakeEngine stands in for comctl32. It decodes every config block it
// receives and drives the real notification dispatch.
type fakeEngine struct {
	t testing.TB

	hwnd   win.HWND
	token  uintptr
	thread uint32

	// script runs between TDN_CREATED and TDN_DESTROYED, as if the user
	// interacted with the dialog.
	script func(f *fakeEngine)
	// err makes indirect fail before any notification.
	err error

	configs  []*decodedConfig
	messages []sentMessage
	closed   bool
	result   int32
	inCall   bool
}

func newFakeEngine(t testing.TB, script func(f *fakeEngine)) *fakeEngine {
	return &fakeEngine{t: t, hwnd: fakeHWND, thread: 1, script: script}
}

func newFakeDialog(t testing.TB, script func(f *fakeEngine)) (*TaskDialog, *fakeEngine) {
	f := newFakeEngine(t, script)
	return newTaskDialogWithEngine(f), f
}

func (f *fakeEngine) callbackAddr() uintptr {
	return 0xC0DE
}

func (f *fakeEngine) threadID() uint32 {
	return f.thread
}

func (f *fakeEngine) lastConfig() *decodedConfig {
	require.NotEmpty(f.t, f.configs)
	return f.configs[len(f.configs)-1]
}

func (f *fakeEngine) decode(addr uintptr) *decodedConfig {
	c := decodeConfig(f.t, addr, 0)
	require.Equal(f.t, uintptr(configHeaderSize), c.fields[cfgSize])
	require.Equal(f.t, uintptr(0xC0DE), c.fields[cfgCallback])
	f.configs = append(f.configs, c)
	return c
}

func (f *fakeEngine) indirect(config uintptr) (int32, error) {
	if f.err != nil {
		return 0, f.err
	}

	c := f.decode(config)
	f.token = c.fields[cfgCallbackData]
	f.closed = false
	f.result = 0
	f.inCall = true
	defer func() { f.inCall = false }()

	f.notify(tdnDialogConstructed, 0, 0)
	f.notify(tdnCreated, 0, 0)
	if f.script != nil {
		f.script(f)
	}
	if !f.closed {
		f.t.Fatalf("script ended without closing the dialog")
	}
	f.notify(tdnDestroyed, 0, 0)
	return f.result, nil
}

func (f *fakeEngine) notify(code uint32, wParam, lParam uintptr) uintptr {
	return dispatchNotification(f.hwnd, code, wParam, lParam, f.token)
}

// click simulates the user clicking the button with id. It returns whether
// the dialog closed.
func (f *fakeEngine) click(id int32) bool {
	if f.closed {
		return true
	}
	if f.notify(tdnButtonClicked, uintptr(id), 0) == sOK {
		f.closed = true
		f.result = id
	}
	return f.closed
}

func (f *fakeEngine) sendMessage(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	require.Equal(f.t, f.hwnd, hwnd)

	m := sentMessage{msg: msg, wParam: wParam, lParam: lParam}
	if msg == tdmSetElementText {
		m.text = readUTF16(lParam)
	}
	f.messages = append(f.messages, m)

	switch msg {
	case tdmClickButton:
		f.click(int32(wParam))
	case tdmClickRadioButton:
		f.notify(tdnRadioButtonClicked, wParam, 0)
	case tdmClickVerification:
		f.notify(tdnVerificationClicked, wParam, 0)
	case tdmNavigatePage:
		f.decode(lParam)
		f.notify(tdnNavigated, 0, 0)
	}
	return 0
}

// sent returns the messages of type msg in the order they were sent.
func (f *fakeEngine) sent(msg uint32) []sentMessage {
	var result []sentMessage
	for _, m := range f.messages {
		if m.msg == msg {
			result = append(result, m)
		}
	}
	return result
}

// sentCodes returns the message codes sent since index from.
func (f *fakeEngine) sentCodes(from int) []uint32 {
	var result []uint32
	for _, m := range f.messages[from:] {
		result = append(result, m.msg)
	}
	return result
}

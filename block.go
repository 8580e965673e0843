// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/tailscale/win"
	"golang.org/x/exp/constraints"
	"golang.org/x/sys/windows"
)

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// LMEM_FIXED | LMEM_ZEROINIT
const lptr = 0x0040

// configField enumerates the fields of TASKDIALOGCONFIG in declaration order.
// The struct is declared with 1-byte packing, so every field immediately
// follows its predecessor.
type configField int

const (
	cfgSize configField = iota
	cfgParent
	cfgInstance
	cfgFlags
	cfgCommonButtons
	cfgTitle
	cfgMainIcon
	cfgInstruction
	cfgContent
	cfgButtonCount
	cfgButtons
	cfgDefaultButton
	cfgRadioButtonCount
	cfgRadioButtons
	cfgDefaultRadioButton
	cfgVerification
	cfgExpandedInformation
	cfgExpandedControlText
	cfgCollapsedControlText
	cfgFooterIcon
	cfgFooter
	cfgCallback
	cfgCallbackData
	cfgWidth
	configFieldCount
)

// configFieldIsPtr reports which fields are pointer sized; all others are 32
// bits wide.
var configFieldIsPtr = [configFieldCount]bool{
	cfgParent:               true,
	cfgInstance:             true,
	cfgTitle:                true,
	cfgMainIcon:             true,
	cfgInstruction:          true,
	cfgContent:              true,
	cfgButtons:              true,
	cfgRadioButtons:         true,
	cfgVerification:         true,
	cfgExpandedInformation:  true,
	cfgExpandedControlText:  true,
	cfgCollapsedControlText: true,
	cfgFooterIcon:           true,
	cfgFooter:               true,
	cfgCallback:             true,
	cfgCallbackData:         true,
}

func configFieldSize(f configField) int {
	if configFieldIsPtr[f] {
		return ptrSize
	}
	return 4
}

// configFieldOffset returns the byte offset of f within TASKDIALOGCONFIG.
func configFieldOffset(f configField) (offset int) {
	for i := configField(0); i < f; i++ {
		offset += configFieldSize(i)
	}
	return offset
}

// configHeaderSize is sizeof(TASKDIALOGCONFIG).
var configHeaderSize = configFieldOffset(configFieldCount)

// buttonRecordSize is sizeof(TASKDIALOG_BUTTON): an int32 id followed by a
// string pointer, packed.
var buttonRecordSize = 4 + ptrSize

// alignment must be a power of 2
func alignUp[V constraints.Integer](v V, alignment int) V {
	return v + ((-v) & (V(alignment) - 1))
}

type blockItemKind byte

const (
	itemPadding blockItemKind = iota
	itemText
	itemButtons
)

type plannedButton struct {
	id   int32
	text int // reference to an itemText
}

type blockItem struct {
	kind    blockItemKind
	offset  int
	size    int
	text    []uint16
	buttons []plannedButton
}

// configValue is the planned value of a header field: either a raw value or,
// when ref is non-zero, the address of the item ref-1 inside the block.
type configValue struct {
	raw uintptr
	ref int
}

// configPlan is the first pass of serialization. It fixes the offset of
// every item following the header and the total size of the block.
type configPlan struct {
	fields [configFieldCount]configValue
	items  []blockItem
	size   int
}

func newConfigPlan() *configPlan {
	pl := &configPlan{size: configHeaderSize}
	pl.align()
	return pl
}

func (pl *configPlan) add(item blockItem) int {
	item.offset = pl.size
	pl.items = append(pl.items, item)
	pl.size += item.size
	return len(pl.items)
}

func (pl *configPlan) align() {
	if padding := alignUp(pl.size, ptrSize) - pl.size; padding > 0 {
		pl.add(blockItem{kind: itemPadding, size: padding})
	}
}

// addText plans s as a NUL-terminated UTF-16 string and returns a reference
// to it, or 0 if s is empty, which the native dialog reads as no text.
func (pl *configPlan) addText(s string) (int, error) {
	s = nativeText(s)
	if s == "" {
		return 0, nil
	}
	s16, err := windows.UTF16FromString(s)
	if err != nil {
		return 0, err
	}
	return pl.add(blockItem{kind: itemText, size: len(s16) * 2, text: s16}), nil
}

type buttonSource struct {
	id   int32
	text string
}

// addButtons plans an array of TASKDIALOG_BUTTON followed by the buttons'
// texts and returns a reference to the array, or 0 if buttons is empty.
func (pl *configPlan) addButtons(buttons []buttonSource) (int, error) {
	if len(buttons) == 0 {
		return 0, nil
	}

	array := pl.add(blockItem{kind: itemButtons, size: len(buttons) * buttonRecordSize})
	pl.align()

	planned := make([]plannedButton, len(buttons))
	for i, b := range buttons {
		ref, err := pl.addText(b.text)
		if err != nil {
			return 0, err
		}
		if ref == 0 {
			return 0, invalidState("button %d has no text", b.id)
		}
		planned[i] = plannedButton{id: b.id, text: ref}
	}
	pl.items[array-1].buttons = planned
	pl.align()
	return array, nil
}

func (pl *configPlan) set(f configField, raw uintptr) {
	pl.fields[f] = configValue{raw: raw}
}

func (pl *configPlan) setRef(f configField, ref int) {
	pl.fields[f] = configValue{ref: ref}
}

func (pl *configPlan) setText(f configField, s string) error {
	ref, err := pl.addText(s)
	if err != nil {
		return err
	}
	pl.setRef(f, ref)
	return nil
}

// configParams carries the parts of TASKDIALOGCONFIG that do not come from
// the page.
type configParams struct {
	owner        win.HWND
	flags        uint32
	callback     uintptr
	callbackData uintptr
}

// planConfig lays out the config block for p, which must be bound.
func planConfig(p *Page, params configParams) (*configPlan, error) {
	pl := newConfigPlan()

	var instance uintptr
	needsModule := p.icon.needsModule() || (p.footer != nil && p.footer.created && p.footer.icon.needsModule())
	if needsModule {
		module, err := executableModule()
		if err != nil {
			return nil, err
		}
		instance = module
	}

	pl.set(cfgSize, uintptr(configHeaderSize))
	pl.set(cfgParent, uintptr(params.owner))
	pl.set(cfgInstance, instance)
	pl.set(cfgFlags, uintptr(p.boundFlags|params.flags))
	pl.set(cfgCommonButtons, uintptr(p.boundButtons))
	pl.set(cfgMainIcon, p.icon.nativeValue())
	pl.set(cfgDefaultButton, uintptr(uint32(p.defaultButtonID)))
	pl.set(cfgDefaultRadioButton, uintptr(uint32(p.defaultRadioID)))
	pl.set(cfgCallback, params.callback)
	pl.set(cfgCallbackData, params.callbackData)
	pl.set(cfgWidth, uintptr(p.width))

	var footerText, expandedInformation, expandedLabel, collapsedLabel, verification string
	if f := p.footer; f != nil && f.created {
		footerText = f.text
		pl.set(cfgFooterIcon, f.icon.nativeValue())
	}
	if e := p.expander; e != nil && e.created {
		expandedInformation = e.text
		expandedLabel = e.expandedButtonText
		collapsedLabel = e.collapsedButtonText
	}
	if cb := p.checkBox; cb != nil && cb.created {
		verification = cb.text
	}

	texts := []struct {
		field configField
		text  string
	}{
		{cfgTitle, p.caption},
		{cfgInstruction, p.heading},
		{cfgContent, p.text},
		{cfgFooter, footerText},
		{cfgExpandedInformation, expandedInformation},
		{cfgExpandedControlText, expandedLabel},
		{cfgCollapsedControlText, collapsedLabel},
		{cfgVerification, verification},
	}
	for _, t := range texts {
		if err := pl.setText(t.field, t.text); err != nil {
			return nil, err
		}
	}
	pl.align()

	var customButtons []buttonSource
	for _, b := range p.customButtons.items {
		if b.created {
			customButtons = append(customButtons, buttonSource{id: b.id, text: b.resultingText(p.customButtonStyle)})
		}
	}
	ref, err := pl.addButtons(customButtons)
	if err != nil {
		return nil, err
	}
	pl.setRef(cfgButtons, ref)
	pl.set(cfgButtonCount, uintptr(len(customButtons)))

	var radioButtons []buttonSource
	for _, rb := range p.radioButtons.items {
		radioButtons = append(radioButtons, buttonSource{id: rb.id, text: rb.text})
	}
	if ref, err = pl.addButtons(radioButtons); err != nil {
		return nil, err
	}
	pl.setRef(cfgRadioButtons, ref)
	pl.set(cfgRadioButtonCount, uintptr(len(radioButtons)))

	return pl, nil
}

// configBlock is a serialized TASKDIALOGCONFIG together with everything it
// points to, in a single allocation.
type configBlock struct {
	mem  uintptr // as returned by LocalAlloc
	addr uintptr // pointer-aligned start of the TASKDIALOGCONFIG
	size int
}

func (b *configBlock) free() {
	if b == nil || b.mem == 0 {
		return
	}
	windows.LocalFree(windows.Handle(b.mem))
	b.mem, b.addr = 0, 0
}

func (pl *configPlan) resolve(base uintptr, v configValue) uintptr {
	if v.ref == 0 {
		return v.raw
	}
	return base + uintptr(pl.items[v.ref-1].offset)
}

// build is the second pass of serialization: it allocates the block and
// writes the header and every planned item, verifying that each lands on the
// offset computed by the plan.
func (pl *configPlan) build() (block *configBlock, err error) {
	mem, err := windows.LocalAlloc(lptr, uint32(pl.size+ptrSize-1))
	if err != nil {
		return nil, &NativeError{Op: "LocalAlloc", Err: err}
	}

	block = &configBlock{mem: mem, addr: alignUp(mem, ptrSize), size: pl.size}
	ok := false
	defer func() {
		if !ok {
			block.free()
			block = nil
		}
	}()

	bufBytes := unsafe.Slice((*byte)(unsafe.Pointer(block.addr)), pl.size)[:0]
	buf := bytes.NewBuffer(bufBytes)

	for f := configField(0); f < configFieldCount; f++ {
		v := pl.resolve(block.addr, pl.fields[f])
		if configFieldIsPtr[f] {
			err = writePtr(buf, v)
		} else {
			err = binary.Write(buf, binary.LittleEndian, uint32(v))
		}
		if err != nil {
			return nil, err
		}
	}

	for i, item := range pl.items {
		if buf.Len() != item.offset {
			return nil, fmt.Errorf("config block item %d at offset %d, planned %d", i, buf.Len(), item.offset)
		}

		switch item.kind {
		case itemPadding:
			_, err = buf.Write(make([]byte, item.size))

		case itemText:
			err = binary.Write(buf, binary.LittleEndian, item.text)

		case itemButtons:
			for _, b := range item.buttons {
				if err = binary.Write(buf, binary.LittleEndian, b.id); err != nil {
					break
				}
				if err = writePtr(buf, pl.resolve(block.addr, configValue{ref: b.text})); err != nil {
					break
				}
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if buf.Len() != pl.size {
		return nil, fmt.Errorf("config block is %d bytes, planned %d", buf.Len(), pl.size)
	}
	if written := buf.Bytes(); uintptr(unsafe.Pointer(unsafe.SliceData(written))) != block.addr {
		return nil, fmt.Errorf("config block was written outside its allocation")
	}

	ok = true
	return block, nil
}

func writePtr(buf *bytes.Buffer, v uintptr) error {
	if ptrSize == 8 {
		return binary.Write(buf, binary.LittleEndian, uint64(v))
	}
	return binary.Write(buf, binary.LittleEndian, uint32(v))
}

// buildConfig plans and builds the config block for the bound page p.
func buildConfig(p *Page, params configParams) (*configBlock, error) {
	pl, err := planConfig(p, params)
	if err != nil {
		return nil, err
	}
	return pl.build()
}

// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigHeaderLayout(t *testing.T) {
	if ptrSize != 8 {
		t.Skip("offsets are checked for 64-bit builds")
	}

	assert.Equal(t, 160, configHeaderSize)
	offsets := map[configField]int{
		cfgParent:             4,
		cfgInstance:           12,
		cfgFlags:              20,
		cfgCommonButtons:      24,
		cfgTitle:              28,
		cfgMainIcon:           36,
		cfgContent:            52,
		cfgButtonCount:        60,
		cfgButtons:            64,
		cfgDefaultButton:      72,
		cfgRadioButtons:       80,
		cfgDefaultRadioButton: 88,
		cfgVerification:       92,
		cfgFooterIcon:         124,
		cfgFooter:             132,
		cfgCallback:           140,
		cfgCallbackData:       148,
		cfgWidth:              156,
	}
	for f, want := range offsets {
		assert.Equal(t, want, configFieldOffset(f), "field %d", f)
	}
	assert.Equal(t, 12, buttonRecordSize)
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 0, alignUp(0, 8))
	assert.Equal(t, 8, alignUp(1, 8))
	assert.Equal(t, 8, alignUp(8, 8))
	assert.Equal(t, uintptr(24), alignUp(uintptr(17), 8))
}

func buildBoundPage(t *testing.T, p *Page, params configParams) (*configPlan, *configBlock) {
	t.Helper()

	require.NoError(t, p.validate(nil))
	p.bind(nil)
	t.Cleanup(p.unbind)

	pl, err := planConfig(p, params)
	require.NoError(t, err)
	block, err := pl.build()
	require.NoError(t, err)
	t.Cleanup(block.free)
	return pl, block
}

func TestConfigBlockRoundTrip(t *testing.T) {
	p := NewPage("Save changes?")
	require.NoError(t, p.SetCaption("Editor"))
	require.NoError(t, p.SetText("Your document has unsaved changes."))
	require.NoError(t, p.SetIcon(IconWarning))
	require.NoError(t, p.SetWidth(300))

	save, err := p.CustomButtons().Add("Save")
	require.NoError(t, err)
	require.NoError(t, save.SetDefaultButton(true))
	_, err = p.CustomButtons().Add("Don't save")
	require.NoError(t, err)
	_, err = p.CommonButtons().Add(ResultCancel)
	require.NoError(t, err)

	r, err := p.RadioButtons().Add("Keep a backup")
	require.NoError(t, err)
	require.NoError(t, r.SetChecked(true))
	_, err = p.RadioButtons().Add("Overwrite")
	require.NoError(t, err)

	require.NoError(t, p.SetCheckBox(NewCheckBox("Always save")))
	e := NewExpander("More text")
	require.NoError(t, e.SetExpandedButtonText("Hide"))
	require.NoError(t, e.SetCollapsedButtonText("Show"))
	require.NoError(t, p.SetExpander(e))
	require.NoError(t, p.SetFooter(NewFooter("Footer")))

	pl, block := buildBoundPage(t, p, configParams{owner: 0x55, callback: 0xC0DE, callbackData: 9})
	assert.Zero(t, block.addr%uintptr(ptrSize))
	assert.Zero(t, pl.size%ptrSize, "the block ends aligned")

	c := decodeConfig(t, block.addr, pl.size)

	assert.Equal(t, uintptr(configHeaderSize), c.fields[cfgSize])
	assert.Equal(t, uintptr(0x55), c.fields[cfgParent])
	assert.Zero(t, c.fields[cfgInstance])
	assert.Equal(t, uintptr(tdcbfCancelButton), c.fields[cfgCommonButtons])
	assert.Equal(t, IconWarning.nativeValue(), c.fields[cfgMainIcon])
	assert.Equal(t, uintptr(100), c.fields[cfgDefaultButton])
	assert.Equal(t, uintptr(1), c.fields[cfgDefaultRadioButton])
	assert.Equal(t, uintptr(0xC0DE), c.fields[cfgCallback])
	assert.Equal(t, uintptr(9), c.fields[cfgCallbackData])
	assert.Equal(t, uintptr(300), c.fields[cfgWidth])

	assert.Equal(t, "Editor", c.text(cfgTitle))
	assert.Equal(t, "Save changes?", c.text(cfgInstruction))
	assert.Equal(t, "Your document has unsaved changes.", c.text(cfgContent))
	assert.Equal(t, "Always save", c.text(cfgVerification))
	assert.Equal(t, "More text", c.text(cfgExpandedInformation))
	assert.Equal(t, "Hide", c.text(cfgExpandedControlText))
	assert.Equal(t, "Show", c.text(cfgCollapsedControlText))
	assert.Equal(t, "Footer", c.text(cfgFooter))

	assert.Equal(t, []decodedButton{{100, "Save"}, {101, "Don't save"}}, c.customButtons)
	assert.Equal(t, []decodedButton{{1, "Keep a backup"}, {2, "Overwrite"}}, c.radioButtons)
}

func TestConfigBlockNullStrings(t *testing.T) {
	p := NewPage("")
	require.NoError(t, p.SetText("\x00ignored"))
	// Not created, so nothing of it is serialized.
	require.NoError(t, p.SetCheckBox(NewCheckBox("")))

	pl, block := buildBoundPage(t, p, configParams{})
	c := decodeConfig(t, block.addr, pl.size)

	for _, f := range configTextFields {
		assert.Zero(t, c.fields[f], "field %d must be a null pointer", f)
		assert.Nil(t, c.texts[f])
	}
	assert.Zero(t, c.fields[cfgButtons])
	assert.Zero(t, c.fields[cfgButtonCount])
	assert.Zero(t, c.fields[cfgRadioButtons])
	assert.Equal(t, alignUp(configHeaderSize, ptrSize), pl.size)
}

func TestConfigBlockTextIsExact(t *testing.T) {
	p := NewPage("héllo wörld ☃")
	pl, block := buildBoundPage(t, p, configParams{})

	ptr := readPtr(block.addr + uintptr(configFieldOffset(cfgInstruction)))
	// Every rune is in the BMP, so each takes one UTF-16 unit, plus the NUL.
	wantBytes := (len([]rune("héllo wörld ☃")) + 1) * 2
	assert.Equal(t, "héllo wörld ☃", readUTF16(ptr))
	assert.Equal(t, []byte{0, 0}, readBytes(ptr+uintptr(wantBytes-2), 2))
	assert.LessOrEqual(t, int(ptr-block.addr)+wantBytes, pl.size)
}

func TestConfigBlockCommandLinks(t *testing.T) {
	p := NewPage("")
	require.NoError(t, p.SetCustomButtonStyle(CustomButtonStyleCommandLinks))
	b, err := p.CustomButtons().Add("A")
	require.NoError(t, err)
	require.NoError(t, b.SetDescriptionText("desc"))
	hidden, err := p.CustomButtons().Add("hidden")
	require.NoError(t, err)
	require.NoError(t, hidden.SetVisible(false))

	pl, block := buildBoundPage(t, p, configParams{})
	c := decodeConfig(t, block.addr, pl.size)

	assert.Equal(t, []decodedButton{{100, "A\ndesc"}}, c.customButtons, "hidden buttons are not serialized")
	assert.NotZero(t, c.flags()&tdfUseCommandLinks)
}

func TestConfigPlanOffsetsAreAligned(t *testing.T) {
	p := newButtonsPage(t, 3, 2)
	require.NoError(t, p.SetCaption("odd"))

	pl, _ := buildBoundPage(t, p, configParams{})
	for _, item := range pl.items {
		if item.kind == itemButtons {
			assert.Zero(t, item.offset%ptrSize, "button arrays start aligned")
		}
	}
	last := pl.items[len(pl.items)-1]
	assert.Equal(t, pl.size, last.offset+last.size)
}

func TestConfigBlockFree(t *testing.T) {
	p := NewPage("x")
	require.NoError(t, p.validate(nil))
	p.bind(nil)
	defer p.unbind()

	block, err := buildConfig(p, configParams{})
	require.NoError(t, err)
	require.NotZero(t, block.mem)

	block.free()
	assert.Zero(t, block.mem)
	assert.Zero(t, block.addr)
	block.free()
}

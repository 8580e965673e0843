// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package declarative

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wuc656/taskdialog"
)

const yamlPage = `
caption: Editor
heading: Save changes?
text: Your document has unsaved changes.
icon: warning
customButtonStyle: commandLinks
allowCancel: true
commonButtons:
  - result: cancel
customButtons:
  - text: Save
    descriptionText: Write the changes to disk.
    default: true
  - text: Don't save
    showShieldIcon: true
radioButtons:
  - text: Keep a backup
    checked: true
  - text: Overwrite
    disabled: true
checkBox:
  text: Always save
expander:
  text: The file is stored on a network share.
  expandedButtonText: Hide details
  collapsedButtonText: Show details
  position: afterFooter
footer:
  text: Changes are kept for 30 days.
  icon: information
progressBar:
  state: paused
  maximum: 200
  value: 50
`

const tomlPage = `
caption = "Editor"
heading = "Save changes?"
text = "Your document has unsaved changes."
icon = "warning"
customButtonStyle = "commandLinks"
allowCancel = true

[[commonButtons]]
result = "cancel"

[[customButtons]]
text = "Save"
descriptionText = "Write the changes to disk."
default = true

[[customButtons]]
text = "Don't save"
showShieldIcon = true

[[radioButtons]]
text = "Keep a backup"
checked = true

[[radioButtons]]
text = "Overwrite"
disabled = true

[checkBox]
text = "Always save"

[expander]
text = "The file is stored on a network share."
expandedButtonText = "Hide details"
collapsedButtonText = "Show details"
position = "afterFooter"

[footer]
text = "Changes are kept for 30 days."
icon = "information"

[progressBar]
state = "paused"
maximum = 200
value = 50
`

func checkParsedPage(t *testing.T, tdp TaskDialogPage) {
	t.Helper()

	assert.Equal(t, "Editor", tdp.Caption)
	assert.Equal(t, taskdialog.IconWarning, tdp.Icon)
	assert.Equal(t, taskdialog.CustomButtonStyleCommandLinks, tdp.CustomButtonStyle)
	require.Len(t, tdp.CommonButtons, 1)
	assert.Equal(t, taskdialog.ResultCancel, tdp.CommonButtons[0].Result)

	p, err := tdp.Create()
	require.NoError(t, err)

	assert.Equal(t, "Save changes?", p.Heading())
	assert.Equal(t, "Your document has unsaved changes.", p.Text())
	assert.True(t, p.AllowCancel())

	require.Equal(t, 2, p.CustomButtons().Len())
	save := p.CustomButtons().At(0)
	assert.Equal(t, "Write the changes to disk.", save.DescriptionText())
	assert.True(t, save.DefaultButton())
	assert.True(t, p.CustomButtons().At(1).ShowShieldIcon())
	assert.NotNil(t, p.CommonButtons().Get(taskdialog.ResultCancel))

	require.Equal(t, 2, p.RadioButtons().Len())
	assert.True(t, p.RadioButtons().At(0).Checked())
	assert.False(t, p.RadioButtons().At(1).Enabled())

	require.NotNil(t, p.CheckBox())
	assert.Equal(t, "Always save", p.CheckBox().Text())

	require.NotNil(t, p.Expander())
	assert.Equal(t, taskdialog.ExpanderPositionAfterFooter, p.Expander().Position())
	assert.Equal(t, "Show details", p.Expander().CollapsedButtonText())

	require.NotNil(t, p.Footer())
	assert.Equal(t, taskdialog.IconInformation, p.Footer().Icon())

	pb := p.ProgressBar()
	require.NotNil(t, pb)
	assert.Equal(t, taskdialog.ProgressBarStatePaused, pb.State())
	assert.Equal(t, 200, pb.Maximum())
	assert.Equal(t, 50, pb.Value())
}

func TestParseYAML(t *testing.T) {
	tdp, err := ParseYAML([]byte(yamlPage))
	require.NoError(t, err)
	checkParsedPage(t, tdp)
}

func TestParseTOML(t *testing.T) {
	tdp, err := ParseTOML([]byte(tomlPage))
	require.NoError(t, err)
	checkParsedPage(t, tdp)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := ParseYAML([]byte("heading: x\ncolour: red\n"))
	assert.Error(t, err)

	_, err = ParseTOML([]byte("heading = \"x\"\ncolour = \"red\"\n"))
	assert.Error(t, err)
}

func TestParseRejectsUnknownValues(t *testing.T) {
	_, err := ParseYAML([]byte("icon: sparkles\n"))
	assert.ErrorIs(t, err, taskdialog.ErrArgumentOutOfRange)

	_, err = ParseYAML([]byte("commonButtons:\n  - result: maybe\n"))
	assert.ErrorIs(t, err, taskdialog.ErrArgumentOutOfRange)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"page.yaml": yamlPage,
		"page.YML":  yamlPage,
		"page.toml": tomlPage,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		tdp, err := LoadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, "Save changes?", tdp.Heading, name)
	}

	_, err := LoadFile(filepath.Join(dir, "page.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreateAttachesHandlersAndAssigns(t *testing.T) {
	var (
		page     *taskdialog.Page
		button   *taskdialog.CustomButton
		common   *taskdialog.CommonButton
		radio    *taskdialog.RadioButton
		checkBox *taskdialog.CheckBox
		expander *taskdialog.Expander
		footer   *taskdialog.Footer
		progress *taskdialog.ProgressBar
	)

	tdp := TaskDialogPage{
		Heading:       "heading",
		CommonButtons: []CommonButton{{Result: taskdialog.ResultOK, KeepOpen: true, AssignTo: &common}},
		CustomButtons: []CustomButton{{Text: "Go", Hidden: true, AssignTo: &button}},
		RadioButtons:  []RadioButton{{Text: "One", AssignTo: &radio}},
		CheckBox:      &CheckBox{Text: "Check", Checked: true, AssignTo: &checkBox},
		Expander:      &Expander{Text: "More", Expanded: true, AssignTo: &expander},
		Footer:        &Footer{Text: "Footer", AssignTo: &footer},
		ProgressBar:   &ProgressBar{State: taskdialog.ProgressBarStateMarquee, AssignTo: &progress},
		OnCreated:     func() {},
		AssignTo:      &page,
	}

	p, err := tdp.Create()
	require.NoError(t, err)

	assert.Same(t, p, page)
	assert.Same(t, p.CustomButtons().At(0), button)
	assert.False(t, button.Visible())
	assert.Same(t, p.CommonButtons().Get(taskdialog.ResultOK), common)
	assert.False(t, common.AllowCloseDialog())
	assert.Same(t, p.RadioButtons().At(0), radio)
	assert.Same(t, p.CheckBox(), checkBox)
	assert.True(t, checkBox.Checked())
	assert.Same(t, p.Expander(), expander)
	assert.True(t, expander.Expanded())
	assert.Same(t, p.Footer(), footer)
	assert.Same(t, p.ProgressBar(), progress)
	assert.Equal(t, 100, progress.Maximum(), "a zero maximum keeps the default")
}

func TestCreateReportsInvalidPages(t *testing.T) {
	tdp := TaskDialogPage{
		CommonButtons: []CommonButton{{Result: taskdialog.ResultYes}, {Result: taskdialog.ResultYes}},
	}
	_, err := tdp.Create()
	assert.ErrorIs(t, err, taskdialog.ErrInvalidState)

	tdp = TaskDialogPage{
		ProgressBar: &ProgressBar{Maximum: 70000},
	}
	_, err = tdp.Create()
	assert.ErrorIs(t, err, taskdialog.ErrArgumentOutOfRange)
}

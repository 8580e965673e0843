// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package declarative

import (
	"github.com/wuc656/taskdialog"
)

type TaskDialogPage struct {
	Caption           string                       `yaml:"caption" toml:"caption"`
	Heading           string                       `yaml:"heading" toml:"heading"`
	Text              string                       `yaml:"text" toml:"text"`
	Icon              taskdialog.Icon              `yaml:"icon" toml:"icon"`
	Width             uint32                       `yaml:"width" toml:"width"`
	CustomButtonStyle taskdialog.CustomButtonStyle `yaml:"customButtonStyle" toml:"customButtonStyle"`
	AllowCancel       bool                         `yaml:"allowCancel" toml:"allowCancel"`
	AllowMinimize     bool                         `yaml:"allowMinimize" toml:"allowMinimize"`
	RightToLeftLayout bool                         `yaml:"rightToLeftLayout" toml:"rightToLeftLayout"`
	SizeToContent     bool                         `yaml:"sizeToContent" toml:"sizeToContent"`
	EnableHyperlinks  bool                         `yaml:"enableHyperlinks" toml:"enableHyperlinks"`
	EnableTimer       bool                         `yaml:"enableTimer" toml:"enableTimer"`
	NoSetForeground   bool                         `yaml:"noSetForeground" toml:"noSetForeground"`

	CommonButtons []CommonButton `yaml:"commonButtons" toml:"commonButtons"`
	CustomButtons []CustomButton `yaml:"customButtons" toml:"customButtons"`
	RadioButtons  []RadioButton  `yaml:"radioButtons" toml:"radioButtons"`
	CheckBox      *CheckBox      `yaml:"checkBox" toml:"checkBox"`
	Expander      *Expander      `yaml:"expander" toml:"expander"`
	Footer        *Footer        `yaml:"footer" toml:"footer"`
	ProgressBar   *ProgressBar   `yaml:"progressBar" toml:"progressBar"`

	OnCreated          taskdialog.EventHandler                `yaml:"-" toml:"-"`
	OnDestroyed        taskdialog.EventHandler                `yaml:"-" toml:"-"`
	OnHelp             taskdialog.EventHandler                `yaml:"-" toml:"-"`
	OnHyperlinkClicked taskdialog.GenericEventHandler[string] `yaml:"-" toml:"-"`
	OnTick             taskdialog.TickEventHandler            `yaml:"-" toml:"-"`

	AssignTo **taskdialog.Page `yaml:"-" toml:"-"`
}

// Create builds the page described by tdp.
func (tdp TaskDialogPage) Create() (*taskdialog.Page, error) {
	p := taskdialog.NewPage(tdp.Heading)

	if err := p.SetCaption(tdp.Caption); err != nil {
		return nil, err
	}
	if err := p.SetText(tdp.Text); err != nil {
		return nil, err
	}
	if err := p.SetIcon(tdp.Icon); err != nil {
		return nil, err
	}
	if err := p.SetWidth(tdp.Width); err != nil {
		return nil, err
	}
	if err := p.SetCustomButtonStyle(tdp.CustomButtonStyle); err != nil {
		return nil, err
	}

	flags := []struct {
		set   func(bool) error
		value bool
	}{
		{p.SetAllowCancel, tdp.AllowCancel},
		{p.SetAllowMinimize, tdp.AllowMinimize},
		{p.SetRightToLeftLayout, tdp.RightToLeftLayout},
		{p.SetSizeToContent, tdp.SizeToContent},
		{p.SetEnableHyperlinks, tdp.EnableHyperlinks},
		{p.SetEnableTimer, tdp.EnableTimer},
		{p.SetNoSetForeground, tdp.NoSetForeground},
	}
	for _, f := range flags {
		if err := f.set(f.value); err != nil {
			return nil, err
		}
	}

	for _, cb := range tdp.CommonButtons {
		if err := cb.Create(p); err != nil {
			return nil, err
		}
	}
	for _, cb := range tdp.CustomButtons {
		if err := cb.Create(p); err != nil {
			return nil, err
		}
	}
	for _, rb := range tdp.RadioButtons {
		if err := rb.Create(p); err != nil {
			return nil, err
		}
	}
	if tdp.CheckBox != nil {
		if err := tdp.CheckBox.Create(p); err != nil {
			return nil, err
		}
	}
	if tdp.Expander != nil {
		if err := tdp.Expander.Create(p); err != nil {
			return nil, err
		}
	}
	if tdp.Footer != nil {
		if err := tdp.Footer.Create(p); err != nil {
			return nil, err
		}
	}
	if tdp.ProgressBar != nil {
		if err := tdp.ProgressBar.Create(p); err != nil {
			return nil, err
		}
	}

	if tdp.OnCreated != nil {
		p.Created().Attach(tdp.OnCreated)
	}
	if tdp.OnDestroyed != nil {
		p.Destroyed().Attach(tdp.OnDestroyed)
	}
	if tdp.OnHelp != nil {
		p.Help().Attach(tdp.OnHelp)
	}
	if tdp.OnHyperlinkClicked != nil {
		p.HyperlinkClicked().Attach(tdp.OnHyperlinkClicked)
	}
	if tdp.OnTick != nil {
		p.Tick().Attach(tdp.OnTick)
	}

	if tdp.AssignTo != nil {
		*tdp.AssignTo = p
	}

	return p, nil
}

// Show creates the page and shows it in a new dialog.
func (tdp TaskDialogPage) Show(opts taskdialog.ShowOptions) (taskdialog.Button, error) {
	p, err := tdp.Create()
	if err != nil {
		return nil, err
	}
	return taskdialog.ShowDialog(p, opts)
}

type CommonButton struct {
	Result         taskdialog.Result `yaml:"result" toml:"result"`
	Default        bool              `yaml:"default" toml:"default"`
	Hidden         bool              `yaml:"hidden" toml:"hidden"`
	Disabled       bool              `yaml:"disabled" toml:"disabled"`
	ShowShieldIcon bool              `yaml:"showShieldIcon" toml:"showShieldIcon"`
	KeepOpen       bool              `yaml:"keepOpen" toml:"keepOpen"`

	OnClicked taskdialog.ClickEventHandler `yaml:"-" toml:"-"`
	AssignTo  **taskdialog.CommonButton    `yaml:"-" toml:"-"`
}

func (cb CommonButton) Create(page *taskdialog.Page) error {
	b, err := taskdialog.NewCommonButton(cb.Result)
	if err != nil {
		return err
	}
	if err := initButton(b, cb.Default, cb.Hidden, cb.Disabled, cb.ShowShieldIcon, cb.KeepOpen, cb.OnClicked); err != nil {
		return err
	}
	if err := page.CommonButtons().AddButton(b); err != nil {
		return err
	}

	if cb.AssignTo != nil {
		*cb.AssignTo = b
	}
	return nil
}

type CustomButton struct {
	Text            string `yaml:"text" toml:"text"`
	DescriptionText string `yaml:"descriptionText" toml:"descriptionText"`
	Default         bool   `yaml:"default" toml:"default"`
	Hidden          bool   `yaml:"hidden" toml:"hidden"`
	Disabled        bool   `yaml:"disabled" toml:"disabled"`
	ShowShieldIcon  bool   `yaml:"showShieldIcon" toml:"showShieldIcon"`
	KeepOpen        bool   `yaml:"keepOpen" toml:"keepOpen"`

	OnClicked taskdialog.ClickEventHandler `yaml:"-" toml:"-"`
	AssignTo  **taskdialog.CustomButton    `yaml:"-" toml:"-"`
}

func (cb CustomButton) Create(page *taskdialog.Page) error {
	b := taskdialog.NewCustomButton(cb.Text)
	if err := b.SetDescriptionText(cb.DescriptionText); err != nil {
		return err
	}
	if err := initButton(b, cb.Default, cb.Hidden, cb.Disabled, cb.ShowShieldIcon, cb.KeepOpen, cb.OnClicked); err != nil {
		return err
	}
	if err := page.CustomButtons().AddButton(b); err != nil {
		return err
	}

	if cb.AssignTo != nil {
		*cb.AssignTo = b
	}
	return nil
}

type buttonSetter interface {
	taskdialog.Button
	SetDefaultButton(bool) error
	SetVisible(bool) error
	SetEnabled(bool) error
	SetShowShieldIcon(bool) error
	SetAllowCloseDialog(bool)
}

func initButton(b buttonSetter, isDefault, hidden, disabled, shield, keepOpen bool, onClicked taskdialog.ClickEventHandler) error {
	if err := b.SetDefaultButton(isDefault); err != nil {
		return err
	}
	if err := b.SetVisible(!hidden); err != nil {
		return err
	}
	if err := b.SetEnabled(!disabled); err != nil {
		return err
	}
	if err := b.SetShowShieldIcon(shield); err != nil {
		return err
	}
	b.SetAllowCloseDialog(!keepOpen)

	if onClicked != nil {
		b.Clicked().Attach(onClicked)
	}
	return nil
}

type RadioButton struct {
	Text     string `yaml:"text" toml:"text"`
	Checked  bool   `yaml:"checked" toml:"checked"`
	Disabled bool   `yaml:"disabled" toml:"disabled"`

	OnCheckedChanged taskdialog.EventHandler  `yaml:"-" toml:"-"`
	AssignTo         **taskdialog.RadioButton `yaml:"-" toml:"-"`
}

func (rb RadioButton) Create(page *taskdialog.Page) error {
	r := taskdialog.NewRadioButton(rb.Text)
	if err := r.SetChecked(rb.Checked); err != nil {
		return err
	}
	if err := r.SetEnabled(!rb.Disabled); err != nil {
		return err
	}
	if rb.OnCheckedChanged != nil {
		r.CheckedChanged().Attach(rb.OnCheckedChanged)
	}
	if err := page.RadioButtons().AddButton(r); err != nil {
		return err
	}

	if rb.AssignTo != nil {
		*rb.AssignTo = r
	}
	return nil
}

type CheckBox struct {
	Text    string `yaml:"text" toml:"text"`
	Checked bool   `yaml:"checked" toml:"checked"`

	OnCheckedChanged taskdialog.EventHandler `yaml:"-" toml:"-"`
	AssignTo         **taskdialog.CheckBox   `yaml:"-" toml:"-"`
}

func (cb CheckBox) Create(page *taskdialog.Page) error {
	c := taskdialog.NewCheckBox(cb.Text)
	if err := c.SetChecked(cb.Checked); err != nil {
		return err
	}
	if cb.OnCheckedChanged != nil {
		c.CheckedChanged().Attach(cb.OnCheckedChanged)
	}
	if err := page.SetCheckBox(c); err != nil {
		return err
	}

	if cb.AssignTo != nil {
		*cb.AssignTo = c
	}
	return nil
}

type Expander struct {
	Text                string                      `yaml:"text" toml:"text"`
	ExpandedButtonText  string                      `yaml:"expandedButtonText" toml:"expandedButtonText"`
	CollapsedButtonText string                      `yaml:"collapsedButtonText" toml:"collapsedButtonText"`
	Expanded            bool                        `yaml:"expanded" toml:"expanded"`
	Position            taskdialog.ExpanderPosition `yaml:"position" toml:"position"`

	OnExpandedChanged taskdialog.EventHandler `yaml:"-" toml:"-"`
	AssignTo          **taskdialog.Expander   `yaml:"-" toml:"-"`
}

func (e Expander) Create(page *taskdialog.Page) error {
	x := taskdialog.NewExpander(e.Text)
	if err := x.SetExpandedButtonText(e.ExpandedButtonText); err != nil {
		return err
	}
	if err := x.SetCollapsedButtonText(e.CollapsedButtonText); err != nil {
		return err
	}
	if err := x.SetExpanded(e.Expanded); err != nil {
		return err
	}
	if err := x.SetPosition(e.Position); err != nil {
		return err
	}
	if e.OnExpandedChanged != nil {
		x.ExpandedChanged().Attach(e.OnExpandedChanged)
	}
	if err := page.SetExpander(x); err != nil {
		return err
	}

	if e.AssignTo != nil {
		*e.AssignTo = x
	}
	return nil
}

type Footer struct {
	Text string          `yaml:"text" toml:"text"`
	Icon taskdialog.Icon `yaml:"icon" toml:"icon"`

	AssignTo **taskdialog.Footer `yaml:"-" toml:"-"`
}

func (f Footer) Create(page *taskdialog.Page) error {
	x := taskdialog.NewFooter(f.Text)
	if err := x.SetIcon(f.Icon); err != nil {
		return err
	}
	if err := page.SetFooter(x); err != nil {
		return err
	}

	if f.AssignTo != nil {
		*f.AssignTo = x
	}
	return nil
}

type ProgressBar struct {
	State        taskdialog.ProgressBarState `yaml:"state" toml:"state"`
	Minimum      int                         `yaml:"minimum" toml:"minimum"`
	Maximum      int                         `yaml:"maximum" toml:"maximum"` // 0 means 100
	Value        int                         `yaml:"value" toml:"value"`
	MarqueeSpeed int                         `yaml:"marqueeSpeed" toml:"marqueeSpeed"`

	AssignTo **taskdialog.ProgressBar `yaml:"-" toml:"-"`
}

func (pb ProgressBar) Create(page *taskdialog.Page) error {
	x := taskdialog.NewProgressBar(pb.State)

	maximum := pb.Maximum
	if maximum == 0 {
		maximum = x.Maximum()
	}
	if err := x.SetRange(pb.Minimum, maximum); err != nil {
		return err
	}
	if err := x.SetValue(pb.Value); err != nil {
		return err
	}
	if err := x.SetMarqueeSpeed(pb.MarqueeSpeed); err != nil {
		return err
	}
	if err := page.SetProgressBar(x); err != nil {
		return err
	}

	if pb.AssignTo != nil {
		*pb.AssignTo = x
	}
	return nil
}

// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

// controls returns every control held by p, buttons first.
func (p *Page) controls() []Control {
	var result []Control
	for _, b := range p.commonButtons.items {
		result = append(result, b)
	}
	for _, b := range p.customButtons.items {
		result = append(result, b)
	}
	for _, rb := range p.radioButtons.items {
		result = append(result, rb)
	}
	if p.checkBox != nil {
		result = append(result, p.checkBox)
	}
	if p.expander != nil {
		result = append(result, p.expander)
	}
	if p.footer != nil {
		result = append(result, p.footer)
	}
	if p.progressBar != nil {
		result = append(result, p.progressBar)
	}
	return result
}

func (p *Page) usesCommandLinks() bool {
	if !p.customButtonStyle.isCommandLinks() {
		return false
	}
	for _, b := range p.customButtons.items {
		if !b.hidden {
			return true
		}
	}
	return false
}

// validate checks that p can be bound to d. It does not modify p or any of
// its controls.
func (p *Page) validate(d *TaskDialog) error {
	if p.binding != nil {
		if p.binding.dialog == d {
			return invalidState("the page is already bound to this dialog")
		}
		return invalidState("the page is bound to another dialog")
	}

	for _, c := range p.controls() {
		if bp := c.BoundPage(); bp != nil && bp != p {
			return invalidState("a control of the page is bound to another page")
		}
	}

	var defaultButtons int
	for _, b := range p.commonButtons.items {
		if b.defaultButton {
			defaultButtons++
		}
	}
	for _, b := range p.customButtons.items {
		if b.defaultButton {
			defaultButtons++
		}
		if !b.hidden && isNativeTextEmpty(b.text) {
			return invalidState("a visible custom button has no text")
		}
	}
	if defaultButtons > 1 {
		return invalidState("only one button can be the default button")
	}

	var checkedRadioButtons int
	for _, rb := range p.radioButtons.items {
		if rb.checked {
			checkedRadioButtons++
		}
		if isNativeTextEmpty(rb.text) {
			return invalidState("a radio button has no text")
		}
	}
	if checkedRadioButtons > 1 {
		return invalidState("only one radio button can be checked")
	}

	if p.customButtonStyle.isCommandLinks() && !p.usesCommandLinks() {
		return invalidState("command links require at least one visible custom button")
	}

	return nil
}

// bind locks p and its controls to d, assigns button ids and computes the
// flags describing the page. It must only be called after validate
// succeeded, and must be paired with exactly one unbind.
func (p *Page) bind(d *TaskDialog) *bindingToken {
	token := &bindingToken{page: p, dialog: d}
	p.binding = token
	p.boundDialog = d
	p.commonButtons.lock = token
	p.customButtons.lock = token
	p.radioButtons.lock = token
	p.destroyRaised = false
	p.defaultButtonID = 0
	p.defaultRadioID = 0

	flags := p.pageFlags()

	for _, b := range p.commonButtons.items {
		b.id = int32(b.result)
		b.bind(p, !b.hidden)
		if b.defaultButton {
			p.defaultButtonID = b.id
		}
	}
	p.boundButtons = p.commonButtons.flags()

	for i, b := range p.customButtons.items {
		b.id = firstCustomButtonID + int32(i)
		b.bind(p, !b.hidden)
		if b.defaultButton {
			p.defaultButtonID = b.id
		}
	}
	if p.usesCommandLinks() {
		if p.customButtonStyle == CustomButtonStyleCommandLinksNoIcon {
			flags |= tdfUseCommandLinksNoIcon
		} else {
			flags |= tdfUseCommandLinks
		}
	}

	for i, rb := range p.radioButtons.items {
		rb.id = firstRadioButtonID + int32(i)
		rb.bind(p, true)
		if rb.checked {
			p.defaultRadioID = rb.id
		}
	}
	if len(p.radioButtons.items) > 0 && p.defaultRadioID == 0 {
		flags |= tdfNoDefaultRadioButton
	}

	if cb := p.checkBox; cb != nil {
		created := cb.isCreatable()
		cb.bind(p, created)
		if created {
			flags |= cb.bindFlags()
		}
	}
	if e := p.expander; e != nil {
		created := e.isCreatable()
		e.bind(p, created)
		if created {
			flags |= e.bindFlags()
		}
	}
	if f := p.footer; f != nil {
		created := f.isCreatable()
		f.bind(p, created)
		if created {
			flags |= f.bindFlags()
		}
	}
	if pb := p.progressBar; pb != nil {
		created := pb.isCreatable()
		pb.bind(p, created)
		if created {
			flags |= pb.bindFlags()
		}
	}

	p.boundHeading = p.heading
	p.boundText = p.text
	p.boundIcon = p.icon
	if p.icon.IsHandle() {
		flags |= tdfUseHIconMain
	}

	p.boundFlags = flags
	return token
}

func (p *Page) pageFlags() (flags uint32) {
	if p.allowCancel {
		flags |= tdfAllowDialogCancellation
	}
	if p.allowMinimize {
		flags |= tdfCanBeMinimized
	}
	if p.rightToLeft {
		flags |= tdfRTLLayout
	}
	if p.sizeToContent {
		flags |= tdfSizeToContent
	}
	if p.enableHyperlinks {
		flags |= tdfEnableHyperlinks
	}
	if p.enableTimer {
		flags |= tdfCallbackTimer
	}
	if p.noSetForeground {
		flags |= tdfNoSetForeground
	}
	return flags
}

// unbind releases the binding established by bind.
func (p *Page) unbind() {
	for _, b := range p.commonButtons.items {
		b.unbind()
	}
	for _, b := range p.customButtons.items {
		b.unbind()
	}
	for _, rb := range p.radioButtons.items {
		rb.unbind()
	}
	if p.checkBox != nil {
		p.checkBox.unbind()
	}
	if p.expander != nil {
		p.expander.unbind()
	}
	if p.footer != nil {
		p.footer.unbind()
	}
	if p.progressBar != nil {
		p.progressBar.unbind()
	}

	p.commonButtons.lock = nil
	p.customButtons.lock = nil
	p.radioButtons.lock = nil
	p.binding = nil
	p.boundDialog = nil
	p.defaultButtonID = 0
	p.defaultRadioID = 0
	p.radioClickSeq++
}

// applyInitialization pushes every value that was changed after bind, or
// that the config block cannot express, to the freshly created native
// dialog window.
func (p *Page) applyInitialization(d *TaskDialog) {
	if p.heading != p.boundHeading {
		logLiveUpdate("Page.SetHeading", d.updateTextElement(tdeMainInstruction, p.heading))
	}
	if p.text != p.boundText {
		logLiveUpdate("Page.SetText", d.updateTextElement(tdeContent, p.text))
	}
	if p.icon != p.boundIcon {
		logLiveUpdate("Page.SetIcon", d.updateIcon(tdieIconMain, p.icon))
	}

	for _, b := range p.commonButtons.items {
		if b.created {
			b.applyInitialization(d)
		}
	}
	for _, b := range p.customButtons.items {
		if b.created {
			b.applyInitialization(d)
		}
	}

	for _, rb := range p.radioButtons.items {
		if rb.disabled {
			logLiveUpdate("RadioButton.SetEnabled", d.setRadioButtonEnabled(rb.id, false))
		}
	}
	if rb := p.checkedRadioButton(); rb != nil && rb.id != p.defaultRadioID {
		logLiveUpdate("RadioButton.SetChecked", d.clickRadioButton(rb.id))
	}

	if cb := p.checkBox; cb != nil && cb.created {
		cb.applyInitialization(d)
	}
	if e := p.expander; e != nil && e.created {
		e.applyInitialization(d)
	}
	if f := p.footer; f != nil && f.created {
		f.applyInitialization(d)
	}
	if pb := p.progressBar; pb != nil && pb.created {
		pb.applyInitialization(d)
	}
}

func (p *Page) checkedRadioButton() *RadioButton {
	for _, rb := range p.radioButtons.items {
		if rb.checked {
			return rb
		}
	}
	return nil
}

// checkRadioButton checks target and unchecks its siblings without
// publishing events.
func (p *Page) checkRadioButton(target *RadioButton) {
	for _, rb := range p.radioButtons.items {
		rb.checked = rb == target
	}
}

// buttonByID resolves a button id reported by the native dialog. Ids in the
// custom button range resolve against the custom buttons, everything else
// against the common buttons.
func (p *Page) buttonByID(id int32) Button {
	if id >= firstCustomButtonID {
		i := int(id - firstCustomButtonID)
		if i < len(p.customButtons.items) {
			return p.customButtons.items[i]
		}
		return nil
	}
	if b := p.commonButtons.Get(Result(id)); b != nil {
		return b
	}
	return nil
}

func (p *Page) radioButtonByID(id int32) *RadioButton {
	i := int(id - firstRadioButtonID)
	if i < 0 || i >= len(p.radioButtons.items) {
		return nil
	}
	return p.radioButtons.items[i]
}

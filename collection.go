// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package taskdialog

// bindingToken represents one binding of a page to a dialog. While a page is
// bound, its collections hold the token and refuse structural changes.
type bindingToken struct {
	page   *Page
	dialog *TaskDialog
}

// controlCollection is an ordered list of controls, each of which belongs to
// at most one collection.
type controlCollection[T Control] struct {
	items []T
	lock  *bindingToken
}

func (c *controlCollection[T]) Len() int {
	return len(c.items)
}

// At returns the item at index i.
func (c *controlCollection[T]) At(i int) T {
	return c.items[i]
}

// Items returns a copy of the collection's items in order.
func (c *controlCollection[T]) Items() []T {
	return append([]T(nil), c.items...)
}

// Index returns the index of item, or -1.
func (c *controlCollection[T]) Index(item T) int {
	for i, v := range c.items {
		if v.base() == item.base() {
			return i
		}
	}
	return -1
}

func (c *controlCollection[T]) Contains(item T) bool {
	return c.Index(item) >= 0
}

func (c *controlCollection[T]) checkUnlocked() error {
	if c.lock != nil {
		return invalidState("the collection cannot be modified while its page is bound")
	}
	return nil
}

func (c *controlCollection[T]) insert(i int, item T) error {
	if err := c.checkUnlocked(); err != nil {
		return err
	}
	if i < 0 || i > len(c.items) {
		return outOfRange("index %d out of range [0,%d]", i, len(c.items))
	}
	if err := item.base().claim(c); err != nil {
		return err
	}

	var zero T
	c.items = append(c.items, zero)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = item
	return nil
}

// RemoveAt removes the item at index i.
func (c *controlCollection[T]) RemoveAt(i int) error {
	if err := c.checkUnlocked(); err != nil {
		return err
	}
	if i < 0 || i >= len(c.items) {
		return outOfRange("index %d out of range [0,%d)", i, len(c.items))
	}

	c.items[i].base().release()
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Remove removes item, reporting whether it was part of the collection.
func (c *controlCollection[T]) Remove(item T) (bool, error) {
	i := c.Index(item)
	if i < 0 {
		return false, nil
	}
	if err := c.RemoveAt(i); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes all items.
func (c *controlCollection[T]) Clear() error {
	if err := c.checkUnlocked(); err != nil {
		return err
	}
	for _, item := range c.items {
		item.base().release()
	}
	c.items = nil
	return nil
}

// CommonButtonCollection holds the page's common buttons, at most one per
// Result.
type CommonButtonCollection struct {
	controlCollection[*CommonButton]
}

// Add creates a button for result and appends it.
func (c *CommonButtonCollection) Add(result Result) (*CommonButton, error) {
	b, err := NewCommonButton(result)
	if err != nil {
		return nil, err
	}
	if err := c.AddButton(b); err != nil {
		return nil, err
	}
	return b, nil
}

// AddButton appends b. It fails if the collection already holds a button
// with the same result.
func (c *CommonButtonCollection) AddButton(b *CommonButton) error {
	if err := c.checkDuplicate(b); err != nil {
		return err
	}
	return c.insert(len(c.items), b)
}

func (c *CommonButtonCollection) Insert(i int, b *CommonButton) error {
	if err := c.checkDuplicate(b); err != nil {
		return err
	}
	return c.insert(i, b)
}

func (c *CommonButtonCollection) checkDuplicate(b *CommonButton) error {
	if existing := c.Get(b.result); existing != nil && existing != b {
		return invalidState("a button for result %s was already added", b.result)
	}
	return nil
}

// Get returns the button for result, or nil.
func (c *CommonButtonCollection) Get(result Result) *CommonButton {
	for _, b := range c.items {
		if b.result == result {
			return b
		}
	}
	return nil
}

// flags returns the TDCBF_* bits of the visible buttons.
func (c *CommonButtonCollection) flags() (flags uint32) {
	for _, b := range c.items {
		if !b.hidden {
			flags |= b.result.commonButtonFlag()
		}
	}
	return flags
}

// CustomButtonCollection holds the page's custom buttons in display order.
type CustomButtonCollection struct {
	controlCollection[*CustomButton]
}

// Add creates a button with text and appends it.
func (c *CustomButtonCollection) Add(text string) (*CustomButton, error) {
	b := NewCustomButton(text)
	if err := c.AddButton(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *CustomButtonCollection) AddButton(b *CustomButton) error {
	return c.insert(len(c.items), b)
}

func (c *CustomButtonCollection) Insert(i int, b *CustomButton) error {
	return c.insert(i, b)
}

// RadioButtonCollection holds the page's radio buttons in display order.
type RadioButtonCollection struct {
	controlCollection[*RadioButton]
}

// Add creates a radio button with text and appends it.
func (c *RadioButtonCollection) Add(text string) (*RadioButton, error) {
	rb := NewRadioButton(text)
	if err := c.AddButton(rb); err != nil {
		return nil, err
	}
	return rb, nil
}

func (c *RadioButtonCollection) AddButton(rb *RadioButton) error {
	return c.insert(len(c.items), rb)
}

func (c *RadioButtonCollection) Insert(i int, rb *RadioButton) error {
	return c.insert(i, rb)
}

package form

// Option is one choice of a SelectField.
type Option struct {
	Label string
	Value string
}

// selectItem is the list item used by the select field.
type selectItem struct {
	option Option
	index  int
}

func (i selectItem) FilterValue() string { return i.option.Label }

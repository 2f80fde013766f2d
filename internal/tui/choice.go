package tui

import (
	"strings"

	"github.com/dhabedank/lumina/internal/core"
)

// choice is a single-select field cycled with left and right.
type choice struct {
	label    string
	field    core.Field
	options  []string
	index    int // -1 when nothing is chosen yet
	optional bool
}

func newChoice(label string, field core.Field, options []string, current string, optional bool) choice {
	c := choice{label: label, field: field, options: options, index: -1, optional: optional}
	for i, o := range options {
		if o == current {
			c.index = i
		}
	}
	return c
}

func (c choice) value() string {
	if c.index < 0 {
		return ""
	}
	return c.options[c.index]
}

// next moves right. An optional choice wraps through "none".
func (c choice) next() choice {
	switch {
	case c.index == len(c.options)-1 && c.optional:
		c.index = -1
	case c.index == len(c.options)-1:
		c.index = 0
	default:
		c.index++
	}
	return c
}

func (c choice) prev() choice {
	switch {
	case c.index == -1:
		c.index = len(c.options) - 1
	case c.index == 0 && c.optional:
		c.index = -1
	case c.index == 0:
		c.index = len(c.options) - 1
	default:
		c.index--
	}
	return c
}

func (c choice) view(focused bool) string {
	label := UnselectedStyle.Render(c.label)
	if focused {
		label = SelectedStyle.Render("› " + c.label)
	}

	value := c.value()
	switch {
	case value != "":
	case c.optional:
		value = "None"
	default:
		value = "Choose one"
	}

	arrows := HelpStyle.Render("‹ ") + value + HelpStyle.Render(" ›")
	if focused {
		arrows = HelpStyle.Render("‹ ") + SelectedStyle.Render(value) + HelpStyle.Render(" ›")
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString("\n    ")
	b.WriteString(arrows)
	b.WriteString("\n")
	return b.String()
}

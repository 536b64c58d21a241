package tuitest

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "red\nplain", StripANSI("\x1b[31mred\x1b[0m   \nplain  \n\n"))
}

func TestKeyStrings(t *testing.T) {
	tests := []struct {
		msg  tea.Msg
		want string
	}{
		{KeyPress('a'), "a"},
		{KeyCtrl('s'), "ctrl+s"},
		{KeySpace(), "space"},
		{KeyEnter(), "enter"},
		{KeyTab(), "tab"},
		{KeyShiftTab(), "shift+tab"},
		{KeyEsc(), "esc"},
		{KeyDown(), "down"},
		{KeyUp(), "up"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			key, ok := tt.msg.(tea.KeyPressMsg)
			assert.True(t, ok)
			assert.Equal(t, tt.want, key.String())
		})
	}
}

func TestType(t *testing.T) {
	msgs := Type("hi")
	assert.Len(t, msgs, 2)
	assert.Equal(t, "h", msgs[0].(tea.KeyPressMsg).Text)
}

package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestCanvas_Spans(t *testing.T) {
	c := newCanvas(10, 2)
	c.put(2, 0, "abcd")
	c.put(4, 0, "XY")
	c.put(8, 0, "hello")
	c.put(-2, 1, "abcd")
	c.put(3, 5, "ignored")

	lines := c.lines()
	assert.Equal(t, []string{"  abXY  he", "cd        "}, lines)
	for _, l := range lines {
		assert.Equal(t, 10, ansi.StringWidth(l))
	}
}

func TestCanvas_ShorterSpanUncovers(t *testing.T) {
	c := newCanvas(8, 1)
	c.put(1, 0, "abcdef")
	c.put(1, 0, "Z")
	assert.Equal(t, []string{" Z      "}, c.lines())
}

func TestCanvas_Dots(t *testing.T) {
	c := newCanvas(2, 1)
	c.setDot(0, 0)
	c.setDot(1, 3)
	c.setDot(-1, 0)
	c.setDot(4, 0)
	assert.Equal(t, []string{string(rune(0x2800+0x81)) + " "}, c.lines())

	c = newCanvas(3, 1)
	c.drawLine(0, 0, 5, 0)
	assert.Equal(t, []string{string([]rune{0x2809, 0x2809, 0x2809})}, c.lines())
}

func TestSplice(t *testing.T) {
	lines := []string{"0123456789", "abcdefghij"}
	splice(lines, "XX\nYY", 3, 1)
	assert.Equal(t, []string{"0123456789", "abcXXfghij"}, lines)

	lines = []string{"abc"}
	splice(lines, "XX", 5, 0)
	assert.Equal(t, []string{"abc  XX"}, lines)
}

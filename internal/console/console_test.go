package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Colorf(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, true)

	p.Colorf(Green, "[       OK ] ")
	p.Printf("math.add\n")

	assert.Equal(t, "\x1b[0;32m[       OK ] \x1b[mmath.add\n", out.String())
}

func TestPrinter_ColorfDisabled(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, false)

	p.Colorf(Red, "[  FAILED  ] ")
	p.Printf("math.add\n")

	assert.Equal(t, "[  FAILED  ] math.add\n", out.String(), "disabled printers must not emit escape codes")
}

func TestPrinter_ColorfNone(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, true)

	p.Colorf(None, "plain")
	assert.Equal(t, "plain", out.String())
}

func TestColorable_NonFile(t *testing.T) {
	var out bytes.Buffer
	assert.False(t, Colorable(&out), "a buffer is never a terminal")
}

// Package cell implements the unit classifier of the network. A cell is
// either a program of salted modular hashes, or a short premodulo program
// followed by a quaternary filter holding the learned decisions.
package cell

import "errors"
import "math/rand"

import "github.com/neurlang/quaternary"

// Cell is one trainable unit in the network.
type Cell struct {
	program [][2]uint32
	bits    byte

	filter quaternary.Filter
}

// New creates a cell from a program of (salt, modulo) steps. A nil program
// yields a randomly salted two-way coin, the untrained starting point.
func New(program [][2]uint32, bits byte) (c *Cell, err error) {
	c = new(Cell)
	if bits == 0 {
		bits = 1
	}
	if program == nil {
		c.program = [][2]uint32{{rand.Uint32() >> 1, 2}}
	} else {
		c.program = program
	}
	c.bits = bits
	return
}

// NewFromFilter creates a cell whose decisions live in a quaternary filter,
// reached through an optional premodulo program.
func NewFromFilter(premodulo [][2]uint32, bits byte, filter []byte) (c *Cell, err error) {
	if len(filter) == 0 {
		return nil, errors.New("empty filter")
	}
	c = new(Cell)
	if bits == 0 {
		bits = 1
	}
	c.program = premodulo
	c.bits = bits
	c.filter = quaternary.Filter(filter)
	return
}

// Get gets the hashing step at position n
func (c Cell) Get(n int) (s uint32, max uint32) {
	return c.program[n][0], c.program[n][1]
}

// Len gets the program length
func (c Cell) Len() int {
	return len(c.program)
}

// LenFilter gets the size of the learned filter data
func (c Cell) LenFilter() int {
	return len(c.filter)
}

// Bits determines the number of output bits returned by Forward
func (c Cell) Bits() byte {
	return c.bits
}

// SetBits sets the number of output bits returned by Forward
func (c *Cell) SetBits(bits byte) {
	c.bits = bits
}

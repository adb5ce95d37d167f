package cell

import "encoding/json"
import "io"

import "github.com/neurlang/quaternary"

type wire struct {
	P [][2]uint32 `json:"p"`
	B byte        `json:"b"`
	Q []byte      `json:"q,omitempty"`
}

// WriteJSON serializes the cell as one json object
func (c Cell) WriteJSON(w io.Writer) error {
	buf, err := json.Marshal(wire{P: c.program, B: c.bits, Q: []byte(c.filter)})
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// ReadJSON overwrites the cell from a json decoder stream
func (c *Cell) ReadJSON(dec *json.Decoder) error {
	var v wire
	if err := dec.Decode(&v); err != nil {
		return err
	}
	c.program = v.P
	c.bits = v.B
	if c.bits == 0 {
		c.bits = 1
	}
	if len(v.Q) > 0 {
		c.filter = quaternary.Filter(v.Q)
	} else {
		c.filter = nil
	}
	return nil
}

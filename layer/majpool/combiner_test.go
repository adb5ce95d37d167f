package majpool

import "testing"

func TestMajorityWindow(t *testing.T) {
	c := MustNew(4, 3, 2).Lay()
	// group 0: 2x true, group 1: all false, group 2: 2x true, group 3: all false
	for n, v := range []bool{true, true, false, false, false, false, true, false, true, false, false, false} {
		c.Put(n, v)
	}
	// feature 0 = majority(g0) | majority(g1)<<1 = 1
	if got := c.Feature(0); got != 1 {
		t.Errorf("Feature(0) = %d, want 1", got)
	}
	// feature 1 = majority(g1) | majority(g2)<<1 = 2
	if got := c.Feature(1); got != 2 {
		t.Errorf("Feature(1) = %d, want 2", got)
	}
	// feature 3 wraps: majority(g3) | majority(g0)<<1 = 2
	if got := c.Feature(3); got != 2 {
		t.Errorf("Feature(3) = %d, want 2", got)
	}
}

func TestDisregard(t *testing.T) {
	c := MustNew(1, 3, 1).Lay()
	c.Put(0, true)
	c.Put(1, true)
	c.Put(2, false)
	// votes 0 and 1 settle the majority, vote 2 cannot change it
	if !c.Disregard(2) {
		t.Errorf("vote 2 cannot flip a 2-0 majority")
	}
	c.Put(1, false)
	if c.Disregard(2) {
		t.Errorf("vote 2 decides a 1-1 split")
	}
}

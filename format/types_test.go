package format

import "testing"

func TestValWidth(t *testing.T) {
	cases := []struct {
		value uint32
		want  int
	}{
		{0x00, 1},
		{0x0F, 1},
		{0x10, 2},
		{0xFFF, 2},
		{0x1000, 3},
		{0xFFFFF, 3},
		{0x100000, 4},
		{0xFFFFFFF, 4},
		{0x10000000, 5},
		{0xFFFFFFFF, 5},
	}

	for _, c := range cases {
		v := NewConst(c.value)
		if got := v.Width(); got != c.want {
			t.Errorf("Width(0x%x) = %d, want %d", c.value, got, c.want)
		}
	}
}

func TestPosRoundTrip(t *testing.T) {
	off := Off(0x1234)
	if off.IsResolved() {
		t.Fatal("Off should not be resolved")
	}
	if off.Offset != 0x1234 {
		t.Fatalf("Offset = 0x%x, want 0x1234", off.Offset)
	}

	named := Named("start")
	if !named.IsResolved() {
		t.Fatal("Named should be resolved")
	}
	if named.Label != "start" {
		t.Fatalf("Label = %q, want start", named.Label)
	}
}

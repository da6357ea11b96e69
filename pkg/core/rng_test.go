package core

import "testing"

func TestStreamDeterministic(t *testing.T) {
	key := StreamKey("organism-0", "neural")
	a := NewStream(42, key)
	b := NewStream(42, key)
	for i := 0; i < 64; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d diverged: %f vs %f", i, x, y)
		}
	}
}

func TestStreamKeysIndependent(t *testing.T) {
	a := NewStream(42, StreamKey("organism-0", "neural"))
	b := NewStream(42, StreamKey("organism-0", "muscle"))
	same := 0
	for i := 0; i < 32; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 32 {
		t.Fatal("different stream keys should not produce identical sequences")
	}
}

func TestStreamKeySeparatesParts(t *testing.T) {
	if StreamKey("ab", "c") == StreamKey("a", "bc") {
		t.Fatal("stream key must separate label boundaries")
	}
}

func TestFloat64Range(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of range: %f", v)
		}
	}
}

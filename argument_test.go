package osc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func TestInt32(t *testing.T) {
	cases := []int32{math.MaxInt32, math.MinInt32, -1, 0, 1}
	for i := 0; i < 1000; i++ {
		cases = append(cases, rand.Int31())
	}
	b1, b2 := make([]byte, 4), make([]byte, 4)
	for _, i := range cases {
		j := Int32(i)
		b1 = j.Append(b1[:0])
		binary.BigEndian.PutUint32(b2, uint32(i))
		if !bytes.Equal(b1, b2) {
			t.Errorf("Int32(%d).Append = %x, want %x", i, b1, b2)
			continue
		}
		if _, err := j.Consume(b1); err != nil {
			t.Errorf("Int32.Consume(%x): unexpected error: %v", b1, err)
			continue
		}
		if int32(j) != i {
			t.Errorf("Int32.Consume(%x) = %d, want %d", b1, j, i)
		}
	}
}

func TestFloat32(t *testing.T) {
	cases := []float32{
		math.MaxFloat32, -math.MaxFloat32, 0, -0,
		float32(math.NaN()), math.SmallestNonzeroFloat32,
		math.Float32frombits(0x00800000),
	}
	for i := 0; i < 1000; i++ {
		cases = append(cases, (rand.Float32()*2-1)*math.MaxFloat32)
	}
	b1, b2 := make([]byte, 4), make([]byte, 4)
	for _, f := range cases {
		g := Float32(f)
		b1 = g.Append(b1[:0])
		binary.BigEndian.PutUint32(b2, math.Float32bits(f))
		if !bytes.Equal(b1, b2) {
			t.Errorf("Float32(%f).Append = %x, want %x", f, b1, b2)
			continue
		}
		if _, err := g.Consume(b1); err != nil {
			t.Errorf("Float32.Consume(%x): unexpected error", b1)
			continue
		}
		if got, want := math.Float32bits(float32(g)), math.Float32bits(f); got != want {
			t.Errorf("Float32.Consume(%x) = %f, want %f", b1, g, f)
		}
	}
}

func TestBlobRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil, {}, {0}, {1, 2, 3}, {1, 2, 3, 4}, bytes.Repeat([]byte{0xAB}, 37),
	}
	for _, c := range cases {
		b := Blob(c)
		enc := b.Append(nil)
		if len(enc)%4 != 0 {
			t.Errorf("Blob(%v).Append: length %d not 4-byte aligned", c, len(enc))
		}
		var tail [5]byte
		rand.Read(tail[:])
		enc = append(enc, tail[:]...)

		var got Blob
		rest, err := got.Consume(enc)
		if err != nil {
			t.Fatalf("Blob.Consume: %v", err)
		}
		if !bytes.Equal([]byte(got), c) && !(len(got) == 0 && len(c) == 0) {
			t.Errorf("Blob.Consume = %v, want %v", []byte(got), c)
		}
		if !bytes.Equal(rest, tail[:]) {
			t.Errorf("Blob.Consume leftover = %x, want %x", rest, tail[:])
		}
	}
}

func TestBlobNegativeLength(t *testing.T) {
	var b Blob
	buf := binary.BigEndian.AppendUint32(nil, uint32(int32(-1)))
	if _, err := b.Consume(buf); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("Blob.Consume(negative length) = %v, want ErrInvalidMessage", err)
	}
}

func TestTimeTagImmediate(t *testing.T) {
	imm := TimeTag{Seconds: 0, Picoseconds: 1}
	if !imm.Immediate() {
		t.Error("TimeTag{0,1}.Immediate() = false, want true")
	}
	notImm := TimeTag{Seconds: 0, Picoseconds: 2}
	if notImm.Immediate() {
		t.Error("TimeTag{0,2}.Immediate() = true, want false")
	}
}

func TestTimeTagOrdering(t *testing.T) {
	a := TimeTag{Seconds: 10, Picoseconds: 5}
	b := TimeTag{Seconds: 10, Picoseconds: 6}
	c := TimeTag{Seconds: 11, Picoseconds: 0}
	if !a.Before(b) {
		t.Error("a should be before b")
	}
	if !b.Before(c) {
		t.Error("b should be before c")
	}
	if c.Before(a) {
		t.Error("c should not be before a")
	}
	if a.Before(a) {
		t.Error("a should not be before itself")
	}
}

func TestTimeTagRoundTripViaTime(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	tt := FromTime(now)
	got := tt.Time()
	if diff := got.Sub(now); diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("FromTime(%v).Time() = %v, diff %v", now, got, diff)
	}
}

func TestNewBooleanCanonicalizes(t *testing.T) {
	if got := NewBoolean(true); got != Argument(True{}) {
		t.Errorf("NewBoolean(true) = %v, want True{}", got)
	}
	if got := NewBoolean(false); got != Argument(False{}) {
		t.Errorf("NewBoolean(false) = %v, want False{}", got)
	}
}

func TestArgRoundTrip(t *testing.T) {
	t.Run("Int32", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			j := Int32(rand.Int31())
			testArgRoundTrip(t, &j, func() *Int32 { return new(Int32) })
		}
	})
	t.Run("Float32", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			f := Float32(rand.Float32())
			testArgRoundTrip(t, &f, func() *Float32 { return new(Float32) })
		}
	})
	t.Run("String", func(t *testing.T) {
		const chars = "1234567890abcdefghijklmnop"
		inputs := make([]String, 100)
		for i := range inputs {
			n := rand.Intn(25)
			b := make([]byte, n)
			for j := range b {
				b[j] = chars[rand.Intn(len(chars))]
			}
			inputs[i] = String(b)
		}
		inputs[0] = String("")
		for _, s := range inputs {
			testArgRoundTrip(t, &s, func() *String { return new(String) })
		}
	})
	t.Run("Blob", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			b := make(Blob, rand.Intn(40))
			rand.Read(b)
			testArgRoundTrip(t, &b, func() *Blob { return new(Blob) })
		}
	})
	t.Run("TimeTag", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			b := make([]byte, 8)
			rand.Read(b)
			tt := new(TimeTag)
			if _, err := tt.Consume(b); err != nil {
				t.Errorf("TimeTag.Consume: %v", err)
			}
			testArgRoundTrip(t, tt, func() *TimeTag { return new(TimeTag) })
		}
	})
	t.Run("True", func(t *testing.T) {
		testArgRoundTrip(t, True{}, func() True { return True{} })
	})
	t.Run("False", func(t *testing.T) {
		testArgRoundTrip(t, False{}, func() False { return False{} })
	})
	t.Run("Null", func(t *testing.T) {
		testArgRoundTrip(t, Null{}, func() Null { return Null{} })
	})
	t.Run("Impulse", func(t *testing.T) {
		testArgRoundTrip(t, Impulse{}, func() Impulse { return Impulse{} })
	})
}

func testArgRoundTrip[T Argument](t *testing.T, a T, mk func() T) {
	t.Helper()
	enc := a.Append(nil)
	// Random trailer makes sure Consume doesn't read or drop extra bytes.
	var tail [11]byte
	rand.Read(tail[:])
	enc = append(enc, tail[:]...)

	got := mk()
	gotTail, err := got.Consume(enc)
	if err != nil {
		t.Fatalf("round trip (%c: %v) failed: %v", a.TypeTag(), a, err)
	}
	if !reflect.DeepEqual(a, got) {
		t.Errorf("round trip (%c) failed:\n got: %v\nwant: %v", a.TypeTag(), got, a)
	}
	if !bytes.Equal(tail[:], gotTail) {
		t.Errorf("round trip (%c) failed: wrong leftovers after Consume:\n got: %x\nwant: %x", a.TypeTag(), gotTail, tail)
	}
}

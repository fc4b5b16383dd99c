package radix

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Key describes how an element of type T decomposes into sortable bytes.
//
// RadixSize is the number of bytes in the key and Byte returns byte index of
// v, with index 0 the least significant byte. Byte is only called with
// 0 <= index < RadixSize().
//
// Reading the bytes from index RadixSize()-1 down to 0 and comparing them as
// unsigned numbers must give the order the caller wants. Nothing checks this:
// a key that breaks it produces a wrongly ordered result, not an error.
type Key[T any] interface {
	RadixSize() int
	Byte(index int, v T) byte
}

// Unsigned is the key for unsigned integers. The raw bytes already sort.
type Unsigned[T constraints.Unsigned] struct{}

func (Unsigned[T]) RadixSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func (Unsigned[T]) Byte(index int, v T) byte {
	return byte(uint64(v) >> (8 * uint(index)))
}

// Signed is the key for two's complement integers. The sign bit of the most
// significant byte is flipped so negative values sort first.
type Signed[T constraints.Signed] struct{}

func (Signed[T]) RadixSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func (Signed[T]) Byte(index int, v T) byte {
	b := byte(uint64(int64(v)) >> (8 * uint(index)))
	if index == int(unsafe.Sizeof(v))-1 {
		b ^= 0x80
	}
	return b
}

// Float32 is the key for float32 values in IEEE-754 order:
// -Inf < negatives < -0 < +0 < positives < +Inf.
// NaNs with the sign bit set sort before -Inf, the others after +Inf.
type Float32 struct{}

func (Float32) RadixSize() int { return 4 }

func (Float32) Byte(index int, v float32) byte {
	return byte(sortableFloat32(v) >> (8 * uint(index)))
}

// Float64 is the float64 counterpart of Float32.
type Float64 struct{}

func (Float64) RadixSize() int { return 8 }

func (Float64) Byte(index int, v float64) byte {
	return byte(sortableFloat64(v) >> (8 * uint(index)))
}

// Positive floats only need the sign bit set. Negative floats grow in raw
// magnitude as the value falls, so all of their bits are inverted.
func sortableFloat32(v float32) uint32 {
	bits := math.Float32bits(v)
	if bits&(1<<31) != 0 {
		return ^bits
	}
	return bits | 1<<31
}

func sortableFloat64(v float64) uint64 {
	bits := math.Float64bits(v)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | 1<<63
}

// Pointer orders pointers by address.
type Pointer[E any] struct{}

func (Pointer[E]) RadixSize() int { return int(unsafe.Sizeof(uintptr(0))) }

func (Pointer[E]) Byte(index int, v *E) byte {
	return byte(uint64(uintptr(unsafe.Pointer(v))) >> (8 * uint(index)))
}

type descending[T any] struct {
	key Key[T]
}

// Desc returns the descending counterpart of key. Every byte is inverted.
func Desc[T any](key Key[T]) Key[T] {
	if d, ok := key.(descending[T]); ok {
		return d.key
	}
	return descending[T]{key: key}
}

func (d descending[T]) RadixSize() int { return d.key.RadixSize() }

func (d descending[T]) Byte(index int, v T) byte { return ^d.key.Byte(index, v) }

// Pair is a two field element. First is the primary sort field.
type Pair[A, B any] struct {
	First  A
	Second B
}

type pairKey[A, B any] struct {
	first      Key[A]
	second     Key[B]
	secondSize int
}

// PairOf builds the key for Pair[A, B]. Second occupies the low byte indices
// so elements are ordered by First, then by Second.
func PairOf[A, B any](first Key[A], second Key[B]) Key[Pair[A, B]] {
	return pairKey[A, B]{first: first, second: second, secondSize: second.RadixSize()}
}

func (p pairKey[A, B]) RadixSize() int { return p.first.RadixSize() + p.secondSize }

func (p pairKey[A, B]) Byte(index int, v Pair[A, B]) byte {
	if index < p.secondSize {
		return p.second.Byte(index, v.Second)
	}
	return p.first.Byte(index-p.secondSize, v.First)
}

type fieldKey[T, F any] struct {
	key Key[F]
	get func(T) F
}

// Field keys T by one of its fields.
//
//	type user struct{ Score float64; ID uint32 }
//	byScore := radix.Field(radix.Float64{}, func(u user) float64 { return u.Score })
func Field[T, F any](key Key[F], get func(T) F) Key[T] {
	return fieldKey[T, F]{key: key, get: get}
}

func (f fieldKey[T, F]) RadixSize() int { return f.key.RadixSize() }

func (f fieldKey[T, F]) Byte(index int, v T) byte { return f.key.Byte(index, f.get(v)) }

type composite[T any] struct {
	primary       Key[T]
	secondary     Key[T]
	secondarySize int
}

// Compose orders by primary, breaking ties with secondary. Directions are
// those of the two keys, so Compose(a, Desc(b)) sorts a ascending, then b
// descending.
func Compose[T any](primary, secondary Key[T]) Key[T] {
	return composite[T]{primary: primary, secondary: secondary, secondarySize: secondary.RadixSize()}
}

func (c composite[T]) RadixSize() int { return c.primary.RadixSize() + c.secondarySize }

func (c composite[T]) Byte(index int, v T) byte {
	if index < c.secondarySize {
		return c.secondary.Byte(index, v)
	}
	return c.primary.Byte(index-c.secondarySize, v)
}

// Compare compares a and b by their byte keys, most significant byte first.
func Compare[T any](key Key[T], a, b T) int {
	for i := key.RadixSize() - 1; i >= 0; i-- {
		x, y := key.Byte(i, a), key.Byte(i, b)
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

// AppendKey appends the key bytes of v to dst, most significant first, so
// that bytes.Compare on two results matches Compare.
func AppendKey[T any](dst []byte, key Key[T], v T) []byte {
	for i := key.RadixSize() - 1; i >= 0; i-- {
		dst = append(dst, key.Byte(i, v))
	}
	return dst
}

package radix

// scatterPass moves src into dst ordered by byte index. ends holds, for
// every byte value, the offset one past the last slot src may fill in dst.
//
// src is walked from its end: each element takes the slot just below its
// bucket's current end. Later elements land higher, so elements sharing a
// byte keep their relative order. Walking forward with these offsets would
// reverse equal elements and break stability.
func scatterPass[T any, C counter](key Key[T], index int, src, dst []T, ends *table[C]) {
	i := len(src)
	for ; i >= 4; i -= 4 {
		batch := src[i-4 : i : i]

		v := batch[3]
		b := key.Byte(index, v)
		ends[b]--
		dst[ends[b]] = v

		v = batch[2]
		b = key.Byte(index, v)
		ends[b]--
		dst[ends[b]] = v

		v = batch[1]
		b = key.Byte(index, v)
		ends[b]--
		dst[ends[b]] = v

		v = batch[0]
		b = key.Byte(index, v)
		ends[b]--
		dst[ends[b]] = v
	}

	// Leftover head of src
	for i > 0 {
		i--
		v := src[i]
		b := key.Byte(index, v)
		ends[b]--
		dst[ends[b]] = v
	}
}

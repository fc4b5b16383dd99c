package radix

// passChain tracks which of the two buffers holds the output of the last
// pass. Every scatter writes into the other buffer and flips the roles.
type passChain[T any] struct {
	primary   []T
	scratch   []T
	inScratch bool
}

func (c *passChain[T]) src() []T {
	if c.inScratch {
		return c.scratch
	}
	return c.primary
}

func (c *passChain[T]) dst() []T {
	if c.inScratch {
		return c.primary
	}
	return c.scratch
}

func (c *passChain[T]) flip() { c.inScratch = !c.inScratch }

// finish leaves the sorted elements in primary.
func (c *passChain[T]) finish() {
	if c.inScratch {
		copy(c.primary, c.scratch)
		c.inScratch = false
	}
}

// sortSequential runs one counting pass and one scatter per key byte,
// least significant byte first.
func sortSequential[T any, C counter](data, scratch []T, key Key[T]) {
	n := len(data)
	chain := passChain[T]{primary: data, scratch: scratch[:n]}
	t := new(table[C])

	for index := range key.RadixSize() {
		src, dst := chain.src(), chain.dst()

		countPass(key, index, src, t)
		if single(t, n) {
			continue
		}
		endOffsets(t)
		scatterPass(key, index, src, dst, t)
		chain.flip()
	}

	chain.finish()
}

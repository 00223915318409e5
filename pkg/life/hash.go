package life

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// Hash returns an order-sensitive FNV-1a summary of the rows. It is a
// prefilter only: equal hashes must still be confirmed with Equal.
func (g *Grid) Hash() uint64 {
	h := uint64(fnvOffset)
	for y := 0; y < N; y++ {
		r := g.rows[y]
		if r == 0 {
			h ^= uint64(y) << 56
			h *= fnvPrime
			continue
		}
		for i := 0; i < 8; i++ {
			h ^= (r >> uint(8*i)) & 0xff
			h *= fnvPrime
		}
	}
	return h
}

// CanonicalHash hashes the normalized copy of g, so translated copies of the
// same pattern share a value.
func (g *Grid) CanonicalHash() uint64 {
	n := g.Normalized()
	return n.Hash()
}

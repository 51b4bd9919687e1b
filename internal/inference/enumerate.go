package inference

// The hypothesis space factors into two independent axes: a three-way gene
// partition per person (3^n points, addressed as base-3 indexes so the
// space can be split across workers) and a trait subset per person (2^k
// points over the k people without observed evidence). Both generators
// fill a caller-owned slice in place; nothing is materialized.

// pow3 returns 3^n.
func pow3(n int) uint64 {
	total := uint64(1)
	for i := 0; i < n; i++ {
		total *= 3
	}
	return total
}

// decodeGenePartition writes the gene assignment addressed by index into
// genes, least significant person first.
func decodeGenePartition(index uint64, genes []int) {
	for i := range genes {
		genes[i] = int(index % 3)
		index /= 3
	}
}

// traitSubsets enumerates every trait assignment consistent with evidence.
// Positions listed in free cycle through all combinations; all other
// positions keep whatever fixed value traits already holds.
type traitSubsets struct {
	traits []bool
	free   []int
	next   uint64
	total  uint64
}

// newTraitSubsets prepares an enumerator over traits. fixed maps positions
// to observed values; every position not in fixed is free.
func newTraitSubsets(n int, fixed map[int]bool) *traitSubsets {
	traits := make([]bool, n)
	free := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if value, ok := fixed[i]; ok {
			traits[i] = value
		} else {
			free = append(free, i)
		}
	}
	return &traitSubsets{
		traits: traits,
		free:   free,
		total:  uint64(1) << len(free),
	}
}

// reset rewinds the enumerator so it can be reused for the next gene
// partition.
func (s *traitSubsets) reset() {
	s.next = 0
}

// nextAssignment advances to the next consistent trait assignment and
// reports whether one was produced. The returned slice is owned by the
// enumerator and overwritten on each call.
func (s *traitSubsets) nextAssignment() ([]bool, bool) {
	if s.next == s.total {
		return nil, false
	}
	mask := s.next
	for bit, position := range s.free {
		s.traits[position] = mask&(uint64(1)<<bit) != 0
	}
	s.next++
	return s.traits, true
}

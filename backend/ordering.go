package backend

import "sort"

type Sorter struct {
	Backends Backends
}

func (ss Sorter) Sort() func(i, j int) bool {
	return func(i, j int) bool {
		return ss.Backends[i].Order() < ss.Backends[j].Order()
	}
}

// Sorted returns the backends in priority order, keeping configuration order for ties
func (bs Backends) Sorted() Backends {
	sorted := make(Backends, len(bs))
	copy(sorted, bs)
	sort.SliceStable(sorted, Sorter{Backends: sorted}.Sort())
	return sorted
}

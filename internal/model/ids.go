package model

// idAllocator hands out task ids. It never goes below the highest id it has
// observed.
type idAllocator struct {
	highest int
}

func (a *idAllocator) observe(id int) {
	if id > a.highest {
		a.highest = id
	}
}

func (a *idAllocator) next() int {
	a.highest++
	return a.highest
}

func (a *idAllocator) reset() { a.highest = 0 }

package memorystorage

import "strconv"

// idAllocator hands out decimal identifiers for one collection. The counter
// only moves forward, so an identifier is never reused after a delete.
type idAllocator struct {
	next int
}

func newIDAllocator(existingIDs []string) *idAllocator {
	maxID := 0
	for _, id := range existingIDs {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > maxID {
			maxID = n
		}
	}

	return &idAllocator{next: maxID + 1}
}

func (a *idAllocator) allocate() string {
	id := strconv.Itoa(a.next)
	a.next++

	return id
}

package a

import "errors"

var users = []string{"Sunjae", "Peter"} // want `package-level slice "users" is shared mutable state`

var booksByOwner map[string][]string // want `package-level map "booksByOwner" is shared mutable state`

type ids []int

var (
	nextID    = 1
	allocated ids // want `package-level slice "allocated" is shared mutable state`
)

var errNotFound = errors.New("not found")

var _ = []int{1}

type store struct {
	users []string
	books map[string]string
}

func newStore() *store {
	var local []string
	return &store{users: local, books: map[string]string{}}
}

func use() {
	_ = users
	_ = booksByOwner
	_ = nextID
	_ = allocated
	_ = errNotFound
	_ = newStore()
}

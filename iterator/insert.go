package iterator

// BackPusher is a container that grows at the back.
type BackPusher[T any] interface {
	PushBack(v T) error
}

// FrontPusher is a container that grows at the front.
type FrontPusher[T any] interface {
	PushFront(v T) error
}

// PositionalInserter is a container that inserts before a position and
// returns the position of the new element.
type PositionalInserter[T any, It any] interface {
	Insert(pos It, v T) (It, error)
}

// Insert is an output iterator that adds every assigned element to a
// container. Copies share state: after a failed insertion every further Set
// is dropped and Err reports the first error.
type Insert[T any] struct {
	st *insertState[T]
}

type insertState[T any] struct {
	push func(T) error
	err  error
}

func newInsert[T any](push func(T) error) Insert[T] {
	return Insert[T]{st: &insertState[T]{push: push}}
}

// Set inserts v.
func (it Insert[T]) Set(v T) {
	if it.st.err != nil {
		return
	}
	it.st.err = it.st.push(v)
}

// Next returns it; insertion positions advance on their own.
func (it Insert[T]) Next() Insert[T] { return it }

// Err returns the first insertion error, if any.
func (it Insert[T]) Err() error { return it.st.err }

// BackInserter returns an output iterator that appends to c.
func BackInserter[T any](c BackPusher[T]) Insert[T] {
	return newInsert(c.PushBack)
}

// FrontInserter returns an output iterator that prepends to c. A copied range
// ends up reversed.
func FrontInserter[T any](c FrontPusher[T]) Insert[T] {
	return newInsert(c.PushFront)
}

// Inserter returns an output iterator that inserts before pos, keeping the
// original order of the assigned elements.
func Inserter[T any, It interface{ Next() It }](c PositionalInserter[T, It], pos It) Insert[T] {
	return newInsert(func(v T) error {
		at, err := c.Insert(pos, v)
		if err != nil {
			return err
		}
		pos = at.Next()
		return nil
	})
}

// Append returns an output iterator that appends to *s.
func Append[T any](s *[]T) Insert[T] {
	return newInsert(func(v T) error {
		*s = append(*s, v)
		return nil
	})
}

// Discard returns an output iterator that drops everything assigned.
func Discard[T any]() Insert[T] {
	return newInsert(func(T) error { return nil })
}

var _ Output[int, Insert[int]] = Insert[int]{}

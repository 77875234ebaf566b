package iterator

// Category is the traversal capability of an iterator.
type Category int

const (
	// CategorySinglePass iterators can be read once, in order.
	CategorySinglePass Category = iota
	// CategoryForward iterators can be copied and re-read.
	CategoryForward
	// CategoryBidirectional iterators can also step backward.
	CategoryBidirectional
	// CategoryRandomAccess iterators jump and measure distances in constant time.
	CategoryRandomAccess
)

// String returns the name of the category.
func (c Category) String() string {
	switch c {
	case CategorySinglePass:
		return "single-pass"
	case CategoryForward:
		return "forward"
	case CategoryBidirectional:
		return "bidirectional"
	case CategoryRandomAccess:
		return "random-access"
	default:
		return "unknown"
	}
}

// Input is a readable position.
type Input[T any, It any] interface {
	// Get returns the element at the position. Calling Get on an end
	// position is a precondition violation.
	Get() T
	// Next returns the following position.
	Next() It
	// Equal reports whether both name the same position.
	Equal(It) bool
	// Category reports the traversal capability.
	Category() Category
}

// Output is a writable position.
type Output[T any, It any] interface {
	// Set stores v at the position.
	Set(v T)
	Next() It
}

// Forward is a multi-pass readable and writable position.
type Forward[T any, It any] interface {
	Input[T, It]
	Set(v T)
}

// Bidirectional adds backward steps.
type Bidirectional[T any, It any] interface {
	Forward[T, It]
	Prev() It
}

// RandomAccess adds constant-time jumps.
type RandomAccess[T any, It any] interface {
	Bidirectional[T, It]
	// Add returns the position n steps away; n may be negative.
	Add(n int) It
	// Sub returns the number of steps from other to the receiver.
	Sub(other It) int
}

// Contiguous is implemented by iterators over a single backing array.
// Tail returns the backing storage from the position to the end of the
// array; writes through it are visible to the container.
type Contiguous[T any] interface {
	Tail() []T
}

// Collect reads [first, last) into a new slice.
func Collect[T any, It Input[T, It]](first, last It) []T {
	var out []T
	for it := first; !it.Equal(last); it = it.Next() {
		out = append(out, it.Get())
	}
	return out
}

// Swap exchanges the elements at a and b.
func Swap[T any, It Forward[T, It]](a, b It) {
	va, vb := a.Get(), b.Get()
	a.Set(vb)
	b.Set(va)
}

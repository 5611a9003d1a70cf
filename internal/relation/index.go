package relation

// set 无序集合
type set[T comparable] map[T]struct{}

// Index 双向索引：正向 a -> {b}，反向 b -> {a}，两侧总在同一次调用中更新
type Index[A comparable, B comparable] struct {
	forward  map[A]set[B]
	backward map[B]set[A]
}

// NewIndex 创建空索引
func NewIndex[A comparable, B comparable]() *Index[A, B] {
	return &Index[A, B]{
		forward:  make(map[A]set[B]),
		backward: make(map[B]set[A]),
	}
}

// Link 建立 a -> b，已存在时不做任何修改，返回是否发生变化
func (x *Index[A, B]) Link(a A, b B) bool {
	if x.Holds(a, b) {
		return false
	}
	put(x.forward, a, b)
	put(x.backward, b, a)
	return true
}

// Unlink 解除 a -> b，不存在时不做任何修改，返回是否发生变化
func (x *Index[A, B]) Unlink(a A, b B) bool {
	if !x.Holds(a, b) {
		return false
	}
	drop(x.forward, a, b)
	drop(x.backward, b, a)
	return true
}

// Holds 正向查询
func (x *Index[A, B]) Holds(a A, b B) bool {
	_, ok := x.forward[a][b]
	return ok
}

// HeldBy 反向查询：a 是否在 b 的反向集合中
func (x *Index[A, B]) HeldBy(b B, a A) bool {
	_, ok := x.backward[b][a]
	return ok
}

// Forward a 的正向集合
func (x *Index[A, B]) Forward(a A) []B {
	return keys(x.forward[a])
}

// Backward b 的反向集合
func (x *Index[A, B]) Backward(b B) []A {
	return keys(x.backward[b])
}

func (x *Index[A, B]) ForwardCount(a A) int {
	return len(x.forward[a])
}

func (x *Index[A, B]) BackwardCount(b B) int {
	return len(x.backward[b])
}

func put[K comparable, V comparable](m map[K]set[V], k K, v V) {
	s, ok := m[k]
	if !ok {
		s = make(set[V])
		m[k] = s
	}
	s[v] = struct{}{}
}

func drop[K comparable, V comparable](m map[K]set[V], k K, v V) {
	s := m[k]
	delete(s, v)
	if len(s) == 0 {
		delete(m, k)
	}
}

func keys[T comparable](s set[T]) []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

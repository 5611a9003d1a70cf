package relation

// Kind 关系类型
type Kind string

const (
	KindFollow   Kind = "follow"
	KindFavorite Kind = "favorite"
	KindTag      Kind = "tag"
)

// Edge 一条有向边
type Edge[A comparable, B comparable] struct {
	From A
	To   B
}

// Relation 在双向索引之上记录自上次提交以来的净变化，供持久化层落库
type Relation[A comparable, B comparable] struct {
	kind     Kind
	index    *Index[A, B]
	linked   map[Edge[A, B]]struct{}
	unlinked map[Edge[A, B]]struct{}
}

// NewRelation 创建关系
func NewRelation[A comparable, B comparable](kind Kind) *Relation[A, B] {
	return &Relation[A, B]{
		kind:     kind,
		index:    NewIndex[A, B](),
		linked:   make(map[Edge[A, B]]struct{}),
		unlinked: make(map[Edge[A, B]]struct{}),
	}
}

func (r *Relation[A, B]) Kind() Kind {
	return r.kind
}

// Seed 写入从存储加载的已有关系，不产生待提交变化
func (r *Relation[A, B]) Seed(a A, b B) {
	r.index.Link(a, b)
}

// Link 幂等建立关系
func (r *Relation[A, B]) Link(a A, b B) bool {
	if !r.index.Link(a, b) {
		return false
	}
	e := Edge[A, B]{From: a, To: b}
	if _, ok := r.unlinked[e]; ok {
		delete(r.unlinked, e)
	} else {
		r.linked[e] = struct{}{}
	}
	return true
}

// Unlink 幂等解除关系
func (r *Relation[A, B]) Unlink(a A, b B) bool {
	if !r.index.Unlink(a, b) {
		return false
	}
	e := Edge[A, B]{From: a, To: b}
	if _, ok := r.linked[e]; ok {
		delete(r.linked, e)
	} else {
		r.unlinked[e] = struct{}{}
	}
	return true
}

func (r *Relation[A, B]) Holds(a A, b B) bool {
	return r.index.Holds(a, b)
}

func (r *Relation[A, B]) HeldBy(b B, a A) bool {
	return r.index.HeldBy(b, a)
}

func (r *Relation[A, B]) Forward(a A) []B {
	return r.index.Forward(a)
}

func (r *Relation[A, B]) Backward(b B) []A {
	return r.index.Backward(b)
}

func (r *Relation[A, B]) ForwardCount(a A) int {
	return r.index.ForwardCount(a)
}

func (r *Relation[A, B]) BackwardCount(b B) int {
	return r.index.BackwardCount(b)
}

// Pending 返回待落库的新增与删除
func (r *Relation[A, B]) Pending() (linked, unlinked []Edge[A, B]) {
	return edges(r.linked), edges(r.unlinked)
}

// Dirty 是否有待提交变化
func (r *Relation[A, B]) Dirty() bool {
	return len(r.linked) > 0 || len(r.unlinked) > 0
}

// Commit 落库成功后清空待提交变化
func (r *Relation[A, B]) Commit() {
	clear(r.linked)
	clear(r.unlinked)
}

func edges[A comparable, B comparable](m map[Edge[A, B]]struct{}) []Edge[A, B] {
	out := make([]Edge[A, B], 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	return out
}

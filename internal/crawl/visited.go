package crawl

// VisitedSet holds the normalized URLs already processed in a run.
// It is owned by a single Engine and is not safe for concurrent use.
type VisitedSet struct {
	seen  map[string]struct{}
	order []string
}

// NewVisitedSet returns an empty set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// Add inserts u and reports whether it was absent.
func (v *VisitedSet) Add(u string) bool {
	if _, ok := v.seen[u]; ok {
		return false
	}
	v.seen[u] = struct{}{}
	v.order = append(v.order, u)
	return true
}

func (v *VisitedSet) Contains(u string) bool {
	_, ok := v.seen[u]
	return ok
}

func (v *VisitedSet) Len() int {
	return len(v.seen)
}

// List returns the URLs in insertion order.
func (v *VisitedSet) List() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

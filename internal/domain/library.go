package domain

import "sort"

// UnknownPackTitle is shown wherever a pack id no longer resolves.
const UnknownPackTitle = "Unknown technique"

// Library is an immutable snapshot of the technique catalogue keyed by pack id.
// Writers derive a new snapshot with With / Without; readers keep whatever
// snapshot they were handed.
type Library struct {
	packs map[string]TechniquePack
	order []string
}

// NewLibrary builds a snapshot from packs. Later duplicates replace earlier ones.
func NewLibrary(packs []TechniquePack) *Library {
	lib := &Library{packs: make(map[string]TechniquePack, len(packs))}
	for _, p := range packs {
		if _, seen := lib.packs[p.ID]; !seen {
			lib.order = append(lib.order, p.ID)
		}
		lib.packs[p.ID] = p.Clone()
	}
	return lib
}

// Pack looks up a pack by id. The returned value is a copy.
func (l *Library) Pack(id string) (TechniquePack, bool) {
	if l == nil {
		return TechniquePack{}, false
	}
	p, ok := l.packs[id]
	if !ok {
		return TechniquePack{}, false
	}
	return p.Clone(), true
}

// Title resolves a pack title, falling back to UnknownPackTitle.
func (l *Library) Title(id string) string {
	if l == nil {
		return UnknownPackTitle
	}
	if p, ok := l.packs[id]; ok {
		return p.Title
	}
	return UnknownPackTitle
}

// Len returns the number of packs in the snapshot.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.order)
}

// All returns copies of every pack in insertion order.
func (l *Library) All() []TechniquePack {
	if l == nil {
		return nil
	}
	out := make([]TechniquePack, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.packs[id].Clone())
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (l *Library) Categories() []string {
	seen := map[string]struct{}{}
	var cats []string
	for _, p := range l.All() {
		if _, ok := seen[p.Category]; ok || p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats
}

// With returns a new snapshot containing pack, replacing any pack with the same id.
func (l *Library) With(pack TechniquePack) *Library {
	next := l.copy()
	if _, ok := next.packs[pack.ID]; !ok {
		next.order = append(next.order, pack.ID)
	}
	next.packs[pack.ID] = pack.Clone()
	return next
}

// Without returns a new snapshot with id removed.
func (l *Library) Without(id string) *Library {
	next := l.copy()
	if _, ok := next.packs[id]; !ok {
		return next
	}
	delete(next.packs, id)
	for i, v := range next.order {
		if v == id {
			next.order = append(next.order[:i], next.order[i+1:]...)
			break
		}
	}
	return next
}

// copy shares pack values with l. Stored packs are never mutated in place.
func (l *Library) copy() *Library {
	next := &Library{packs: map[string]TechniquePack{}}
	if l == nil {
		return next
	}
	next.packs = make(map[string]TechniquePack, len(l.packs)+1)
	for k, v := range l.packs {
		next.packs[k] = v
	}
	next.order = append([]string(nil), l.order...)
	return next
}

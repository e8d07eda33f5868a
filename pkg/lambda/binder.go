package lambda

import "github.com/samber/lo"

// Names maps binder identities to their source names. It is only used for
// display.
type Names []string

// Lookup returns the source name of id, or a placeholder for ids outside
// the table.
func (n Names) Lookup(id int) string {
	if id < 0 || id >= len(n) {
		return "<unbound>"
	}
	return n[id]
}

// Binder hands out binder identities while parsing. The table only grows;
// the scope stack tracks which identities are visible at the current parse
// position, innermost last.
type Binder struct {
	table []string
	scope []int
	free  map[string]int
}

func NewBinder() *Binder {
	return &Binder{free: make(map[string]int)}
}

func (b *Binder) nextID(name string) int {
	id := len(b.table)
	b.table = append(b.table, name)
	return id
}

// NewBinding registers name under a fresh identity and makes it visible.
func (b *Binder) NewBinding(name string) int {
	id := b.nextID(name)
	b.scope = append(b.scope, id)
	return id
}

// PopBinding hides the innermost visible binding. Its identity stays in
// the table.
func (b *Binder) PopBinding() {
	if len(b.scope) == 0 {
		return
	}
	b.scope = b.scope[:len(b.scope)-1]
}

// FindIndex returns the identity of the innermost visible binding called
// name.
func (b *Binder) FindIndex(name string) (int, bool) {
	for i := len(b.scope) - 1; i >= 0; i-- {
		if b.table[b.scope[i]] == name {
			return b.scope[i], true
		}
	}
	return 0, false
}

// Free returns the identity of the free variable name, allocating it on
// first use. Free variables never enter the scope stack.
func (b *Binder) Free(name string) int {
	if id, ok := b.free[name]; ok {
		return id
	}
	id := b.nextID(name)
	b.free[name] = id
	return id
}

// Visible reports whether a binding called name is currently in scope.
func (b *Binder) Visible(name string) bool {
	return lo.ContainsBy(b.scope, func(id int) bool { return b.table[id] == name })
}

// VisibleNames lists the names in scope, innermost first.
func (b *Binder) VisibleNames() []string {
	names := lo.Map(b.scope, func(id int, _ int) string { return b.table[id] })
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// Depth returns the number of visible bindings.
func (b *Binder) Depth() int {
	return len(b.scope)
}

// Names returns a copy of the identity table.
func (b *Binder) Names() Names {
	return append(Names(nil), b.table...)
}

package elaborate

import (
	"sort"
	"strings"

	"github.com/sable-lang/sable/lang/parser"
)

type SymbolKind int

const (
	SymClass SymbolKind = iota
	SymEnum
	SymTypealias
	SymInterface
	SymExtension
	SymFunc
	SymInit
	SymCtor
	SymVar
)

func (k SymbolKind) String() string {
	switch k {
	case SymClass:
		return "Class"
	case SymEnum:
		return "Enum"
	case SymTypealias:
		return "Typealias"
	case SymInterface:
		return "Interface"
	case SymExtension:
		return "Extension"
	case SymFunc:
		return "Func"
	case SymInit:
		return "Init"
	case SymCtor:
		return "Ctor"
	case SymVar:
		return "Var"
	}
	return "<?symbol>"
}

// Symbol is one binding record. Path is the fully-qualified dot-joined path
// from the table root. Symbols are plain comparable values so sets
// deduplicate identical ones.
type Symbol struct {
	Access parser.Access
	Kind   SymbolKind
	Path   string
}

// SymbolSet is a deduplicating set of symbols.
type SymbolSet map[Symbol]struct{}

func (s SymbolSet) add(sym Symbol) {
	s[sym] = struct{}{}
}

func (s SymbolSet) has(sym Symbol) bool {
	_, ok := s[sym]
	return ok
}

func (s SymbolSet) merge(other SymbolSet) {
	for sym := range other {
		s[sym] = struct{}{}
	}
}

// Sorted returns the symbols ordered by (kind, path), the set's canonical
// order.
func (s SymbolSet) Sorted() []Symbol {
	syms := make([]Symbol, 0, len(s))
	for sym := range s {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Kind != syms[j].Kind {
			return syms[i].Kind < syms[j].Kind
		}
		return syms[i].Path < syms[j].Path
	})
	return syms
}

// NodeSet deduplicates table nodes by identity: an import may copy a
// reference to the same child into multiple parents.
type NodeSet map[*TableNode]struct{}

func (s NodeSet) merge(other NodeSet) {
	for n := range other {
		s[n] = struct{}{}
	}
}

// Sorted returns the nodes ordered by path.
func (s NodeSet) Sorted() []*TableNode {
	nodes := make([]*TableNode, 0, len(s))
	for n := range s {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Path < nodes[j].Path })
	return nodes
}

type TableNodeKind int

const (
	NodeModule TableNodeKind = iota
	NodeClass
	NodeEnum
	NodeInterface
	NodeExtension
)

func (k TableNodeKind) String() string {
	switch k {
	case NodeModule:
		return "Module"
	case NodeClass:
		return "Class"
	case NodeEnum:
		return "Enum"
	case NodeInterface:
		return "Interface"
	case NodeExtension:
		return "Extension"
	}
	return "<?node>"
}

// TableNode is one scope in the symbol table tree.
type TableNode struct {
	Kind    TableNodeKind
	Ident   string
	Path    string
	Types   map[string]SymbolSet
	Exprs   map[string]SymbolSet
	Nested  map[string]NodeSet
	parent  *TableNode
	counter int
}

func newTableNode(kind TableNodeKind, ident string) *TableNode {
	return &TableNode{
		Kind:   kind,
		Ident:  ident,
		Types:  make(map[string]SymbolSet),
		Exprs:  make(map[string]SymbolSet),
		Nested: make(map[string]NodeSet),
	}
}

func (n *TableNode) Parent() *TableNode { return n.parent }

func (n *TableNode) findTypeSymbol(ident string) (Symbol, error) {
	set, ok := n.Types[ident]
	if !ok || len(set) == 0 {
		return Symbol{}, &ResolveError{Kind: SymbolNotFound, Name: ident}
	}
	if len(set) != 1 {
		return Symbol{}, &ResolveError{Kind: AmbiguousSymbol, Name: ident}
	}
	return set.Sorted()[0], nil
}

func (n *TableNode) findExprSymbol(ident string) (Symbol, error) {
	set, ok := n.Exprs[ident]
	if !ok || len(set) == 0 {
		return Symbol{}, &ResolveError{Kind: SymbolNotFound, Name: ident}
	}
	if len(set) != 1 {
		return Symbol{}, &ResolveError{Kind: AmbiguousSymbol, Name: ident}
	}
	return set.Sorted()[0], nil
}

// FindNode resolves a nested child. Zero candidates is SymbolNotFound, more
// than one AmbiguousSymbol.
func (n *TableNode) FindNode(ident string) (*TableNode, error) {
	set, ok := n.Nested[ident]
	if !ok || len(set) == 0 {
		return nil, &ResolveError{Kind: SymbolNotFound, Name: ident}
	}
	if len(set) != 1 {
		return nil, &ResolveError{Kind: AmbiguousSymbol, Name: ident}
	}
	return set.Sorted()[0], nil
}

// Table is the rooted tree of nested scopes plus the active cursor used
// while building and elaborating.
type Table struct {
	root   *TableNode
	active *TableNode
}

func NewTable(ident string) *Table {
	root := newTableNode(NodeModule, ident)
	root.Path = root.Ident
	return &Table{root: root, active: root}
}

func (t *Table) Root() *TableNode   { return t.root }
func (t *Table) Active() *TableNode { return t.active }

// ActiveCount returns and bumps the active node's counter, used to
// synthesize `ext%<n>` and `init%<n>` identifiers.
func (t *Table) ActiveCount() int {
	c := t.active.counter
	t.active.counter++
	return c
}

// AddNode creates a child scope under the active node.
func (t *Table) AddNode(ident string, kind TableNodeKind) {
	node := newTableNode(kind, ident)
	node.parent = t.active
	node.Path = t.active.Path + "." + ident
	set, ok := t.active.Nested[ident]
	if !ok {
		set = make(NodeSet)
		t.active.Nested[ident] = set
	}
	set[node] = struct{}{}
}

func (t *Table) EnterNode(ident string) error {
	node, err := t.active.FindNode(ident)
	if err != nil {
		return err
	}
	t.active = node
	return nil
}

func (t *Table) ExitNode() error {
	if t.active.parent == nil {
		return &ResolveError{Kind: SymbolNotFound, Name: t.active.Ident + " has no parent scope"}
	}
	t.active = t.active.parent
	return nil
}

// AddTypeSymbol registers a locally declared type symbol under the active
// node. Registering the identical symbol twice is a duplicate declaration.
func (t *Table) AddTypeSymbol(ident string, sym Symbol) error {
	sym.Path = t.active.Path + "." + ident
	set, ok := t.active.Types[ident]
	if !ok {
		set = make(SymbolSet)
		t.active.Types[ident] = set
	}
	if set.has(sym) {
		return &SemanticError{Kind: DuplicateDeclaration, Name: sym.Path}
	}
	set.add(sym)
	return nil
}

// AddExprSymbol registers a locally declared expression symbol under the
// active node.
func (t *Table) AddExprSymbol(ident string, sym Symbol) error {
	sym.Path = t.active.Path + "." + ident
	set, ok := t.active.Exprs[ident]
	if !ok {
		set = make(SymbolSet)
		t.active.Exprs[ident] = set
	}
	if set.has(sym) {
		return &SemanticError{Kind: DuplicateDeclaration, Name: sym.Path}
	}
	set.add(sym)
	return nil
}

// LiftCtors copies the constructor symbols of the named enum child into the
// active node, making enum cases visible unqualified in the enclosing
// scope. Like an import copy, the symbols keep their original paths.
func (t *Table) LiftCtors(ident string) error {
	node, err := t.active.FindNode(ident)
	if err != nil {
		return err
	}
	for name, set := range node.Exprs {
		for sym := range set {
			if sym.Kind != SymCtor {
				continue
			}
			dst, ok := t.active.Exprs[name]
			if !ok {
				dst = make(SymbolSet)
				t.active.Exprs[name] = dst
			}
			dst.add(sym)
		}
	}
	return nil
}

// FindTypeSymbol resolves ident(.path) to a type symbol. With an empty path
// it climbs ancestors to the nearest node holding ident, where more than one
// symbol is AmbiguousSymbol; otherwise it finds the nearest ancestor with a
// nested child named ident, walks the path through nested nodes, and looks
// the final segment up in that node's types.
func (t *Table) FindTypeSymbol(ident string, path []string) (Symbol, error) {
	current := t.active
	if len(path) == 0 {
		for current != nil {
			sym, err := current.findTypeSymbol(ident)
			if err == nil {
				return sym, nil
			}
			if re, ok := err.(*ResolveError); ok && re.Kind == AmbiguousSymbol {
				return Symbol{}, err
			}
			current = current.parent
		}
		return Symbol{}, &ResolveError{Kind: SymbolNotFound, Name: ident}
	}
	node, err := t.descend(ident, path[:len(path)-1])
	if err != nil {
		return Symbol{}, err
	}
	return node.findTypeSymbol(path[len(path)-1])
}

// FindExprSymbol is FindTypeSymbol over the expression namespace.
func (t *Table) FindExprSymbol(ident string, path []string) (Symbol, error) {
	current := t.active
	if len(path) == 0 {
		for current != nil {
			sym, err := current.findExprSymbol(ident)
			if err == nil {
				return sym, nil
			}
			if re, ok := err.(*ResolveError); ok && re.Kind == AmbiguousSymbol {
				return Symbol{}, err
			}
			current = current.parent
		}
		return Symbol{}, &ResolveError{Kind: SymbolNotFound, Name: ident}
	}
	node, err := t.descend(ident, path[:len(path)-1])
	if err != nil {
		return Symbol{}, err
	}
	return node.findExprSymbol(path[len(path)-1])
}

// descend finds the nearest ancestor holding a nested child named ident and
// walks the remaining segments through nested nodes.
func (t *Table) descend(ident string, path []string) (*TableNode, error) {
	current := t.active
	for current != nil {
		if _, ok := current.Nested[ident]; ok {
			break
		}
		current = current.parent
	}
	if current == nil {
		return nil, &ResolveError{Kind: SymbolNotFound, Name: ident}
	}
	node, err := current.FindNode(ident)
	if err != nil {
		return nil, err
	}
	for _, seg := range path {
		node, err = node.FindNode(seg)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// importBucket accumulates the entries one `open` contributes, keyed by the
// dotted import path; the final segment of the key is the local name.
type importBucket struct {
	types  SymbolSet
	exprs  SymbolSet
	nested NodeSet
}

func bucketFor(buckets map[string]*importBucket, path []string) *importBucket {
	key := strings.Join(path, ".")
	b, ok := buckets[key]
	if !ok {
		b = &importBucket{types: make(SymbolSet), exprs: make(SymbolSet), nested: make(NodeSet)}
		buckets[key] = b
	}
	return b
}

// Import resolves an `open` against the table. The head of a node import is
// looked up by climbing from the active node; the nested import tree is
// then walked against the target, accumulating copies. Alias hiding is
// applied after all copies so that `open M.{C as D, *}` ends with the
// original C erased regardless of walk order.
func (t *Table) Import(imp parser.Import) error {
	ni, ok := imp.(*parser.NodeImport)
	if !ok {
		return nil
	}
	current := t.active
	for current != nil {
		if _, ok := current.Nested[ni.Name]; ok {
			break
		}
		current = current.parent
	}
	if current == nil {
		return &ResolveError{Kind: SymbolNotFound, Name: ni.Name}
	}
	target, err := current.FindNode(ni.Name)
	if err != nil {
		return err
	}

	buckets := make(map[string]*importBucket)
	var hidden []string
	path := []string{ni.Name}
	for _, nested := range ni.Nested {
		if err := importWalk(target, nested, path, buckets, &hidden); err != nil {
			return err
		}
	}
	for _, key := range hidden {
		delete(buckets, key)
	}

	for key, b := range buckets {
		segs := strings.Split(key, ".")
		local := segs[len(segs)-1]
		if len(b.types) > 0 {
			set, ok := t.active.Types[local]
			if !ok {
				set = make(SymbolSet)
				t.active.Types[local] = set
			}
			set.merge(b.types)
		}
		if len(b.exprs) > 0 {
			set, ok := t.active.Exprs[local]
			if !ok {
				set = make(SymbolSet)
				t.active.Exprs[local] = set
			}
			set.merge(b.exprs)
		}
		if len(b.nested) > 0 {
			set, ok := t.active.Nested[local]
			if !ok {
				set = make(NodeSet)
				t.active.Nested[local] = set
			}
			set.merge(b.nested)
		}
	}
	return nil
}

func importWalk(current *TableNode, imp parser.Import, path []string, buckets map[string]*importBucket, hidden *[]string) error {
	switch imp := imp.(type) {
	case *parser.NodeImport:
		path = append(path, imp.Name)
		if len(imp.Nested) == 0 {
			b := bucketFor(buckets, path)
			b.types.merge(current.Types[imp.Name])
			b.exprs.merge(current.Exprs[imp.Name])
			b.nested.merge(current.Nested[imp.Name])
			return nil
		}
		next, err := current.FindNode(imp.Name)
		if err != nil {
			return err
		}
		for _, nested := range imp.Nested {
			if err := importWalk(next, nested, path, buckets, hidden); err != nil {
				return err
			}
		}
		return nil
	case *parser.AliasImport:
		if imp.Alias != "" {
			b := bucketFor(buckets, append(path, imp.Alias))
			b.types.merge(current.Types[imp.Name])
			b.exprs.merge(current.Exprs[imp.Name])
			b.nested.merge(current.Nested[imp.Name])
		}
		*hidden = append(*hidden, strings.Join(append(path, imp.Name), "."))
		return nil
	case *parser.WildImport:
		for name, set := range current.Types {
			bucketFor(buckets, append(path, name)).types.merge(set)
		}
		for name, set := range current.Exprs {
			bucketFor(buckets, append(path, name)).exprs.merge(set)
		}
		for name, set := range current.Nested {
			bucketFor(buckets, append(path, name)).nested.merge(set)
		}
		return nil
	}
	return nil
}

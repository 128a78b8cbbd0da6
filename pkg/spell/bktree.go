package spell

// Suggestion is one correction candidate with its exact distance from the
// queried word.
type Suggestion struct {
	Word     string
	Distance int
}

// node holds one word and its children bucketed by exact distance. At most
// one child exists per distance value, and nodes are reached only through
// their parent.
type node struct {
	word     string
	children map[int]*node
}

// Tree is a BK-tree keyed by Distance. Insertion order shapes the tree and
// with it query cost, never query results; there is no rebalancing. Once
// building is done the tree is safe for concurrent readers, Insert is not.
type Tree struct {
	root *node
	size int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// BuildTree inserts every word into a fresh tree. The first word becomes
// the root.
func BuildTree(words []string) *Tree {
	t := NewTree()
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// Insert adds word to the tree. Inserting a word that is already present
// is a no-op.
func (t *Tree) Insert(word string) {
	if t.root == nil {
		t.root = &node{word: word}
		t.size = 1
		return
	}
	cur := t.root
	for {
		d := Distance(word, cur.word)
		if d == 0 {
			return
		}
		child, ok := cur.children[d]
		if !ok {
			if cur.children == nil {
				cur.children = make(map[int]*node)
			}
			cur.children[d] = &node{word: word}
			t.size++
			return
		}
		cur = child
	}
}

// Contains reports whether word is in the tree.
func (t *Tree) Contains(word string) bool {
	cur := t.root
	for cur != nil {
		d := Distance(word, cur.word)
		if d == 0 {
			return true
		}
		cur = cur.children[d]
	}
	return false
}

// Query returns every tree word within radius of word, with exact
// distances, in discovery order. Radius 0 is an exact point lookup and a
// negative radius matches nothing. An empty tree yields no matches.
func (t *Tree) Query(word string, radius int) []Suggestion {
	if t.root == nil || radius < 0 {
		return nil
	}
	var out []Suggestion
	search(t.root, word, radius, &out)
	return out
}

// search emits the node when it is inside the radius, then descends only
// into children whose edge distance c satisfies |c - d| <= radius. Any
// word below a child outside that band is at least |c - d| away from the
// query by the triangle inequality, so the whole branch is skipped. The
// band is scanned in ascending c to keep discovery order deterministic
// for a fixed tree shape.
func search(n *node, word string, radius int, out *[]Suggestion) {
	d := Distance(word, n.word)
	if d <= radius {
		*out = append(*out, Suggestion{Word: n.word, Distance: d})
	}
	lo := d - radius
	if lo < 1 {
		lo = 1
	}
	for c := lo; c <= d+radius; c++ {
		if child, ok := n.children[c]; ok {
			search(child, word, radius, out)
		}
	}
}

// Len returns the number of distinct words in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Depth returns the longest root-to-leaf path in nodes, 0 when empty.
func (t *Tree) Depth() int {
	return depth(t.root)
}

func depth(n *node) int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, child := range n.children {
		if d := depth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

package completion

import (
	"strings"
	"sync"
)

// Completer adapts a completion tree to readline's AutoCompleter.
// readline calls Do from its own goroutine, so the tree is swapped under a lock.
type Completer struct {
	mu   sync.RWMutex
	tree *Node
}

// NewCompleter returns a Completer over tree.
func NewCompleter(tree *Node) *Completer {
	return &Completer{tree: tree}
}

// SetTree replaces the tree wholesale.
func (c *Completer) SetTree(tree *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree = tree
}

// Tree returns the current tree.
func (c *Completer) Tree() *Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree
}

// Candidates returns the completions for line, which ends at the cursor.
// A trailing space starts a new, empty word.
func (c *Completer) Candidates(line string) []string {
	tokens := strings.Fields(line)
	if len(tokens) == 0 || strings.HasSuffix(line, " ") {
		tokens = append(tokens, "")
	}
	// Trees are not modified once set.
	return Complete(tokens, c.Tree())
}

// Do implements readline.AutoCompleter. It returns the part of each
// candidate past the word being typed, and that word's length.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	partial := ""
	if words := strings.Fields(text); len(words) > 0 && !strings.HasSuffix(text, " ") {
		partial = words[len(words)-1]
	}

	candidates := c.Candidates(text)
	if len(candidates) == 0 {
		return nil, 0
	}

	out := make([][]rune, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, []rune(cand[len(partial):]))
	}
	return out, len([]rune(partial))
}

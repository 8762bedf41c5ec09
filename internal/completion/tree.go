// Package completion implements tab completion for the shell.
//
// Completion is driven by a Node tree: each level maps the words that may
// appear at that position of a command line to the words that may follow.
// The tree is static except for the domain names under the lifecycle
// commands, which NewTree fills in from the current session.
package completion

import "strings"

// Separator is appended to every completion candidate.
const Separator = " "

// Node is one level of the completion tree. Keys keep insertion order.
// A node with no children is terminal.
type Node struct {
	keys     []string
	children map[string]*Node
}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Set attaches child under key, replacing any existing child for key
// without changing its position. A nil child is stored as a terminal node.
func (n *Node) Set(key string, child *Node) *Node {
	if child == nil {
		child = NewNode()
	}
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
	return child
}

// Add attaches a terminal child for each key.
func (n *Node) Add(keys ...string) *Node {
	for _, k := range keys {
		n.Set(k, nil)
	}
	return n
}

// Child returns the child for key.
func (n *Node) Child(key string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	c, ok := n.children[key]
	return c, ok
}

// Keys returns the node's keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Terminal reports whether the node has no children.
func (n *Node) Terminal() bool {
	return n == nil || len(n.keys) == 0
}

// Complete walks tokens down the tree. The last token is the word being
// typed; every key at its level that starts with it is returned with
// Separator appended. Earlier tokens must match keys exactly.
func Complete(tokens []string, n *Node) []string {
	if n.Terminal() || len(tokens) == 0 {
		return nil
	}

	if len(tokens) == 1 {
		var out []string
		for _, k := range n.keys {
			if strings.HasPrefix(k, tokens[0]) {
				out = append(out, k+Separator)
			}
		}
		return out
	}

	child, ok := n.Child(tokens[0])
	if !ok {
		return nil
	}
	return Complete(tokens[1:], child)
}

// Commands lists the shell's top-level words in completion order.
var Commands = []string{
	"connect",
	"exit",
	"export",
	"import",
	"info",
	"list",
	"resume",
	"shutdown",
	"start",
	"suspend",
	"quit",
}

// DomainCommands take a domain name as their argument.
var DomainCommands = []string{
	"start",
	"shutdown",
	"suspend",
	"resume",
	"info",
	"export",
}

// NewTree builds the full completion tree, with domains offered after each
// of DomainCommands.
func NewTree(domains []string) *Node {
	root := NewNode()
	root.Add(Commands...)

	for _, cmd := range DomainCommands {
		sub := NewNode()
		sub.Add(domains...)
		root.Set(cmd, sub)
	}

	return root
}

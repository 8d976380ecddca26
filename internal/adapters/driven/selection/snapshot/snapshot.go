// Package snapshot reads a captured text selection and the render tree
// around it from JSON, so selections can be replayed outside the UI that
// produced them.
//
// A snapshot looks like:
//
//	{
//	  "text": "selected words",
//	  "collapsed": false,
//	  "start": "span-12",
//	  "rects": [{"left": 120, "top": 340, "width": 210, "height": 18}],
//	  "nodes": [
//	    {"id": "viewer", "box": {...}},
//	    {"id": "host-3", "parent": "viewer", "attrs": {"data-page-host": ""}, "box": {...}},
//	    {"id": "page-3", "parent": "host-3", "attrs": {"data-page-number": "3"}, "box": {...}},
//	    {"id": "span-12", "parent": "page-3", "box": {...}}
//	  ]
//	}
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
)

// Ensure the snapshot types implement the selection ports.
var (
	_ driven.Selection  = (*Selection)(nil)
	_ driven.RenderNode = (*Node)(nil)
)

// nodeJSON is the wire form of a render tree node.
type nodeJSON struct {
	ID     string            `json:"id"`
	Parent string            `json:"parent,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
	Box    domain.PixelRect  `json:"box"`
}

// selectionJSON is the wire form of a snapshot.
type selectionJSON struct {
	Text      string             `json:"text"`
	Collapsed bool               `json:"collapsed"`
	Start     string             `json:"start"`
	Rects     []domain.PixelRect `json:"rects"`
	Nodes     []nodeJSON         `json:"nodes"`
}

// Node is a render tree node restored from a snapshot.
type Node struct {
	id     string
	parent *Node
	attrs  map[string]string
	box    domain.PixelRect
}

// ID returns the node's identifier.
func (n *Node) ID() string {
	return n.id
}

// Parent returns the enclosing node, or nil at the root.
func (n *Node) Parent() driven.RenderNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Attribute returns a marker attribute.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// BoundingBox returns the node's viewport rectangle.
func (n *Node) BoundingBox() domain.PixelRect {
	return n.box
}

// Selection is a replayable text selection.
type Selection struct {
	text      string
	collapsed bool
	start     *Node
	rects     []domain.PixelRect
	nodes     map[string]*Node
}

// IsCollapsed reports whether the selection has no extent.
func (s *Selection) IsCollapsed() bool {
	return s.collapsed
}

// Text returns the selected text.
func (s *Selection) Text() string {
	return s.text
}

// StartNode returns the node the range starts in, or nil.
func (s *Selection) StartNode() driven.RenderNode {
	if s.start == nil {
		return nil
	}
	return s.start
}

// ClientRects returns a copy of the range's client rectangles.
func (s *Selection) ClientRects() []domain.PixelRect {
	return append([]domain.PixelRect(nil), s.rects...)
}

// Node looks a node up by ID.
func (s *Selection) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Parse decodes a snapshot and links its render tree.
func Parse(r io.Reader) (*Selection, error) {
	var raw selectionJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding selection snapshot: %w", err)
	}

	nodes := make(map[string]*Node, len(raw.Nodes))
	for _, n := range raw.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node without id", domain.ErrInvalidInput)
		}
		if _, dup := nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node %q", domain.ErrInvalidInput, n.ID)
		}
		nodes[n.ID] = &Node{id: n.ID, attrs: n.Attrs, box: n.Box}
	}
	for _, n := range raw.Nodes {
		if n.Parent == "" {
			continue
		}
		parent, ok := nodes[n.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: node %q has unknown parent %q", domain.ErrInvalidInput, n.ID, n.Parent)
		}
		nodes[n.ID].parent = parent
	}
	if err := checkAcyclic(nodes); err != nil {
		return nil, err
	}

	sel := &Selection{
		text:      raw.Text,
		collapsed: raw.Collapsed,
		rects:     raw.Rects,
		nodes:     nodes,
	}
	if raw.Start != "" {
		start, ok := nodes[raw.Start]
		if !ok {
			return nil, fmt.Errorf("%w: unknown start node %q", domain.ErrInvalidInput, raw.Start)
		}
		sel.start = start
	}
	return sel, nil
}

// Load reads a snapshot file.
func Load(path string) (*Selection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening selection snapshot: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// checkAcyclic rejects parent chains that loop, which would make ancestor
// walks spin forever.
func checkAcyclic(nodes map[string]*Node) error {
	for id, n := range nodes {
		seen := map[*Node]bool{}
		for cur := n; cur != nil; cur = cur.parent {
			if seen[cur] {
				return fmt.Errorf("%w: parent cycle at node %q", domain.ErrInvalidInput, id)
			}
			seen[cur] = true
		}
	}
	return nil
}

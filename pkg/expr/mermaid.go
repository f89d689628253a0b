package expr

import (
	"fmt"
	"strings"
)

// Mermaid renders n as a Mermaid flowchart. Nodes are numbered in
// breadth-first order starting at 0 for the root, and every non-root node gets
// one edge from its parent:
//
//	flowchart TD
//	    0[*]
//	    1[z]
//	    0 --> 1
func Mermaid(n Node) string {
	type item struct {
		node   Node
		parent int
	}

	var nodes, edges []string
	queue := []item{{node: n}}
	for id := 0; len(queue) > 0; id++ {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range Children(cur.node) {
			queue = append(queue, item{node: child, parent: id})
		}
		nodes = append(nodes, fmt.Sprintf("%d[%s]", id, cur.node.Label()))
		if id != 0 {
			edges = append(edges, fmt.Sprintf("%d --> %d", cur.parent, id))
		}
	}

	return strings.Join([]string{
		"flowchart TD",
		strings.Join(nodes, "\n    "),
		strings.Join(edges, "\n    "),
	}, "\n    ")
}

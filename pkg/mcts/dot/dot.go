// Package dot dumps a search tree in the Graphviz DOT format, for offline
// inspection of a decision (e.g. `dot -Tsvg out.dot > out.svg`).
package dot

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/IlikeChooros/go-ismcts/pkg/mcts"
)

// Write the tree as a directed graph. Nodes are labeled with their index,
// move, score and visits, only children with at least one visit are drawn.
func Write[M comparable](w io.Writer, view mcts.TreeView[M]) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(`digraph G {overlap="scalexy;"`); err != nil {
		return err
	}

	queue := []mcts.NodeID{view.Root()}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		children, ok := view.Children(parent)
		if !ok {
			return fmt.Errorf("dot: %w: %d", mcts.ErrInvalidNodeIndex, parent)
		}

		for _, child := range children {
			stats, ok := view.Node(child)
			if !ok {
				return fmt.Errorf("dot: %w: %d", mcts.ErrInvalidNodeIndex, child)
			}

			if stats.Visits > 0 {
				fmt.Fprintf(bw, "%d->%d;", parent, child)
				fmt.Fprintf(bw, "%d [label=<%d<br/>move=%s<br/>score=%g<br/>visits=%d>];",
					child, child, html.EscapeString(fmt.Sprint(stats.Move)), stats.Score, stats.Visits)
			}
			queue = append(queue, child)
		}
	}

	if _, err := bw.WriteString("}"); err != nil {
		return err
	}
	return bw.Flush()
}

// Create (or truncate) the file at 'path' and write the tree into it
func WriteFile[M comparable](path string, view mcts.TreeView[M]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dot: %w", err)
	}

	if err := Write(f, view); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package nfa

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/xsdcore/hnfa/internal/conv"
	"github.com/xsdcore/hnfa/internal/sparse"
)

// Mode selects the rendering produced by Dump and DumpNested.
type Mode int

const (
	// Compact renders the whole graph as one line.
	Compact Mode = iota
	// Multiline renders one line per state.
	Multiline
	// Dot renders the graph as Graphviz dot source, nested automata drawn
	// as labelled clusters.
	Dot
	// DotCompact is Dot without an explicit label attribute on any state
	// node; each node is still named by its state number.
	DotCompact
)

// Dump renders n, starting at Start, in the requested mode. image formats a
// transition's symbol for display; a nil image falls back to "?".
func Dump[T any](n *NFA[T], mode Mode, image func(T) string) string {
	return dumpFrom(n, Start, mode, image)
}

// DumpNested renders the sub-graph referenced by nested on its own, the way
// Dump renders a whole NFA. Useful for printing one nested automaton in
// isolation from the graph it is attached to.
func DumpNested[T any](n *NFA[T], nested Nested, mode Mode, image func(T) string) string {
	return dumpFrom(n, nested.start, mode, image)
}

func dumpFrom[T any](n *NFA[T], start StateID, mode Mode, image func(T) string) string {
	if image == nil {
		image = func(T) string { return "?" }
	}
	switch mode {
	case Dot, DotCompact:
		return dumpDot(n, start, image, mode == DotCompact)
	case Multiline:
		return dumpText(n, start, image, true)
	default:
		return dumpText(n, start, image, false)
	}
}

// dumpText walks every state reachable from start (through ordinary
// transitions, on-nested-exit transitions, and nested sub-graphs) exactly
// once, rendering it as either one line per state (multiline) or everything
// on a single line separated by "; ".
func dumpText[T any](n *NFA[T], start StateID, image func(T) string, multiline bool) string {
	visited := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))
	sharedNested := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))

	var order []StateID
	var visit func(s StateID)
	visit = func(s StateID) {
		if s == Final || visited.Contains(conv.IntToUint32(int(s))) {
			return
		}
		visited.Insert(conv.IntToUint32(int(s)))
		order = append(order, s)

		n.eachTransition(n.states[s].firstTransition, func(tr Transition[T]) { visit(tr.To) })
		n.eachTransition(n.states[s].onNestedExit, func(tr Transition[T]) { visit(tr.To) })
		if n.states[s].hasNested {
			visit(n.states[s].nestedStart)
		}
	}
	visit(start)

	lines := make([]string, 0, len(order))
	for _, s := range order {
		var edges []string
		n.eachTransition(n.states[s].firstTransition, func(tr Transition[T]) {
			edges = append(edges, edgeLabel(tr, image, "->"))
		})
		n.eachTransition(n.states[s].onNestedExit, func(tr Transition[T]) {
			edges = append(edges, edgeLabel(tr, image, "~>"))
		})

		line := fmt.Sprintf("S%d", s)
		if n.states[s].hasNested {
			nestedVal := conv.IntToUint32(int(n.states[s].nestedStart))
			if sharedNested.Contains(nestedVal) {
				line += fmt.Sprintf("{nested=S%d,shared}", n.states[s].nestedStart)
			} else {
				sharedNested.Insert(nestedVal)
				line += fmt.Sprintf("{nested=S%d}", n.states[s].nestedStart)
			}
		}
		if len(edges) > 0 {
			line += ": " + strings.Join(edges, ", ")
		}
		lines = append(lines, line)
	}

	if multiline {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines, "; ")
}

func edgeLabel[T any](tr Transition[T], image func(T) string, arrow string) string {
	if tr.IsEmpty {
		return fmt.Sprintf("%s S%d [e]", arrow, tr.To)
	}
	return fmt.Sprintf("%s S%d [%s]", arrow, tr.To, image(tr.Sym))
}

// dumpDot renders the graph reachable from start as Graphviz dot source.
// Every state becomes a node (Final as a double circle, every other state
// as a plain circle); a state's
// nested automaton is rendered once as a labelled cluster subgraph, shared
// by every state that references it. on-nested-exit edges are dotted,
// ε-edges are dashed.
func dumpDot[T any](n *NFA[T], start StateID, image func(T) string, compact bool) string {
	gv := graphviz.New()
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		log.Fatal(err)
	}
	defer graph.Close()

	nodes := make(map[StateID]*cgraph.Node)
	renderedCluster := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))

	finalNode, err := graph.CreateNode("Final")
	if err != nil {
		log.Fatal(err)
	}
	finalNode.SetShape(cgraph.DoubleCircleShape)
	nodes[Final] = finalNode

	var visitInto func(g *cgraph.Graph, s StateID)
	visitInto = func(g *cgraph.Graph, s StateID) {
		if s == Final {
			return
		}
		if _, ok := nodes[s]; ok {
			return
		}
		node, nodeErr := g.CreateNode(fmt.Sprintf("S%d", s))
		if nodeErr != nil {
			log.Fatal(nodeErr)
		}
		node.SetShape(cgraph.CircleShape)
		if !compact {
			node.SetLabel(fmt.Sprintf("S%d", s))
		}
		nodes[s] = node

		n.eachTransition(n.states[s].firstTransition, func(tr Transition[T]) { visitInto(g, tr.To) })
		n.eachTransition(n.states[s].onNestedExit, func(tr Transition[T]) { visitInto(g, tr.To) })

		if n.states[s].hasNested {
			nestedVal := conv.IntToUint32(int(n.states[s].nestedStart))
			if !renderedCluster.Contains(nestedVal) {
				renderedCluster.Insert(nestedVal)
				cluster, clusterErr := graph.CreateSubGraph(fmt.Sprintf("cluster_S%d", s))
				if clusterErr != nil {
					log.Fatal(clusterErr)
				}
				cluster.SetLabel(fmt.Sprintf("nested of S%d", s))
				visitInto(cluster, n.states[s].nestedStart)
			}
		}
	}
	visitInto(graph, start)

	edgeNum := 0
	var drawEdges func(s StateID)
	seenEdges := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))
	drawEdges = func(s StateID) {
		if s == Final || seenEdges.Contains(conv.IntToUint32(int(s))) {
			return
		}
		seenEdges.Insert(conv.IntToUint32(int(s)))

		n.eachTransition(n.states[s].firstTransition, func(tr Transition[T]) {
			edgeNum++
			e, edgeErr := graph.CreateEdge(fmt.Sprintf("e%d", edgeNum), nodes[s], nodes[tr.To])
			if edgeErr != nil {
				log.Fatal(edgeErr)
			}
			if tr.IsEmpty {
				e.SetStyle(cgraph.DashedStyle)
			} else {
				e.SetLabel(image(tr.Sym))
			}
			drawEdges(tr.To)
		})
		n.eachTransition(n.states[s].onNestedExit, func(tr Transition[T]) {
			edgeNum++
			e, edgeErr := graph.CreateEdge(fmt.Sprintf("e%d", edgeNum), nodes[s], nodes[tr.To])
			if edgeErr != nil {
				log.Fatal(edgeErr)
			}
			e.SetStyle(cgraph.DottedStyle)
			if !tr.IsEmpty {
				e.SetLabel(image(tr.Sym))
			}
			drawEdges(tr.To)
		})
		if n.states[s].hasNested {
			drawEdges(n.states[s].nestedStart)
		}
	}
	drawEdges(start)

	var buf bytes.Buffer
	if err := gv.Render(graph, graphviz.XDOT, &buf); err != nil {
		log.Fatal(err)
	}
	return buf.String()
}

// DebugPrint renders a Matcher's live frontier as a compact single line:
// every active state at every nesting level, nested frontiers shown
// parenthesized after the state that owns them. It is independent of Dump —
// Dump describes the static graph, DebugPrint describes one moment of a run.
func DebugPrint[T any](m *Matcher[T]) string {
	var render func(head int32) string
	render = func(head int32) string {
		var parts []string
		for i := head; i != noSlot; i = m.slots[i].next {
			e := m.slots[i]
			s := fmt.Sprintf("S%d", e.state)
			if e.nested != noSlot {
				s += "(" + render(e.nested) + ")"
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ",")
	}
	return "{" + render(m.head) + "}"
}

package initial

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// StartNodeSelector picks one start node per block. Fewer than k nodes are
// returned only if the hypergraph has fewer than k nodes.
type StartNodeSelector interface {
	StartNodes(hg *hypergraph.Hypergraph, k int, rng *rand.Rand) []hypergraph.NodeID
	Name() string
}

// NewStartNodeSelector resolves a selector by its configuration name.
func NewStartNodeSelector(name string) (StartNodeSelector, error) {
	switch name {
	case "random":
		return RandomStartNodes{}, nil
	case "max_degree":
		return MaxDegreeStartNodes{}, nil
	case "bfs":
		return BFSStartNodes{}, nil
	default:
		return nil, fmt.Errorf("unknown start node selection %q", name)
	}
}

// RandomStartNodes picks k distinct nodes uniformly at random.
type RandomStartNodes struct{}

func (RandomStartNodes) Name() string { return "random" }

func (RandomStartNodes) StartNodes(hg *hypergraph.Hypergraph, k int, rng *rand.Rand) []hypergraph.NodeID {
	nodes := hg.Nodes()
	rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
	return nodes[:min(k, len(nodes))]
}

// MaxDegreeStartNodes picks the k nodes with the highest degree, lower IDs
// first among equal degrees.
type MaxDegreeStartNodes struct{}

func (MaxDegreeStartNodes) Name() string { return "max_degree" }

func (MaxDegreeStartNodes) StartNodes(hg *hypergraph.Hypergraph, k int, _ *rand.Rand) []hypergraph.NodeID {
	nodes := hg.Nodes()
	sort.SliceStable(nodes, func(i, j int) bool {
		return hg.NodeDegree(nodes[i]) > hg.NodeDegree(nodes[j])
	})
	return nodes[:min(k, len(nodes))]
}

// BFSStartNodes starts from a random node and repeatedly adds the node
// farthest from all chosen start nodes, the lowest ID among equally far
// nodes. Nodes the search cannot reach at all are preferred.
type BFSStartNodes struct{}

func (BFSStartNodes) Name() string { return "bfs" }

func (BFSStartNodes) StartNodes(hg *hypergraph.Hypergraph, k int, rng *rand.Rand) []hypergraph.NodeID {
	nodes := hg.Nodes()
	if len(nodes) == 0 || k < 1 {
		return nil
	}

	// star expansion: hypernode u is graph node u, hyperedge e is n+e
	n := int64(hg.InitialNumNodes())
	g := simple.NewUndirectedGraph()
	for _, u := range nodes {
		g.AddNode(simple.Node(u))
	}
	for _, e := range hg.Edges() {
		edgeNode := simple.Node(n + int64(e))
		for _, pin := range hg.Pins(e) {
			g.SetEdge(g.NewEdge(simple.Node(pin), edgeNode))
		}
	}
	source := simple.Node(n + int64(hg.InitialNumEdges()))
	g.AddNode(source)

	starts := []hypergraph.NodeID{nodes[rng.Intn(len(nodes))]}
	for len(starts) < k && len(starts) < len(nodes) {
		g.SetEdge(g.NewEdge(source, simple.Node(starts[len(starts)-1])))

		visited := bitset.New(uint(n))
		deepest, depth := hypergraph.InvalidNode, -1
		var bf traverse.BreadthFirst
		bf.Walk(g, source, func(v graph.Node, d int) bool {
			id := v.ID()
			if id >= n {
				return false
			}
			visited.Set(uint(id))
			if d > depth || (d == depth && hypergraph.NodeID(id) < deepest) {
				deepest, depth = hypergraph.NodeID(id), d
			}
			return false
		})

		next := deepest
		for _, u := range nodes {
			if !visited.Test(uint(u)) {
				next = u
				break
			}
		}
		starts = append(starts, next)
	}
	return starts
}

package internal

import (
	"fmt"
)

type node struct {
	id           string
	dependencies []string
}

type Graph map[string]*node

func NewDependsGraph() Graph {
	return make(Graph)
}

func (g Graph) AddNode(id string, dependencies ...string) {
	g[id] = &node{
		id:           id,
		dependencies: dependencies,
	}
}

// Build returns the node IDs topologically sorted so that every node appears
// after its dependencies. It fails on cycles and unknown dependencies.
func (g Graph) Build() ([]string, error) {
	visited := make(map[string]bool)
	inStack := make(map[string]bool)
	result := make([]string, 0, len(g))

	for id := range g {
		if err := g.visit(id, visited, inStack, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (g Graph) visit(id string, visited, inStack map[string]bool, result *[]string) error {
	if inStack[id] {
		return fmt.Errorf("cycle detected for node: %s", id)
	}

	if visited[id] {
		return nil
	}

	n, ok := g[id]
	if !ok {
		return fmt.Errorf("dependency not found: %s", id)
	}

	inStack[id] = true
	for _, dep := range n.dependencies {
		if err := g.visit(dep, visited, inStack, result); err != nil {
			return err
		}
	}
	inStack[id] = false

	visited[id] = true
	*result = append(*result, id)

	return nil
}

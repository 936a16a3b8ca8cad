package family

import "sort"

// detectCycle returns the components participating in a target cycle, or nil if no cycle exists.
// Only targets naming another component form edges; tag targets are leaves.
func detectCycle(components []Component) []string {
	graph := make(map[string]string, len(components))
	for _, comp := range components {
		graph[comp.Name] = ""
	}
	for _, comp := range components {
		if _, ok := graph[comp.Target]; ok {
			graph[comp.Name] = comp.Target
		}
	}

	names := make([]string, 0, len(graph))
	for name := range graph {
		names = append(names, name)
	}
	sort.Strings(names)

	visited := make(map[string]bool, len(graph))
	for _, start := range names {
		if visited[start] {
			continue
		}

		onPath := make(map[string]int)
		var path []string
		for node := start; node != ""; node = graph[node] {
			if idx, seen := onPath[node]; seen {
				cycle := append([]string{}, path[idx:]...)
				return append(cycle, node)
			}
			if visited[node] {
				break
			}
			onPath[node] = len(path)
			path = append(path, node)
		}
		for _, node := range path {
			visited[node] = true
		}
	}

	return nil
}

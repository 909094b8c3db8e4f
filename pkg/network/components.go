package network

import "github.com/dd0wney/cluso-netmap/pkg/clustering"

// Components labels the connected components of the network using
// breadth-first search and returns them as a clustering ordered by
// decreasing size. Equally sized components keep the order of their
// smallest node ids.
func (n *Network) Components() *clustering.Clustering {
	components := make([]int, n.nNodes)
	for i := range components {
		components[i] = -1
	}

	queue := make([]int, n.nNodes)
	nComponents := 0

	for start := 0; start < n.nNodes; start++ {
		if components[start] >= 0 {
			continue
		}

		components[start] = nComponents
		queue[0] = start
		head, tail := 0, 1
		for head < tail {
			node := queue[head]
			head++
			for _, neighbor := range n.Neighbors(node) {
				if components[neighbor] < 0 {
					components[neighbor] = nComponents
					queue[tail] = neighbor
					tail++
				}
			}
		}
		nComponents++
	}

	c := clustering.NewFromSlice(components)
	c.OrderClustersByNNodes()
	return c
}

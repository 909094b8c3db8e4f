package clustering

import "testing"

// TestNewSingleton tests singleton initialisation
func TestNewSingleton(t *testing.T) {
	c := NewSingleton(4)

	if c.NClusters() != 4 {
		t.Errorf("Expected 4 clusters, got %d", c.NClusters())
	}
	for i := 0; i < 4; i++ {
		if c.Cluster(i) != i {
			t.Errorf("Expected node %d in cluster %d, got %d", i, i, c.Cluster(i))
		}
	}
}

// TestNewFromSlice tests cluster count derivation
func TestNewFromSlice(t *testing.T) {
	c := NewFromSlice([]int{0, 2, 2, 5})

	if c.NClusters() != 6 {
		t.Errorf("Expected 6 clusters (max id + 1), got %d", c.NClusters())
	}
	if c.NNodes() != 4 {
		t.Errorf("Expected 4 nodes, got %d", c.NNodes())
	}
}

// TestSetClusterWidens tests that SetCluster grows the cluster count
func TestSetClusterWidens(t *testing.T) {
	c := NewSingleton(3)
	c.SetCluster(0, 10)

	if c.NClusters() != 11 {
		t.Errorf("Expected 11 clusters after widening, got %d", c.NClusters())
	}
}

// TestRemoveEmptyClusters tests compaction to dense ids
func TestRemoveEmptyClusters(t *testing.T) {
	c := NewFromSlice([]int{0, 3, 3, 7})
	c.RemoveEmptyClusters()

	if c.NClusters() != 3 {
		t.Errorf("Expected 3 clusters after compaction, got %d", c.NClusters())
	}

	// Relative order of ids is preserved
	if c.Cluster(0) != 0 || c.Cluster(1) != 1 || c.Cluster(2) != 1 || c.Cluster(3) != 2 {
		t.Errorf("Unexpected compacted assignment: %v", c.Clusters())
	}

	// Ids must be exactly 0..NClusters
	for _, cl := range c.Clusters() {
		if cl < 0 || cl >= c.NClusters() {
			t.Errorf("Cluster id %d outside [0, %d)", cl, c.NClusters())
		}
	}
}

// TestOrderClustersByNNodes tests descending size order with stable ties
func TestOrderClustersByNNodes(t *testing.T) {
	// Cluster 0 has 1 node, cluster 1 has 3, cluster 2 has 1
	c := NewFromSlice([]int{0, 1, 1, 1, 2})
	c.OrderClustersByNNodes()

	if c.NClusters() != 3 {
		t.Fatalf("Expected 3 clusters, got %d", c.NClusters())
	}

	// Largest cluster first; tied singletons keep original order
	want := []int{1, 0, 0, 0, 2}
	for node, cl := range c.Clusters() {
		if cl != want[node] {
			t.Errorf("Node %d: expected cluster %d, got %d", node, want[node], cl)
		}
	}
}

// TestOrderClustersByWeight tests weight-based ordering
func TestOrderClustersByWeight(t *testing.T) {
	c := NewFromSlice([]int{0, 0, 1})
	c.OrderClustersByWeight([]float64{1, 1, 5})

	// Cluster 1 (weight 5) outranks cluster 0 (weight 2)
	if c.Cluster(2) != 0 {
		t.Errorf("Expected heaviest cluster relabelled to 0, got %d", c.Cluster(2))
	}
	if c.Cluster(0) != 1 {
		t.Errorf("Expected lighter cluster relabelled to 1, got %d", c.Cluster(0))
	}
}

// TestOrderThenCompactIdempotent tests the idempotence round trip
func TestOrderThenCompactIdempotent(t *testing.T) {
	c := NewFromSlice([]int{4, 4, 2, 2, 2, 9})
	c.OrderClustersByNNodes()
	c.RemoveEmptyClusters()

	before := c.Clusters()
	c.OrderClustersByNNodes()
	c.RemoveEmptyClusters()

	for node, cl := range c.Clusters() {
		if cl != before[node] {
			t.Fatalf("Order/compact is not idempotent at node %d: %d != %d", node, cl, before[node])
		}
	}
}

// TestMergeClusters tests composition with a clustering of clusters
func TestMergeClusters(t *testing.T) {
	c := NewFromSlice([]int{0, 1, 2, 1})
	outer := NewFromSlice([]int{0, 0, 1})

	c.MergeClusters(outer)

	want := []int{0, 0, 1, 0}
	for node, cl := range c.Clusters() {
		if cl != want[node] {
			t.Errorf("Node %d: expected cluster %d after merge, got %d", node, want[node], cl)
		}
	}
	if c.NClusters() != 2 {
		t.Errorf("Expected 2 clusters after merge, got %d", c.NClusters())
	}
}

// TestNodesPerCluster tests two-pass bucketing
func TestNodesPerCluster(t *testing.T) {
	c := NewFromSlice([]int{1, 0, 1, 1})
	nodes := c.NodesPerCluster()

	if len(nodes) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(nodes))
	}
	if len(nodes[0]) != 1 || nodes[0][0] != 1 {
		t.Errorf("Unexpected bucket 0: %v", nodes[0])
	}
	if len(nodes[1]) != 3 || nodes[1][0] != 0 || nodes[1][1] != 2 || nodes[1][2] != 3 {
		t.Errorf("Unexpected bucket 1: %v", nodes[1])
	}
}

// TestCloneIndependence tests that clones do not share state
func TestCloneIndependence(t *testing.T) {
	c := NewSingleton(3)
	clone := c.Clone()
	clone.SetCluster(0, 1)

	if c.Cluster(0) != 0 {
		t.Error("Clone mutation leaked into original")
	}
}

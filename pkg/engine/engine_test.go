package engine

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/dd0wney/cluso-netmap/pkg/mathutil"
	"github.com/dd0wney/cluso-netmap/pkg/network"
)

// buildTrianglePair creates two triangles 0-1-2 and 3-4-5 linked by the
// edge 2-3; node weights come from incident edge weights when
// weightsFromEdges is set and are 1 otherwise.
func buildTrianglePair(t *testing.T, weightsFromEdges bool) *network.Network {
	t.Helper()

	u := []int{0, 1, 2, 2, 3, 5, 4}
	v := []int{1, 2, 0, 3, 5, 4, 3}
	n, err := network.FromEdges(6, u, v, &network.EdgeListOptions{
		WeightsFromEdges: weightsFromEdges,
		CheckIntegrity:   true,
	})
	if err != nil {
		t.Fatalf("FromEdges failed: %v", err)
	}
	return n
}

// TestClusteringConfigValidation tests configuration rejection
func TestClusteringConfigValidation(t *testing.T) {
	config := DefaultClusteringConfig()
	config.Algorithm = "kmeans"
	if _, err := NewClusteringEngine(config, nil, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for unknown algorithm, got %v", err)
	}

	config = DefaultClusteringConfig()
	config.Resolution = -1
	if _, err := NewClusteringEngine(config, nil, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for negative resolution, got %v", err)
	}

	config = DefaultClusteringConfig()
	config.Randomness = 0
	if _, err := NewClusteringEngine(config, nil, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for Leiden without randomness, got %v", err)
	}

	// Louvain does not use randomness
	config.Algorithm = AlgorithmLouvain
	if _, err := NewClusteringEngine(config, nil, nil); err != nil {
		t.Errorf("Expected Louvain to accept zero randomness, got %v", err)
	}
}

// TestLayoutConfigValidation tests layout configuration rejection
func TestLayoutConfigValidation(t *testing.T) {
	config := DefaultLayoutConfig()
	config.Attraction = 1
	config.Repulsion = 2
	if _, err := NewLayoutEngine(config, nil, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for attraction <= repulsion, got %v", err)
	}

	config = DefaultLayoutConfig()
	config.StepReduction = 1.5
	if _, err := NewLayoutEngine(config, nil, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter for step reduction outside (0, 1), got %v", err)
	}
}

// TestRunWithoutNetwork tests the uninitialised error
func TestRunWithoutNetwork(t *testing.T) {
	clusteringEngine, err := NewClusteringEngine(DefaultClusteringConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewClusteringEngine failed: %v", err)
	}
	if _, err := clusteringEngine.Run(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}

	layoutEngine, err := NewLayoutEngine(DefaultLayoutConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewLayoutEngine failed: %v", err)
	}
	if _, err := layoutEngine.Run(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

// TestClusteringEngineTrianglePair tests the full clustering pipeline
func TestClusteringEngineTrianglePair(t *testing.T) {
	config := DefaultClusteringConfig()
	config.Normalization = NormalizationAssociationStrength
	config.Resolution = 0.2
	config.Seed = 42

	engine, err := NewClusteringEngine(config, nil, nil)
	if err != nil {
		t.Fatalf("NewClusteringEngine failed: %v", err)
	}
	engine.SetNetwork(buildTrianglePair(t, true))

	result, err := engine.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.RunID == "" {
		t.Error("Expected a run id")
	}
	if result.NClusters != 2 {
		t.Fatalf("Expected 2 clusters, got %d", result.NClusters)
	}
	c := result.Clustering
	if c.Cluster(0) != c.Cluster(1) || c.Cluster(1) != c.Cluster(2) ||
		c.Cluster(3) != c.Cluster(4) || c.Cluster(4) != c.Cluster(5) ||
		c.Cluster(0) == c.Cluster(3) {
		t.Errorf("Expected the two triangles as clusters, got %v", c.Clusters())
	}
	if result.Quality <= 0 {
		t.Errorf("Expected strictly positive quality, got %v", result.Quality)
	}
	if len(result.QualityPerStart) != config.NRandomStarts {
		t.Errorf("Expected %d per-start qualities, got %d", config.NRandomStarts, len(result.QualityPerStart))
	}
}

// TestModularityRescalingEquivalence tests that modularity at
// resolution r equals CPM at r / (2W + S) on the weight-rewritten
// network
func TestModularityRescalingEquivalence(t *testing.T) {
	for _, algorithm := range []Algorithm{AlgorithmLouvain, AlgorithmLeiden} {
		modularityConfig := DefaultClusteringConfig()
		modularityConfig.QualityFunction = QualityModularity
		modularityConfig.Algorithm = algorithm
		modularityConfig.Resolution = 1
		modularityConfig.Seed = 7

		modularityEngine, err := NewClusteringEngine(modularityConfig, nil, nil)
		if err != nil {
			t.Fatalf("NewClusteringEngine failed: %v", err)
		}
		modularityEngine.SetNetwork(buildTrianglePair(t, false))

		modularityResult, err := modularityEngine.Run()
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		// The equivalent CPM run uses node weights from edges and the
		// rescaled resolution 1 / (2W + S) = 1/14.
		cpmConfig := DefaultClusteringConfig()
		cpmConfig.QualityFunction = QualityCPM
		cpmConfig.Algorithm = algorithm
		cpmConfig.Normalization = NormalizationNone
		cpmConfig.Resolution = 1.0 / 14
		cpmConfig.Seed = 7

		cpmEngine, err := NewClusteringEngine(cpmConfig, nil, nil)
		if err != nil {
			t.Fatalf("NewClusteringEngine failed: %v", err)
		}
		cpmEngine.SetNetwork(buildTrianglePair(t, true))

		cpmResult, err := cpmEngine.Run()
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if modularityResult.NClusters != cpmResult.NClusters {
			t.Fatalf("%s: cluster counts differ: %d vs %d",
				algorithm, modularityResult.NClusters, cpmResult.NClusters)
		}
		for node := 0; node < 6; node++ {
			if modularityResult.Clustering.Cluster(node) != cpmResult.Clustering.Cluster(node) {
				t.Fatalf("%s: clusterings differ at node %d", algorithm, node)
			}
		}
		if math.Abs(modularityResult.Quality-cpmResult.Quality) > 1e-12 {
			t.Errorf("%s: qualities differ: %v vs %v",
				algorithm, modularityResult.Quality, cpmResult.Quality)
		}
	}
}

// TestClusteringEngineMinClusterSize tests small-cluster removal
func TestClusteringEngineMinClusterSize(t *testing.T) {
	config := DefaultClusteringConfig()
	config.Normalization = NormalizationAssociationStrength
	config.Resolution = 0.2
	config.MinClusterSize = 4
	config.Seed = 42

	engine, err := NewClusteringEngine(config, nil, nil)
	if err != nil {
		t.Fatalf("NewClusteringEngine failed: %v", err)
	}
	engine.SetNetwork(buildTrianglePair(t, true))

	result, err := engine.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.NClusters != 1 {
		t.Errorf("Expected the two triangles merged into one cluster, got %d", result.NClusters)
	}
}

// TestLayoutEngineRun tests the full layout pipeline
func TestLayoutEngineRun(t *testing.T) {
	config := DefaultLayoutConfig()
	config.Seed = 3

	engine, err := NewLayoutEngine(config, nil, nil)
	if err != nil {
		t.Fatalf("NewLayoutEngine failed: %v", err)
	}
	engine.SetNetwork(buildTrianglePair(t, false))

	result, err := engine.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Layout.NNodes() != 6 {
		t.Fatalf("Expected 6 node positions, got %d", result.Layout.NNodes())
	}
	if math.IsNaN(result.Quality) || math.IsInf(result.Quality, 0) {
		t.Errorf("Expected finite quality, got %v", result.Quality)
	}

	// The winning layout is standardised
	x, y := result.Layout.Coordinates()
	if mean := mathutil.Mean(x); math.Abs(mean) > 1e-9 {
		t.Errorf("Expected zero mean x, got %v", mean)
	}
	if mean := mathutil.Mean(y); math.Abs(mean) > 1e-9 {
		t.Errorf("Expected zero mean y, got %v", mean)
	}
	if distance := result.Layout.AverageDistance(); math.Abs(distance-1) > 1e-6 {
		t.Errorf("Expected mean pairwise distance 1, got %v", distance)
	}
}

// TestLayoutEngineDisconnected tests the automatic edge weight increment
func TestLayoutEngineDisconnected(t *testing.T) {
	// Two disjoint edges
	n, err := network.FromEdges(4, []int{0, 2}, []int{1, 3}, nil)
	if err != nil {
		t.Fatalf("FromEdges failed: %v", err)
	}

	config := DefaultLayoutConfig()
	config.Seed = 5

	engine, err := NewLayoutEngine(config, nil, nil)
	if err != nil {
		t.Fatalf("NewLayoutEngine failed: %v", err)
	}
	engine.SetNetwork(n)

	result, err := engine.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// With the raised increment the components stay at finite distance
	if max := result.Layout.MaxDistance(); math.IsInf(max, 0) || max > 1000 {
		t.Errorf("Expected components held together, max distance %v", max)
	}
}

// TestLoadClusteringConfig tests YAML loading with defaults
func TestLoadClusteringConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clustering.yaml")
	data := []byte("algorithm: louvain\nresolution: 0.5\nn_random_starts: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	config, err := LoadClusteringConfig(path)
	if err != nil {
		t.Fatalf("LoadClusteringConfig failed: %v", err)
	}
	if config.Algorithm != AlgorithmLouvain || config.Resolution != 0.5 || config.NRandomStarts != 3 {
		t.Errorf("Unexpected config: %+v", config)
	}
	// Absent keys keep defaults
	if config.QualityFunction != QualityCPM || config.NIterations != 10 {
		t.Errorf("Expected defaults for absent keys, got %+v", config)
	}
}

// TestLoadLayoutConfigRejectsInvalid tests YAML validation
func TestLoadLayoutConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := []byte("attraction: 1\nrepulsion: 2\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadLayoutConfig(path); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
}

// TestClusteringEngineDeterministic tests seeded reproducibility through
// the engine
func TestClusteringEngineDeterministic(t *testing.T) {
	run := func() *ClusteringResult {
		config := DefaultClusteringConfig()
		config.Resolution = 0.2
		config.Normalization = NormalizationAssociationStrength
		config.Seed = 99

		engine, err := NewClusteringEngine(config, nil, nil)
		if err != nil {
			t.Fatalf("NewClusteringEngine failed: %v", err)
		}
		engine.SetNetwork(buildTrianglePair(t, true))
		result, err := engine.Run()
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return result
	}

	a, b := run(), run()
	if a.Quality != b.Quality {
		t.Errorf("Qualities differ across identically seeded runs: %v vs %v", a.Quality, b.Quality)
	}
	for node := 0; node < 6; node++ {
		if a.Clustering.Cluster(node) != b.Clustering.Cluster(node) {
			t.Fatalf("Clusterings differ at node %d", node)
		}
	}
}

// Package engine provides the orchestration layer: configuration,
// multi-random-start drivers for clustering and layout, the modularity
// rewrite, normalisation dispatch and run records.
package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-netmap/pkg/validation"
)

// QualityFunction selects the clustering quality function.
type QualityFunction string

const (
	QualityCPM        QualityFunction = "cpm"
	QualityModularity QualityFunction = "modularity"
)

// Algorithm selects the clustering algorithm.
type Algorithm string

const (
	AlgorithmLeiden  Algorithm = "leiden"
	AlgorithmLouvain Algorithm = "louvain"
)

// Normalization selects the edge weight normalisation applied before
// clustering.
type Normalization string

const (
	NormalizationNone                Normalization = "none"
	NormalizationAssociationStrength Normalization = "association_strength"
	NormalizationFractionalization   Normalization = "fractionalization"
)

// LayoutQualityFunction selects the layout quality function.
type LayoutQualityFunction string

const (
	LayoutQualityVOS    LayoutQualityFunction = "vos"
	LayoutQualityLinLog LayoutQualityFunction = "linlog"
)

// ClusteringConfig configures the clustering engine.
type ClusteringConfig struct {
	QualityFunction QualityFunction `yaml:"quality_function" validate:"oneof=cpm modularity"`
	Algorithm       Algorithm       `yaml:"algorithm" validate:"oneof=leiden louvain"`
	Normalization   Normalization   `yaml:"normalization" validate:"oneof=none association_strength fractionalization"`
	Resolution      float64         `yaml:"resolution" validate:"gte=0"`
	Randomness      float64         `yaml:"randomness" validate:"gte=0"`
	NIterations     int             `yaml:"n_iterations" validate:"min=0"`
	NRandomStarts   int             `yaml:"n_random_starts" validate:"min=1"`
	MinClusterSize  int             `yaml:"min_cluster_size" validate:"min=1"`
	Seed            int64           `yaml:"seed"`
}

// DefaultClusteringConfig returns the default clustering configuration.
func DefaultClusteringConfig() ClusteringConfig {
	return ClusteringConfig{
		QualityFunction: QualityCPM,
		Algorithm:       AlgorithmLeiden,
		Normalization:   NormalizationNone,
		Resolution:      1,
		Randomness:      0.01,
		NIterations:     10,
		NRandomStarts:   10,
		MinClusterSize:  1,
		Seed:            0,
	}
}

// Validate checks the configuration, combining struct-tag rules with
// cross-field rules.
func (c *ClusteringConfig) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	err := validation.NewConfigValidator("ClusteringConfig").
		When(c.Algorithm == AlgorithmLeiden, func(cv *validation.ConfigValidator) {
			cv.PositiveFloat("Randomness", c.Randomness)
		}).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return nil
}

// LayoutConfig configures the layout engine. Attraction and Repulsion
// both zero take the exponents implied by the quality function: (2, 1)
// for VOS and (1, 0) for LinLog.
type LayoutConfig struct {
	QualityFunction      LayoutQualityFunction `yaml:"quality_function" validate:"oneof=vos linlog"`
	Attraction           int                   `yaml:"attraction"`
	Repulsion            int                   `yaml:"repulsion"`
	EdgeWeightIncrement  float64               `yaml:"edge_weight_increment" validate:"gte=0"`
	MaxIterations        int                   `yaml:"max_iterations" validate:"min=1"`
	InitialStepSize      float64               `yaml:"initial_step_size" validate:"gt=0"`
	MinStepSize          float64               `yaml:"min_step_size" validate:"gt=0"`
	StepReduction        float64               `yaml:"step_reduction" validate:"gt=0,lt=1"`
	RequiredImprovements int                   `yaml:"required_improvements" validate:"min=1"`
	NRandomStarts        int                   `yaml:"n_random_starts" validate:"min=1"`
	Dilate               bool                  `yaml:"dilate"`
	Seed                 int64                 `yaml:"seed"`
}

// DefaultLayoutConfig returns the default layout configuration.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		QualityFunction:      LayoutQualityVOS,
		EdgeWeightIncrement:  0,
		MaxIterations:        1000,
		InitialStepSize:      1,
		MinStepSize:          0.001,
		StepReduction:        0.75,
		RequiredImprovements: 5,
		NRandomStarts:        1,
		Dilate:               true,
		Seed:                 0,
	}
}

// Exponents returns the attraction and repulsion exponents, deriving
// them from the quality function when both are left at zero.
func (c *LayoutConfig) Exponents() (int, int) {
	if c.Attraction == 0 && c.Repulsion == 0 {
		if c.QualityFunction == LayoutQualityLinLog {
			return 1, 0
		}
		return 2, 1
	}
	return c.Attraction, c.Repulsion
}

// Validate checks the configuration.
func (c *LayoutConfig) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	attraction, repulsion := c.Exponents()
	err := validation.NewConfigValidator("LayoutConfig").
		GreaterThanInt("Attraction", attraction, "Repulsion", repulsion).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return nil
}

// LoadClusteringConfig reads a YAML clustering configuration, applying
// defaults for absent keys.
func LoadClusteringConfig(path string) (*ClusteringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading clustering config: %w", err)
	}

	config := DefaultClusteringConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing clustering config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadLayoutConfig reads a YAML layout configuration, applying defaults
// for absent keys.
func LoadLayoutConfig(path string) (*LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout config: %w", err)
	}

	config := DefaultLayoutConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing layout config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

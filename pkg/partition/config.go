package partition

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// NoHyperedgeSizeThreshold disables large hyperedge removal.
const NoHyperedgeSizeThreshold = -1

// Config manages partitioner configuration using Viper. Balance bounds that
// depend on the input are derived by RecalculateBalanceConstraints.
type Config struct {
	v *viper.Viper

	maxPartSize          int
	maxAllowedNodeWeight int
	perfectBalance       []int
	upperAllowed         []int
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Partition parameters
	v.SetDefault("partition.k", 2)
	v.SetDefault("partition.epsilon", 0.03)
	v.SetDefault("partition.seed", time.Now().UnixNano())
	v.SetDefault("partition.initial_partitioning_attempts", 10)
	v.SetDefault("partition.global_search_iterations", 1)
	v.SetDefault("partition.hyperedge_size_threshold", NoHyperedgeSizeThreshold)
	v.SetDefault("partition.graph_filename", "")

	// Coarsening parameters
	v.SetDefault("coarsening.minimal_node_count", 100)
	v.SetDefault("coarsening.hypernode_weight_fraction", 0.0375)
	v.SetDefault("coarsening.max_allowed_node_weight", 0)
	v.SetDefault("coarsening.tie_breaking", "random")

	// Initial partitioning parameters
	v.SetDefault("initial.algorithm", "growing")
	v.SetDefault("initial.start_nodes", "bfs")
	v.SetDefault("initial.unassigned_part", 1)
	v.SetDefault("initial.hmetis_path", "hmetis")

	// Refinement parameters
	v.SetDefault("refinement.max_passes", 4)

	// Logging parameters
	v.SetDefault("logging.level", "info")

	v.SetDefault("debug.check_invariants", true)

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for partition parameters
func (c *Config) K() int                           { return c.v.GetInt("partition.k") }
func (c *Config) Epsilon() float64                 { return c.v.GetFloat64("partition.epsilon") }
func (c *Config) Seed() int64                      { return c.v.GetInt64("partition.seed") }
func (c *Config) InitialPartitioningAttempts() int { return c.v.GetInt("partition.initial_partitioning_attempts") }
func (c *Config) GlobalSearchIterations() int      { return c.v.GetInt("partition.global_search_iterations") }
func (c *Config) HyperedgeSizeThreshold() int      { return c.v.GetInt("partition.hyperedge_size_threshold") }
func (c *Config) GraphFilename() string            { return c.v.GetString("partition.graph_filename") }

func (c *Config) MinimalNodeCount() int            { return c.v.GetInt("coarsening.minimal_node_count") }
func (c *Config) HypernodeWeightFraction() float64 { return c.v.GetFloat64("coarsening.hypernode_weight_fraction") }
func (c *Config) TieBreaking() string              { return c.v.GetString("coarsening.tie_breaking") }

func (c *Config) InitialAlgorithm() string { return c.v.GetString("initial.algorithm") }
func (c *Config) StartNodes() string       { return c.v.GetString("initial.start_nodes") }
func (c *Config) HMetisPath() string       { return c.v.GetString("initial.hmetis_path") }

// UnassignedPart returns the sentinel block growing partitioners start all
// nodes in, or hypergraph.InvalidPartition when disabled.
func (c *Config) UnassignedPart() hypergraph.PartitionID {
	p := c.v.GetInt("initial.unassigned_part")
	if p < 0 {
		return hypergraph.InvalidPartition
	}
	return hypergraph.PartitionID(p)
}

func (c *Config) RefinementMaxPasses() int { return c.v.GetInt("refinement.max_passes") }

func (c *Config) LogLevel() string      { return c.v.GetString("logging.level") }
func (c *Config) CheckInvariants() bool { return c.v.GetBool("debug.check_invariants") }

// MaxAllowedNodeWeight returns the configured contraction weight bound, or
// the value derived from the hypernode weight fraction.
func (c *Config) MaxAllowedNodeWeight() int {
	if w := c.v.GetInt("coarsening.max_allowed_node_weight"); w > 0 {
		return w
	}
	return c.maxAllowedNodeWeight
}

// MaxPartSize returns (1+epsilon) * ceil(W/k) for the last recalculation.
func (c *Config) MaxPartSize() int { return c.maxPartSize }

// PerfectBalancePartitionWeight returns ceil(W/k) per block.
func (c *Config) PerfectBalancePartitionWeight() []int { return c.perfectBalance }

// UpperAllowedPartitionWeight returns (1+epsilon) * ceil(W/k) per block.
func (c *Config) UpperAllowedPartitionWeight() []int { return c.upperAllowed }

// RecalculateBalanceConstraints derives all weight bounds from the total
// weight of the hypergraph about to be partitioned.
func (c *Config) RecalculateBalanceConstraints(totalWeight int) {
	k := c.K()
	perfect := hypergraph.PerfectBalanceWeight(totalWeight, k)
	upper := int((1.0 + c.Epsilon()) * float64(perfect))

	c.maxPartSize = upper
	c.perfectBalance = make([]int, k)
	c.upperAllowed = make([]int, k)
	for i := 0; i < k; i++ {
		c.perfectBalance[i] = perfect
		c.upperAllowed[i] = upper
	}
	c.maxAllowedNodeWeight = max(1, int(math.Ceil(c.HypernodeWeightFraction()*float64(totalWeight))))
}

// Validate checks parameter ranges.
func (c *Config) Validate() error {
	if c.K() < 2 {
		return fmt.Errorf("partition.k must be at least 2, got %d", c.K())
	}
	if c.Epsilon() < 0 {
		return fmt.Errorf("partition.epsilon must be non-negative, got %f", c.Epsilon())
	}
	if c.InitialPartitioningAttempts() < 1 {
		return fmt.Errorf("partition.initial_partitioning_attempts must be positive, got %d", c.InitialPartitioningAttempts())
	}
	if c.GlobalSearchIterations() < 1 {
		return fmt.Errorf("partition.global_search_iterations must be positive, got %d", c.GlobalSearchIterations())
	}
	if t := c.HyperedgeSizeThreshold(); t != NoHyperedgeSizeThreshold && t < 2 {
		return fmt.Errorf("partition.hyperedge_size_threshold must be -1 or at least 2, got %d", t)
	}
	if p := c.UnassignedPart(); int(p) >= c.K() {
		return fmt.Errorf("initial.unassigned_part %d is not a block of a %d-way partition", p, c.K())
	}
	return nil
}

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "partitioner").Logger()
}

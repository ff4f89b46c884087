// Package constants provides shared constants for the event-planner application.
package constants

// Bonus rate constants
const (
	// BonusDenominator converts hundredth-of-a-percent bonus values to a
	// multiplier, e.g. 2500 -> +25%.
	BonusDenominator = 10000.0

	// ProbabilityDenominator converts drop probabilities expressed in
	// hundredths of a percent to the [0,1] range, e.g. 5000 -> 0.5.
	ProbabilityDenominator = 10000.0
)

// Simulation constants
const (
	// DefaultSimRuns is the iteration count used when a simulation config
	// does not specify one.
	DefaultSimRuns = 1000

	// MaxDiceRaceRolls is the hard ceiling on rolls in one dice-race trial;
	// it guarantees termination even when the target is unreachable.
	MaxDiceRaceRolls = 5000

	// MaxTreasurePlacementTries is the per-treasure retry budget for random
	// placement before the board layout is considered infeasible.
	MaxTreasurePlacementTries = 100

	// MaxTreasureBoardRebuilds is how many times one trial may rebuild an
	// infeasible board before falling back to the full-board worst case.
	MaxTreasureBoardRebuilds = 10

	// MaxGroupResolveDepth caps recursive gacha-group resolution so that
	// self-referential groups terminate.
	MaxGroupResolveDepth = 10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default plan configuration file name
	DefaultConfigFile = "plan.yaml"

	// DefaultDataDir is the default directory holding event data bundles
	DefaultDataDir = "data"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for
	// uploaded plan configurations (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// QuantityTolerance is the tolerance for item quantity comparisons;
	// quantities are probability-weighted expectations, so exact equality
	// is not meaningful.
	QuantityTolerance = 1e-9

	// DecimalPrecision is the precision used when rounding quantities for
	// display (2 decimal places).
	DecimalPrecision = 100
)

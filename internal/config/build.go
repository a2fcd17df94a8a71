package config

import "fmt"

// Set via ldflags, e.g. -X github/chapool/stormint/internal/config.Commit=$(git rev-parse HEAD).
var (
	ModuleName = "stormint"
	Commit     = "-"
	BuildDate  = "-"
)

// GetFormattedBuildArgs returns the version string printed by --version.
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}

package version

// Version is the current version of the study tool.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/quantbench/election-study/internal/version.Version=1.2.3"
// The default value "dev" indicates a development build.
var Version = "dev"

// GetVersion returns the current version of the tool.
func GetVersion() string {
	return Version
}

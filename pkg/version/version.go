// Package version exposes the build version of the footprint binary.
package version

// version is overridden at build time via
// -ldflags "-X github.com/rshade/footprint/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Set by the linker.
var version = "dev"

// GetVersion returns the build version, or "dev" for local builds.
func GetVersion() string {
	if version == "" {
		return "dev"
	}
	return version
}

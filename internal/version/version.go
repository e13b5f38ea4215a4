package version

// Version contains the application version information.
// Set via build-time ldflags in release builds:
// go build -ldflags "-X github.com/gh-sh4/bloggg/internal/version.Version=v1.0.0".
var Version = "dev"

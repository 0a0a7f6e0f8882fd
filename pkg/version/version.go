package version

// Set at build time using -ldflags="-X github.com/app-sre/fabi/pkg/version.version=...".
var version = "0.0.0"

func Version() string {
	return version
}

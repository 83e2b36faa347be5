package version

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/mdbook-force-relative-links/internal/version.Version=v1.2.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// MDBookVersion is the mdbook release the preprocessor protocol was built against.
// A running mdbook satisfying the caret requirement of this version is compatible.
const MDBookVersion = "0.4.40"

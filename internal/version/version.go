package version

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/essential/internal/version.Version=v1.2.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// ThemeVersion is the version the bundled theme plugins register with. It is a semantic
// version and does not change with ldflags.
const ThemeVersion = "v1.0.0"

// String returns "VERSION (COMMIT, BUILDTIME)".
func String() string {
	return Version + " (" + GitCommit + ", " + BuildTime + ")"
}

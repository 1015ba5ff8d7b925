package domain

// InstallState tracks the provisioner's progress for the managed runtime.
type InstallState string

const (
	// RuntimeNotChecked means no probe has run yet.
	RuntimeNotChecked InstallState = "not-checked"

	// RuntimeInstalled means a runtime was found on the standard lookup path.
	RuntimeInstalled InstallState = "installed"

	// RuntimeNeedsInstall means no runtime was found and an install is required.
	RuntimeNeedsInstall InstallState = "needs-install"

	// RuntimeDownloading means the runtime archive download is in progress.
	RuntimeDownloading InstallState = "downloading"

	// RuntimeExtracting means the runtime archive extraction is in progress.
	RuntimeExtracting InstallState = "extracting"

	// RuntimeReady means a managed runtime is installed and verified.
	RuntimeReady InstallState = "ready"

	// RuntimeUnsupported means no artifact is published for the host platform.
	// This state is terminal.
	RuntimeUnsupported InstallState = "unsupported"
)

// InstallTarget describes the runtime artifact for one platform/arch pair.
// BinaryRel is slash-separated and converted per-OS when joined.
type InstallTarget struct {
	// Platform is the archive platform token, e.g. "linux".
	Platform string

	// Arch is the archive architecture token, e.g. "x64".
	Arch string

	// BinaryRel is the relative path of the java binary inside the install root.
	BinaryRel string

	// Unsupported marks a pairing with no published artifact.
	Unsupported bool
}

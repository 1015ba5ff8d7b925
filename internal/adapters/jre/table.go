package jre

import (
	"fmt"

	"go.trai.ch/stoke/internal/core/domain"
)

// Pinned runtime release. The archive URL embeds a per-release path hash
// alongside the version and build numbers, so all three move together.
const (
	runtimeVersion  = "8u202"
	runtimeBuild    = "b08"
	runtimePathHash = "1961070e4c9b4e26a04e7f5a083f551e"
)

// installTargets maps "GOOS/GOARCH" to the published runtime artifact for
// that host. A tombstoned entry marks a host we recognize but for which no
// artifact was ever published, so it reads as unsupported without falling
// through to the unknown-host case.
var installTargets = map[string]domain.InstallTarget{
	"linux/amd64":   {Platform: "linux", Arch: "x64", BinaryRel: "bin/java"},
	"linux/386":     {Platform: "linux", Arch: "i586", BinaryRel: "bin/java"},
	"darwin/amd64":  {Platform: "macosx", Arch: "x64", BinaryRel: "Contents/Home/bin/java"},
	"windows/amd64": {Platform: "windows", Arch: "x64", BinaryRel: "bin/java.exe"},
	"darwin/arm64":  {Platform: "macosx", Arch: "aarch64", Unsupported: true},
}

// downloadURL returns the archive location for an install target.
func downloadURL(target domain.InstallTarget) string {
	return fmt.Sprintf("https://download.oracle.com/otn-pub/java/jdk/%s-%s/%s/jre-%s-%s-%s.tar.gz",
		runtimeVersion, runtimeBuild, runtimePathHash, runtimeVersion, target.Platform, target.Arch)
}

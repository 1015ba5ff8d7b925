package jre

import "go.trai.ch/stoke/internal/core/ports"

// NewProvisionerAt creates a provisioner with an explicit install dir and
// host facts, so tests control the table lookup and the filesystem.
func NewProvisionerAt(installDir, goos, goarch string, logger ports.Logger, downloader ports.Downloader, extractor ports.Extractor) *Provisioner {
	p := newProvisioner(installDir, logger, downloader, extractor)
	p.goos = goos
	p.goarch = goarch

	return p
}

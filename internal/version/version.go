// Package version carries the build version, stamped via
// -ldflags "-X github.com/octylFractal/clock-resonator/internal/version.Version=v1.2.3".
package version

var Version = "dev"

//go:build integration

// Package integration exercises the install and uninstall flows end to end
// against the in-memory Azure and cluster fakes. Unlike the package-level
// unit tests, these specs run the real phase pipeline and credential
// propagation together, so they catch ordering and state-handoff bugs
// between phases that isolated tests would miss.
//
// Run these tests with:
//
//	go test -v -tags=integration ./tests/integration/...
package integration

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Install Flow Suite")
}

package testing

import (
	"context"

	"github.com/stretchr/testify/mock"
	"helm.sh/helm/v3/pkg/release"

	"github.com/strandhq/strand-azure/internal/compose"
	"github.com/strandhq/strand-azure/internal/helm"
)

// MockInstaller is a testify mock for the Helm installer seam.
type MockInstaller struct {
	mock.Mock
}

// InstallOrUpgrade records the call and returns the configured release.
func (m *MockInstaller) InstallOrUpgrade(ctx context.Context, releaseName string, spec helm.ChartSpec, values helm.Values) (*release.Release, error) {
	args := m.Called(ctx, releaseName, spec, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*release.Release), args.Error(1)
}

// Uninstall records the call.
func (m *MockInstaller) Uninstall(releaseName string) error {
	args := m.Called(releaseName)
	return args.Error(0)
}

// NewMockInstaller creates a MockInstaller that accepts any install.
func NewMockInstaller() *MockInstaller {
	m := &MockInstaller{}
	m.On("InstallOrUpgrade", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&release.Release{}, nil)
	return m
}

// MockRenderer is a testify mock for the manifest renderer seam.
type MockRenderer struct {
	mock.Mock
}

// Render records the call and returns the configured manifests.
func (m *MockRenderer) Render(ctx context.Context, doc compose.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// NewMockRenderer creates a MockRenderer returning the given manifests for
// any document.
func NewMockRenderer(manifests []byte) *MockRenderer {
	m := &MockRenderer{}
	m.On("Render", mock.Anything, mock.Anything).Return(manifests, nil)
	return m
}

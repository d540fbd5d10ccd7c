package helm

import (
	"fmt"
	"os"

	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"
)

// ChartSpec identifies a chart in a repository.
type ChartSpec struct {
	Repository string
	Name       string
	Version    string
}

// Pinned version of the certificate issuer chart.
const certManagerVersion = "v1.19.2"

// CertManagerSpec returns the chart spec for the certificate issuer.
func CertManagerSpec() ChartSpec {
	return ChartSpec{
		Repository: "https://charts.jetstack.io",
		Name:       "cert-manager",
		Version:    certManagerVersion,
	}
}

// PlatformSpec returns the chart spec for the platform chart at the
// configured repository and version.
func PlatformSpec(repoURL, version string) ChartSpec {
	return ChartSpec{
		Repository: repoURL,
		Name:       "strand",
		Version:    version,
	}
}

// DownloadChart fetches the chart archive from its repository and loads it.
// The downloaded archive is removed once loaded; only the in-memory chart
// survives.
func DownloadChart(spec ChartSpec) (*chart.Chart, error) {
	settings := cli.New()

	chartPath, err := repo.FindChartInRepoURL(
		spec.Repository,
		spec.Name,
		spec.Version,
		"", "", "",
		getter.All(settings),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find chart %s in repo %s: %w", spec.Name, spec.Repository, err)
	}

	dl, err := getter.NewHTTPGetter()
	if err != nil {
		return nil, fmt.Errorf("failed to create chart getter: %w", err)
	}
	archive, err := dl.Get(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to download chart %s: %w", spec.Name, err)
	}

	loaded, err := loader.LoadArchive(archive)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", spec.Name, err)
	}
	return loaded, nil
}

// loadChartFromPath loads a chart from the local filesystem.
func loadChartFromPath(chartPath string) (*chart.Chart, error) {
	if _, err := os.Stat(chartPath); err != nil {
		return nil, fmt.Errorf("chart path %s: %w", chartPath, err)
	}
	return loader.Load(chartPath)
}

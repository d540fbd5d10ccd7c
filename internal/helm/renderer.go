package helm

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/engine"

	"github.com/strandhq/strand-azure/internal/compose"
)

// kubeVersion is the capability version templates render against. AKS
// clusters the installer creates are at least this recent.
const (
	kubeVersion      = "v1.31.0"
	kubeVersionMajor = "1"
	kubeVersionMinor = "31"
)

// PlatformRenderer renders the platform chart from a composed document.
// It implements compose.Renderer.
type PlatformRenderer struct {
	Spec      ChartSpec
	Namespace string
}

// NewPlatformRenderer creates a renderer for the platform chart.
func NewPlatformRenderer(spec ChartSpec, namespace string) *PlatformRenderer {
	return &PlatformRenderer{Spec: spec, Namespace: namespace}
}

// Render downloads the platform chart and renders it with the document as
// values. The chart template engine fails loudly on any reference the
// document does not satisfy.
func (r *PlatformRenderer) Render(ctx context.Context, doc compose.Document) ([]byte, error) {
	values, err := doc.ToValues()
	if err != nil {
		return nil, err
	}
	return RenderFromSpec(ctx, r.Spec, r.Namespace, Values(values))
}

// RenderFromSpec downloads a chart at runtime and renders it with the
// provided values.
func RenderFromSpec(_ context.Context, spec ChartSpec, namespace string, values Values) ([]byte, error) {
	loaded, err := DownloadChart(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to download chart: %w", err)
	}

	manifests, err := renderChart(loaded, spec.Name, namespace, values)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return manifests, nil
}

// RenderFromPath renders a chart from a local filesystem path. Used by
// tests and development builds with a checked-out chart.
func RenderFromPath(chartPath, releaseName, namespace string, values Values) ([]byte, error) {
	loaded, err := loadChartFromPath(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	manifests, err := renderChart(loaded, releaseName, namespace, values)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return manifests, nil
}

// renderChart runs the Helm engine over the chart with the given values
// deep-merged onto the chart defaults.
func renderChart(ch *chart.Chart, releaseName, namespace string, values Values) ([]byte, error) {
	chartDefaults := make(Values)
	if len(ch.Values) > 0 {
		chartDefaults = Values(ch.Values)
	}
	mergedValues := deepMerge(chartDefaults, values)

	releaseOptions := chartutil.ReleaseOptions{
		Name:      releaseName,
		Namespace: namespace,
		IsInstall: true,
	}

	capabilities := chartutil.DefaultCapabilities.Copy()
	capabilities.KubeVersion.Version = kubeVersion
	capabilities.KubeVersion.Major = kubeVersionMajor
	capabilities.KubeVersion.Minor = kubeVersionMinor

	valuesToRender, err := chartutil.ToRenderValues(ch, mergedValues.ToMap(), releaseOptions, capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare values: %w", err)
	}

	eng := engine.Engine{}
	rendered, err := eng.Render(ch, valuesToRender)
	if err != nil {
		return nil, fmt.Errorf("failed to render templates: %w", err)
	}

	// Stable output order: rendered is a map.
	names := make([]string, 0, len(rendered))
	for name := range rendered {
		names = append(names, name)
	}
	sort.Strings(names)

	var combined bytes.Buffer
	for _, name := range names {
		if filepath.Base(name) == "NOTES.txt" {
			continue
		}
		trimmed := strings.TrimSpace(rendered[name])
		if trimmed == "" {
			continue
		}
		if combined.Len() > 0 {
			combined.WriteString("\n---\n")
		}
		combined.WriteString(trimmed)
		combined.WriteString("\n")
	}

	return combined.Bytes(), nil
}

package k8s

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// ApplyManifests applies a multi-document YAML stream. Documents are applied
// in stream order; the first failure aborts with the object named in the
// error so the operator knows where a re-run will resume.
func (c *clusterClient) ApplyManifests(ctx context.Context, manifests []byte) error {
	objects, err := DecodeManifests(manifests)
	if err != nil {
		return err
	}

	for _, obj := range objects {
		if err := c.ApplyObject(ctx, obj); err != nil {
			return fmt.Errorf("failed to apply %s %s/%s: %w",
				obj.GetKind(), obj.GetNamespace(), obj.GetName(), err)
		}
	}
	return nil
}

// ApplyObject submits one object via server-side apply with forced ownership.
func (c *clusterClient) ApplyObject(ctx context.Context, obj client.Object) error {
	return c.cli.Patch(ctx, obj, client.Apply, client.FieldOwner(FieldManager), client.ForceOwnership)
}

// DecodeManifests parses a multi-document YAML stream into unstructured
// objects, skipping empty documents.
func DecodeManifests(manifests []byte) ([]*unstructured.Unstructured, error) {
	decoder := yaml.NewYAMLOrJSONDecoder(bytes.NewReader(manifests), 4096)

	var objects []*unstructured.Unstructured
	for docIndex := 0; ; docIndex++ {
		var obj unstructured.Unstructured
		if err := decoder.Decode(&obj); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode manifest document %d: %w", docIndex, err)
		}
		if len(obj.Object) == 0 {
			continue
		}
		if obj.GetKind() == "" {
			return nil, fmt.Errorf("manifest document %d has no kind", docIndex)
		}
		objects = append(objects, &obj)
	}
	return objects, nil
}

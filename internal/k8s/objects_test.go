package k8s

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestCertificate(t *testing.T) {
	t.Parallel()
	cert := Certificate("strand", "https-certificates", "https-certificates", "strand-issuer",
		[]string{"strand.example.com", "*.strand.example.com", "*.ws.strand.example.com"})

	assert.Equal(t, "cert-manager.io/v1", cert.GetAPIVersion())
	assert.Equal(t, "Certificate", cert.GetKind())
	assert.Equal(t, "https-certificates", cert.GetName())
	assert.Equal(t, "strand", cert.GetNamespace())

	secretName, found, err := unstructured.NestedString(cert.Object, "spec", "secretName")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "https-certificates", secretName)

	issuer, found, err := unstructured.NestedString(cert.Object, "spec", "issuerRef", "name")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "strand-issuer", issuer)

	dnsNames, found, err := unstructured.NestedStringSlice(cert.Object, "spec", "dnsNames")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"strand.example.com", "*.strand.example.com", "*.ws.strand.example.com"}, dnsNames)
}

func TestAdminRoleBinding(t *testing.T) {
	t.Parallel()
	binding := AdminRoleBinding("strand-admin", "strand", "strand")

	assert.Equal(t, "ClusterRoleBinding", binding.Kind)
	assert.Equal(t, "cluster-admin", binding.RoleRef.Name)
	assert.Equal(t, "ClusterRole", binding.RoleRef.Kind)
	require.Len(t, binding.Subjects, 1)
	assert.Equal(t, "ServiceAccount", binding.Subjects[0].Kind)
	assert.Equal(t, "strand", binding.Subjects[0].Name)
	assert.Equal(t, "strand", binding.Subjects[0].Namespace)
}

func TestDecodeManifests(t *testing.T) {
	t.Parallel()
	manifests := []byte(`apiVersion: v1
kind: ConfigMap
metadata:
  name: first
---
# comment-only document is skipped
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: second
  namespace: strand
`)

	objects, err := DecodeManifests(manifests)

	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "ConfigMap", objects[0].GetKind())
	assert.Equal(t, "first", objects[0].GetName())
	assert.Equal(t, "Deployment", objects[1].GetKind())
	assert.Equal(t, "strand", objects[1].GetNamespace())
}

func TestDecodeManifests_MissingKind(t *testing.T) {
	t.Parallel()
	_, err := DecodeManifests([]byte("metadata:\n  name: anonymous\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no kind")
}

func TestDecodeManifests_Empty(t *testing.T) {
	t.Parallel()
	objects, err := DecodeManifests(nil)

	require.NoError(t, err)
	assert.Empty(t, objects)
}

package k8s

import (
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Certificate builds a cert-manager Certificate requesting one TLS secret
// for the given DNS names. The object is submitted directly; no intermediate
// manifest file is written.
func Certificate(namespace, name, secretName, issuerName string, dnsNames []string) *unstructured.Unstructured {
	names := make([]any, 0, len(dnsNames))
	for _, dnsName := range dnsNames {
		names = append(names, dnsName)
	}

	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "cert-manager.io/v1",
		"kind":       "Certificate",
		"metadata": map[string]any{
			"name":      name,
			"namespace": namespace,
		},
		"spec": map[string]any{
			"secretName": secretName,
			"issuerRef": map[string]any{
				"name":  issuerName,
				"kind":  "ClusterIssuer",
				"group": "cert-manager.io",
			},
			"dnsNames": names,
		},
	}}
}

// AdminRoleBinding grants cluster-admin to the platform service account.
// Platform components create workspace pods and per-workspace objects across
// namespaces, which needs cluster-wide rights.
func AdminRoleBinding(name, namespace, serviceAccount string) *rbacv1.ClusterRoleBinding {
	return &rbacv1.ClusterRoleBinding{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "rbac.authorization.k8s.io/v1",
			Kind:       "ClusterRoleBinding",
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
		RoleRef: rbacv1.RoleRef{
			APIGroup: "rbac.authorization.k8s.io",
			Kind:     "ClusterRole",
			Name:     "cluster-admin",
		},
		Subjects: []rbacv1.Subject{{
			Kind:      "ServiceAccount",
			Name:      serviceAccount,
			Namespace: namespace,
		}},
	}
}

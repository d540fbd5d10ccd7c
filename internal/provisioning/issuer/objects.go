package issuer

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/strandhq/strand-azure/internal/config"
)

// acmeServer is the production ACME directory certificates are requested
// from.
const acmeServer = "https://acme-v02.api.letsencrypt.org/directory"

// ClusterIssuer builds the ACME issuer for the platform domain. With
// managed DNS the issuer solves DNS-01 challenges against the Azure zone
// using the kubelet identity's zone-contributor grant; without it the
// HTTP-01 solver answers through the platform ingress.
func ClusterIssuer(cfg *config.Config) *unstructured.Unstructured {
	var solver map[string]any
	if cfg.SetupManagedDNS {
		solver = map[string]any{
			"dns01": map[string]any{
				"azureDNS": map[string]any{
					"subscriptionID":    cfg.SubscriptionID,
					"resourceGroupName": cfg.ResourceGroup,
					"hostedZoneName":    cfg.Domain,
					"environment":       "AzurePublicCloud",
					// Empty selector: authenticate via the node's managed
					// identity, which holds the zone-contributor grant.
					"managedIdentity": map[string]any{},
				},
			},
		}
	} else {
		solver = map[string]any{
			"http01": map[string]any{
				"ingress": map[string]any{},
			},
		}
	}

	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "cert-manager.io/v1",
		"kind":       "ClusterIssuer",
		"metadata": map[string]any{
			"name": config.ClusterIssuerName,
		},
		"spec": map[string]any{
			"acme": map[string]any{
				"server": acmeServer,
				"email":  cfg.IssuerEmail,
				"privateKeySecretRef": map[string]any{
					"name": config.ClusterIssuerName + "-account-key",
				},
				"solvers": []any{solver},
			},
		},
	}}
}

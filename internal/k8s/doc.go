// Package k8s applies platform objects to the AKS cluster.
//
// Everything goes through server-side apply with a fixed field manager, so
// repeated installs converge on the same objects instead of accumulating
// conflicting writes. The Client interface is the seam consumers depend on;
// the production implementation speaks to the cluster through a
// controller-runtime client built from in-memory kubeconfig bytes.
package k8s

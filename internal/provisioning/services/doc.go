// Package services provisions the backing services the platform consumes:
// the container registry, the managed DNS zone, the MySQL database and the
// object storage account, together with the RBAC grants that let the
// cluster's kubelet identity reach them.
package services

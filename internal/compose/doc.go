// Package compose builds the platform installation document.
//
// The document is the single input the platform chart renders from: domain,
// region, certificate reference, and the references to the externally
// provisioned registry, database, and object storage. Compose starts from
// the embedded default document and fills in everything a run discovered,
// so the output is fully determined by config and provisioning state.
package compose

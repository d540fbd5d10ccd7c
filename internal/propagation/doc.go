// Package propagation writes the credentials discovered during
// reconciliation into cluster secrets under stable names, so repeated
// installs replace instead of accumulate. The database secret's encryption
// keyring is the one value that is carried forward rather than replaced:
// regenerating it would orphan everything encrypted with the old material.
package propagation

package artifacts

import "strings"

// RunID identifies a single CI run. Its prefix namespaces every object
// uploaded by that run.
type RunID struct {
	BuildID    string
	CommitHash string
	Branch     string
}

// Prefix returns the run-scoped key prefix. Dots are not allowed in the
// resulting key segment and are replaced by dashes.
func (r RunID) Prefix() string {
	raw := strings.Join([]string{r.BuildID, r.CommitHash, r.Branch}, "-")
	return strings.ReplaceAll(raw, ".", "-")
}

// KeyFor returns the object key for a path relative to the artifacts root.
func (r RunID) KeyFor(relPath string) string {
	return r.Prefix() + "/" + strings.TrimPrefix(relPath, "/")
}

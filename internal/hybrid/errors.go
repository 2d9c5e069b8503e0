package hybrid

import "fmt"

// ValidationError reports missing required input for hybrid issue
// creation. It is returned before any network call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("hybrid: missing required field %q", e.Field)
}

// PartialHybridFailure reports that the GitHub half of a hybrid issue
// was created but the Linear half failed. The orphaned GitHub issue is
// left in place (there is no compensating delete), so callers get its
// coordinates to clean up or retry manually.
type PartialHybridFailure struct {
	GitHubNumber int
	GitHubURL    string
	Err          error
}

func (e *PartialHybridFailure) Error() string {
	return fmt.Sprintf("hybrid: linear issue creation failed after github issue #%d was created (%s): %v",
		e.GitHubNumber, e.GitHubURL, e.Err)
}

// Unwrap exposes the upstream Linear error.
func (e *PartialHybridFailure) Unwrap() error { return e.Err }

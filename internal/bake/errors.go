package bake

import "fmt"

// DomainError reports that an IK bone's target or link references an
// unknown bone. It halts only the job for that bone; the concurrency shell
// collects these and surfaces the first one while letting the remaining
// jobs finish.
type DomainError struct {
	BoneName string
	Reason   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("bake: bone %q: %s", e.BoneName, e.Reason)
}

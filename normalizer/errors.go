package normalizer

import (
	"errors"
	"fmt"
)

// ErrInvalidEntry wraps a fatal input error with enough context to locate
// the offending entry in the zone description.
type ErrInvalidEntry struct {
	Zone    string
	Section string
	Key     string
	Reason  error
}

func (e ErrInvalidEntry) Error() string {
	return fmt.Sprintf("invalid %s entry: zone='%s', key='%s' because %s", e.Section, e.Zone, e.Key, e.Reason)
}

func (e ErrInvalidEntry) Unwrap() error {
	return e.Reason
}

var (
	ErrMissingNameserver = errors.New("zone declares no nameserver")
	ErrMissingEmail      = errors.New("zone declares no email contact")
	ErrMxPriority        = errors.New("first value of an mx entry must be the numeric priority")
	ErrAliasNotAllowed   = errors.New("alias names are not allowed in this section")
	ErrSrvShape          = errors.New("srv values must be [port, target] or [prio, weight, port, target]")
)

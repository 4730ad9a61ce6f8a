package service

import "fmt"

// DiscoveryError wraps a failure of the source-store listing itself.
// It is fatal to the cycle (no partial candidate list is acted upon) but
// not to the process: the next scheduled cycle may succeed.
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed: %v", e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// TransferError wraps a failure of one copy attempt for one file. The
// scheduler retries it up to the configured attempt ceiling; after that the
// file is reported as failed and other files are unaffected.
type TransferError struct {
	Key string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %s failed: %v", e.Key, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

package ports

import "context"

// FaultReporter receives faults contained by the bridge. Reporting never
// changes the error delivered to the caller.
type FaultReporter interface {
	ReportFault(ctx context.Context, operation string, fault error, stack []byte)
}

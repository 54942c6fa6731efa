package error_reporting

import "net/http"

// ErrorReporter is the explicit handle to the currently configured
// reporting backend. Hosts receive it from Resolve and pass it on instead
// of going through a global proxy object.
type ErrorReporter interface {
	FlushErrorReporting()
	CaptureError(err error) bool
	CaptureException(err error, req *http.Request) bool
}

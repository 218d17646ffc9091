// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Every failure the acquisition core reports carries one of the codes
// declared here, so the operator surfaces can decide whether the failure
// changed the lifecycle state (CONNECT, IO) or was merely reported
// (TRANSIENT_READ, RENDER).
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeConnect,
//	    "failed to open serial port",
//	    cause,
//	    map[string]any{
//	        "port": "/dev/ttyUSB0",
//	        "baud": 9600,
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeConnect) {
//	    // let the operator retry
//	}
package errors

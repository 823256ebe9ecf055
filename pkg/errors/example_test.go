// Package errors provides examples of structured error handling in respool.
package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/respool/pkg/errors"
)

// Example demonstrates basic error creation and wrapping.
func Example() {
	// Create a new error with type
	err := errors.New(errors.ErrorTypeConnection, "failed to create resource")

	// Add context details
	err = err.WithDetail("host", "localhost").
		WithDetail("port", 5432)

	// Print the error
	fmt.Println(err.Error())

	// Output:
	// connection: failed to create resource
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	// Simulate an underlying error
	originalErr := io.EOF

	// Wrap the error with context
	err := errors.Wrap(originalErr, errors.ErrorTypeConnection, "factory failed").
		WithDetail("attempt", 3)

	// Check the error type
	if errors.IsType(err, errors.ErrorTypeConnection) {
		fmt.Println("This is a connection error")
	}

	// Connection errors are worth retrying
	if errors.IsRetryable(err) {
		fmt.Println("Retryable")
	}

	// Output:
	// This is a connection error
	// Retryable
}

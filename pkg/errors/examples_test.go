package errors_test

import (
	"fmt"
	"os"

	"github.com/agentstation/jokeraudit/pkg/errors"
)

// Example demonstrates checking a fatal input error.
func Example() {
	err := errors.WrapInput("document", "JOKERS.md", os.ErrNotExist)

	if errors.IsInputUnavailable(err) {
		fmt.Println("Document unavailable")
	}

	// Output: Document unavailable
}

// Example_registrationNotFound demonstrates the missing construct error.
func Example_registrationNotFound() {
	err := errors.NewRegistrationNotFoundError("make_jokers!", "")
	fmt.Println(err)

	// Output: registration construct make_jokers! not found
}

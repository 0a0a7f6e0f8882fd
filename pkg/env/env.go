package env

import "fmt"

// Error reports a required environment variable that is missing or empty.
type Error struct {
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unable to access environment variable: %s", e.Name)
}

// TypeError reports an environment variable that could not be converted
// to its expected type.
type TypeError struct {
	Name string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unable to convert environment variable: %s", e.Name)
}

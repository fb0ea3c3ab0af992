package service

import "fmt"

// Fault is a domain-level failure whose message is shown to the caller
// verbatim. Handlers unwrap with errors.As and put the string in the response
// envelope; anything that is not a Fault is logged and reported generically.
type Fault string

func (f Fault) Error() string { return string(f) }

// Faultf builds a Fault with formatted arguments, for messages that embed
// caller input such as an email address.
func Faultf(format string, args ...any) Fault {
	return Fault(fmt.Sprintf(format, args...))
}

package core

import "fmt"

// Unreachable aborts on a value outside a closed enumeration. Reaching it
// means a switch over phases, factions, action kinds or directions is
// missing a case, which is a logic bug and never a runtime condition.
func Unreachable(kind string, value any) {
	panic(fmt.Sprintf("unreachable: unexpected %s value %v (%T)", kind, value, value))
}

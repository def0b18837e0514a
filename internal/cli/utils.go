package cli

import "strconv"

// optionalInt reads args[idx] as an int, returning def when the argument is
// absent.
func optionalInt(args []string, idx, def int) (int, error) {
	if len(args) <= idx {
		return def, nil
	}
	return strconv.Atoi(args[idx])
}

package dumpsys

import "fmt"

// Shell runs a command in the device shell. Query returns the normalized
// stdout, or false when the command could not run, exited non-zero, or printed
// nothing but a sentinel.
type Shell interface {
	Query(cmd string) (string, bool)
}

// MapShell is a Shell that answers from canned outputs keyed by command.
type MapShell map[string]string

// Query implements Shell.
func (m MapShell) Query(cmd string) (string, bool) {
	out, ok := m[cmd]
	if !ok {
		return "", false
	}
	return Normalize(out)
}

func setting(sh Shell, namespace, key string) (string, bool) {
	return sh.Query(fmt.Sprintf("settings get %s %s", namespace, key))
}

func settingIs(sh Shell, namespace, key, want string) bool {
	v, ok := setting(sh, namespace, key)
	return ok && v == want
}

// firstOf returns the first source that yields a value, in order.
func firstOf(sources ...func() (string, bool)) *string {
	for _, src := range sources {
		if v, ok := src(); ok {
			return &v
		}
	}
	return nil
}

func query(sh Shell, cmd string) func() (string, bool) {
	return func() (string, bool) { return sh.Query(cmd) }
}

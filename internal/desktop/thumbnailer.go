package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EntryName is the file name of the installed hook.
const EntryName = "epub.thumbnailer"

// MimeTypes are the types the hook is registered for.
var MimeTypes = []string{"application/epub+zip", "application/x-epub+zip"}

// Entry returns the thumbnailer hook contents for the given executable.
func Entry(executable string) string {
	var b strings.Builder
	b.WriteString("[Thumbnailer Entry]\n")
	fmt.Fprintf(&b, "TryExec=%s\n", executable)
	fmt.Fprintf(&b, "Exec=%s %%i %%o --size %%s\n", quoteExecArg(executable))
	fmt.Fprintf(&b, "MimeType=%s;\n", strings.Join(MimeTypes, ";"))
	return b.String()
}

// execReserved are the characters that force quoting of an Exec argument.
const execReserved = " \t\n\"'\\><~|&;$*?#()`"

// quoteExecArg quotes arg for an Exec key following the desktop entry
// rules: inside double quotes '"', '`', '$' and '\' are backslash escaped,
// then every backslash is doubled by the string value escaping.
func quoteExecArg(arg string) string {
	if !strings.ContainsAny(arg, execReserved) {
		return arg
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range arg {
		switch r {
		case '"', '`', '$', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return strings.ReplaceAll(b.String(), `\`, `\\`)
}

// Register writes the hook into dir and returns its path.
func Register(dir, executable string) (string, error) {
	target := filepath.Join(dir, EntryName)
	if err := os.WriteFile(target, []byte(Entry(executable)), 0o644); err != nil {
		return "", fmt.Errorf("failed to install %s: %w", target, err)
	}
	return target, nil
}

// Unregister removes the hook from dir and returns its former path.
func Unregister(dir string) (string, error) {
	target := filepath.Join(dir, EntryName)
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return target, fmt.Errorf("%w: %s not found", ErrNotRegistered, target)
		}
		return target, fmt.Errorf("failed to remove %s: %w", target, err)
	}
	return target, nil
}

// IsRegistered reports whether the hook exists in dir.
func IsRegistered(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, EntryName))
	return err == nil && info.Mode().IsRegular()
}

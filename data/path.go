package data

import (
	"fmt"
	"strings"
)

// ResolvePath turns a path expression into an absolute, lexically clean path.
// It supports "~" for the given home directory, "." and ".." segments and
// paths relative to cwd. Resolution never escapes above the root.
func ResolvePath(expr, cwd, home string) (string, error) {
	if expr == "" {
		return "", ErrInvalidPath
	}

	if expr == "~" {
		expr = home
	} else if strings.HasPrefix(expr, "~/") {
		expr = home + expr[1:]
	}

	if !strings.HasPrefix(expr, "/") {
		if cwd == "" {
			cwd = "/"
		}
		expr = strings.TrimSuffix(cwd, "/") + "/" + expr
	}

	parts := strings.Split(expr, "/")
	resolved := make([]string, 0, len(parts))

	for _, part := range parts {
		switch part {
		case "", ".":
		case "..":
			if len(resolved) > 0 {
				resolved = resolved[:len(resolved)-1]
			}
		default:
			resolved = append(resolved, part)
		}
	}

	return "/" + strings.Join(resolved, "/"), nil
}

// SplitPath breaks an absolute path into its segments. The root yields none.
func SplitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}

	return strings.Split(path, "/")
}

// BaseName returns the final path segment, or "/" for the root.
func BaseName(path string) string {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return "/"
	}

	return parts[len(parts)-1]
}

// ParentPath returns the path of the containing directory.
// The root is its own parent.
func ParentPath(path string) string {
	parts := SplitPath(path)
	if len(parts) <= 1 {
		return "/"
	}

	return "/" + strings.Join(parts[:len(parts)-1], "/")
}

// JoinPath joins a directory path and a child name.
func JoinPath(dir, name string) string {
	if dir == "" || dir == "/" {
		return "/" + name
	}

	return strings.TrimSuffix(dir, "/") + "/" + name
}

// ValidateName checks that a string can be used as a node name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

package data

import "fmt"

// Mode represents permissions in the textual form "rwxr-xr-x":
// three triads of read, write and execute bits for owner, group and other.
type Mode string

// Common default modes.
const (
	DefaultDirMode  Mode = "rwxr-xr-x"
	DefaultFileMode Mode = "rw-r--r--"
	ExecutableMode  Mode = "rwxr-xr-x"
	PrivateDirMode  Mode = "rwx------"
	SharedDirMode   Mode = "rwxrwxrwx"
)

// PermClass selects which triad of a mode applies to a user.
type PermClass int

const (
	ClassOwner PermClass = iota
	ClassGroup
	ClassOther
)

// PermOp is a single permission bit within a triad.
type PermOp int

const (
	OpRead PermOp = iota
	OpWrite
	OpExecute
)

func (op PermOp) String() string {
	switch op {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a well formed nine character mode.
func (m Mode) Valid() bool {
	if len(m) != 9 {
		return false
	}
	for i := 0; i < 9; i += 3 {
		if m[i] != 'r' && m[i] != '-' {
			return false
		}
		if m[i+1] != 'w' && m[i+1] != '-' {
			return false
		}
		if m[i+2] != 'x' && m[i+2] != '-' {
			return false
		}
	}
	return true
}

// Allows reports whether the class holds the given permission bit.
// Malformed or truncated modes never grant anything.
func (m Mode) Allows(class PermClass, op PermOp) bool {
	if len(m) != 9 {
		return false
	}

	idx := int(class)*3 + int(op)
	switch op {
	case OpRead:
		return m[idx] == 'r'
	case OpWrite:
		return m[idx] == 'w'
	case OpExecute:
		return m[idx] == 'x'
	}

	return false
}

// ParseMode accepts the textual triad form ("rwxr-xr-x") or a three digit
// octal form ("755") and returns the canonical textual mode.
func ParseMode(s string) (Mode, error) {
	if len(s) == 3 {
		buf := make([]byte, 0, 9)
		for _, d := range s {
			if d < '0' || d > '7' {
				return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
			}

			v := int(d - '0')
			buf = append(buf, permChar(v&4 != 0, 'r'), permChar(v&2 != 0, 'w'), permChar(v&1 != 0, 'x'))
		}
		return Mode(buf), nil
	}

	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}

	return m, nil
}

func permChar(set bool, c byte) byte {
	if set {
		return c
	}
	return '-'
}

// ClassOf resolves which permission class applies for a user on a node.
// Owner wins over group and group over other; exactly one class applies.
// Group membership is the user's primary gid or a listing in the group's
// member roll.
func ClassOf(node *Node, user User, groups []Group) PermClass {
	if user.Username == node.Owner {
		return ClassOwner
	}
	for _, g := range groups {
		if g.Name != node.Group {
			continue
		}
		if g.GID == user.GID {
			return ClassGroup
		}
		for _, member := range g.Members {
			if member == user.Username {
				return ClassGroup
			}
		}
	}
	return ClassOther
}

// Allowed reports whether the user may perform op on the node.
// Root bypasses all permission checks.
func Allowed(node *Node, user User, op PermOp, groups []Group) bool {
	if user.IsRoot() {
		return true
	}
	return node.Permissions.Allows(ClassOf(node, user, groups), op)
}

package data

import (
	"fmt"
	"strconv"
	"strings"
)

// User is a single entry of the simulated user database.
// Passwords are stored in plain text; the desktop simulates a login shell,
// it does not guard real secrets.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UID      int    `json:"uid"`
	GID      int    `json:"gid"`
	FullName string `json:"fullName"`
	HomeDir  string `json:"homeDir"`
	Shell    string `json:"shell"`
}

// IsRoot reports whether the user is the superuser.
func (u *User) IsRoot() bool {
	return u.UID == 0
}

// Group is a single entry of the simulated group database.
type Group struct {
	Name    string   `json:"name"`
	GID     int      `json:"gid"`
	Members []string `json:"members"`
}

// ParsePasswd parses the textual user database, one record per line:
//
//	username:password:uid:gid:fullName:homeDir:shell
//
// Empty lines are skipped; any other malformed line fails the whole parse.
func ParsePasswd(text string) ([]User, error) {
	var users []User

	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		fields := strings.Split(line, ":")
		if len(fields) != 7 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedRecord, i+1, len(fields))
		}

		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad uid %q", ErrMalformedRecord, i+1, fields[2])
		}

		gid, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad gid %q", ErrMalformedRecord, i+1, fields[3])
		}

		users = append(users, User{
			Username: fields[0],
			Password: fields[1],
			UID:      uid,
			GID:      gid,
			FullName: fields[4],
			HomeDir:  fields[5],
			Shell:    fields[6],
		})
	}

	return users, nil
}

// FormatPasswd renders users back into the textual database form.
// For well formed input, FormatPasswd(ParsePasswd(text)) returns text.
func FormatPasswd(users []User) string {
	var b strings.Builder

	for _, u := range users {
		fmt.Fprintf(&b, "%s:%s:%d:%d:%s:%s:%s\n",
			u.Username, u.Password, u.UID, u.GID, u.FullName, u.HomeDir, u.Shell)
	}

	return b.String()
}

// ParseGroups parses the textual group database, one record per line:
//
//	name:gid:member1,member2
//
// The member list may be empty.
func ParseGroups(text string) ([]Group, error) {
	var groups []Group

	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}

		fields := strings.Split(line, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedRecord, i+1, len(fields))
		}

		gid, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad gid %q", ErrMalformedRecord, i+1, fields[1])
		}

		var members []string
		if fields[2] != "" {
			members = strings.Split(fields[2], ",")
		}

		groups = append(groups, Group{
			Name:    fields[0],
			GID:     gid,
			Members: members,
		})
	}

	return groups, nil
}

// FormatGroups renders groups back into the textual database form.
// For well formed input, FormatGroups(ParseGroups(text)) returns text.
func FormatGroups(groups []Group) string {
	var b strings.Builder

	for _, g := range groups {
		fmt.Fprintf(&b, "%s:%d:%s\n", g.Name, g.GID, strings.Join(g.Members, ","))
	}

	return b.String()
}

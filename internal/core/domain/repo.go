package domain

import (
	"net/url"
	"strings"
)

// Repo identifies a remote repository by owner and name.
// Both fields are non-empty; ParseRepoURL rejects anything less.
type Repo struct {
	Owner string
	Name  string
}

// ParseRepoURL extracts the owner and repository name from a repository URL.
// Any URL whose path carries at least two non-empty segments is accepted;
// trailing segments such as "/tree/main" are ignored.
func ParseRepoURL(raw string) (Repo, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Repo{}, ErrInvalidRepoURL
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return Repo{}, ErrInvalidRepoURL
	}

	return Repo{Owner: segments[0], Name: segments[1]}, nil
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

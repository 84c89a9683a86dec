package github

import (
	"fmt"
	"strings"
)

// Repo identifies a repository as owner plus name
type Repo struct {
	Owner string
	Name  string
}

// String returns the owner/name form of the repository reference
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepo parses a repository reference into owner and name.
// Supported formats:
//   - owner/repo
//   - github.com/owner/repo
//   - https://github.com/owner/repo
func ParseRepo(ref string) (Repo, error) {
	s := strings.TrimSpace(ref)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, ".git")
	s = strings.Trim(s, "/")

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("invalid repository reference: %s (expected owner/repo)", ref)
	}

	return Repo{Owner: parts[0], Name: parts[1]}, nil
}

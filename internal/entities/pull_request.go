// Package entities contains core business entities.
package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// PRState labels follow the upstream event vocabulary; the set is open and
// stored as-is ("open", "merged", "closed", "reopened", ...).
const (
	StateMerged = "merged"
)

// PRIdentity is the (owner, repo, number) triple derived from a PR URL.
type PRIdentity struct {
	Owner  string
	Repo   string
	Number int
}

// URL returns the canonical GitHub URL for the identity.
func (id PRIdentity) URL() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", id.Owner, id.Repo, id.Number)
}

// ParsePRIdentity derives a PR identity from a URL of the form
// .../<owner>/<repo>/pull/<number>. Anything else is rejected before any
// remote call is made.
func ParsePRIdentity(rawURL string) (PRIdentity, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 4 {
		return PRIdentity{}, fmt.Errorf("%w: %s", ErrInvalidPRURL, rawURL)
	}

	n := len(parts)
	owner, repo, pull, number := parts[n-4], parts[n-3], parts[n-2], parts[n-1]
	if pull != "pull" || owner == "" || repo == "" {
		return PRIdentity{}, fmt.Errorf("%w: %s", ErrInvalidPRURL, rawURL)
	}

	num, err := strconv.Atoi(number)
	if err != nil || num <= 0 {
		return PRIdentity{}, fmt.Errorf("%w: %s", ErrInvalidPRURL, rawURL)
	}

	return PRIdentity{Owner: owner, Repo: repo, Number: num}, nil
}

// PRMetadata is what the fetcher extracts from the GitHub PR response,
// with defaults already applied for optional fields.
type PRMetadata struct {
	Title        string
	Description  string
	Author       string
	State        string
	HTMLURL      string
	FilesChanged int
	Additions    int
	Deletions    int
}

// PRRecord is the cached projection of a summarized PR.
type PRRecord struct {
	Author       string
	FilesChanged int
	Additions    int
	Deletions    int
	HTMLURL      string
	State        string
	Summary      string
}

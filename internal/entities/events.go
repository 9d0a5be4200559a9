// Package entities contains core business entities.
package entities

// PushEvent is the subset of a GitHub push webhook payload the service reads.
type PushEvent struct {
	Ref        string          `json:"ref"`
	Repository EventRepository `json:"repository"`
	HeadCommit *HeadCommit     `json:"head_commit"`
}

// EventRepository identifies the repository a webhook event belongs to.
type EventRepository struct {
	Name string `json:"name"`
}

// HeadCommit is the head commit of a push event.
type HeadCommit struct {
	ID      string       `json:"id"`
	Message string       `json:"message"`
	Author  CommitAuthor `json:"author"`
}

// CommitAuthor names the commit author.
type CommitAuthor struct {
	Name string `json:"name"`
}

// MergeInfo is what the merge-event interpreter extracts from a push event
// classified as a PR merge. BranchName is best-effort and may be empty.
type MergeInfo struct {
	PRNumber   string
	BranchName string
	CommitSHA  string
	AuthorName string
	RepoName   string
	PRURL      string
}

// Webhook outcome labels mirrored back to GitHub in the response body.
const (
	WebhookSuccess = "success"
	WebhookIgnored = "ignored"
	WebhookError   = "error"
)

// WebhookResult is the outcome of processing one inbound webhook event.
type WebhookResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	PRNumber string `json:"pr_number,omitempty"`
}

package domain

import (
	"fmt"
	"regexp"

	"slack-gpt-bot/internal/entities"
)

const mainBranchRef = "refs/heads/main"

// GitHub's merge commit message is the actual upstream contract here:
// "Merge pull request #<N> from <owner>/<branch>". The branch capture is
// best-effort; the merge classification holds without it.
var (
	mergeCommitPattern  = regexp.MustCompile(`Merge pull request #(\d+)`)
	sourceBranchPattern = regexp.MustCompile(`from [^/\s]+/(\S+)`)
)

// InterpretMergeEvent decides whether a push event represents a PR merge:
// only a push to the main branch whose head commit message matches the merge
// commit pattern qualifies. It never errors; any non-matching event returns
// ok=false.
func InterpretMergeEvent(event entities.PushEvent, owner string) (entities.MergeInfo, bool) {
	if event.Ref != mainBranchRef || event.HeadCommit == nil {
		return entities.MergeInfo{}, false
	}

	m := mergeCommitPattern.FindStringSubmatch(event.HeadCommit.Message)
	if m == nil {
		return entities.MergeInfo{}, false
	}
	number := m[1]

	var branch string
	if bm := sourceBranchPattern.FindStringSubmatch(event.HeadCommit.Message); bm != nil {
		branch = bm[1]
	}

	return entities.MergeInfo{
		PRNumber:   number,
		BranchName: branch,
		CommitSHA:  event.HeadCommit.ID,
		AuthorName: event.HeadCommit.Author.Name,
		RepoName:   event.Repository.Name,
		PRURL:      fmt.Sprintf("https://github.com/%s/%s/pull/%s", owner, event.Repository.Name, number),
	}, true
}

// Package mapper converts domain entities to outbound representations.
package mapper

import (
	"fmt"

	"slack-gpt-bot/internal/entities"
)

// ToRecord assembles the cacheable PR record from fetched metadata and the
// generated summary.
func ToRecord(meta entities.PRMetadata, summary string) entities.PRRecord {
	return entities.PRRecord{
		Author:       meta.Author,
		FilesChanged: meta.FilesChanged,
		Additions:    meta.Additions,
		Deletions:    meta.Deletions,
		HTMLURL:      meta.HTMLURL,
		State:        meta.State,
		Summary:      summary,
	}
}

// ToSlackText renders a PR record into the Slack message body: author,
// changes line, link, state, then the summary verbatim after a blank line.
func ToSlackText(rec entities.PRRecord) string {
	return fmt.Sprintf(
		"👤 *Author:* %s\n📊 *Changes:* %d files changed (+%d / -%d)\n🔗 *Link:* %s\n📌 *State:* %s\n\n%s",
		rec.Author,
		rec.FilesChanged,
		rec.Additions,
		rec.Deletions,
		rec.HTMLURL,
		rec.State,
		rec.Summary,
	)
}

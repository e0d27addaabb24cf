package bugbash

import (
	"fmt"
	"strings"
)

// ItemsQuery builds the WIQL query that discovers all work items belonging
// to a bash: same project, the bash's configured work item type, and tags
// containing the bash link tag, newest first.
func ItemsQuery(projectID string, bash *BugBash) string {
	return fmt.Sprintf(
		"SELECT [System.Id] FROM WorkItems WHERE [System.TeamProject] = '%s' AND [System.WorkItemType] = '%s' AND [System.Tags] CONTAINS '%s' ORDER BY [System.CreatedDate] DESC",
		escapeWiql(projectID),
		escapeWiql(bash.WorkItemType),
		escapeWiql(BashTag(bash.ID)),
	)
}

// escapeWiql doubles embedded single quotes, the only escaping WIQL string
// literals support.
func escapeWiql(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

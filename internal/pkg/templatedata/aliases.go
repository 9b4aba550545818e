package templatedata

// Alias lists, canonical key first, then the spellings other producers use.
var (
	ProjectNameKeys = []string{"projectName", "project_name", "name"}
	PapersCountKeys = []string{"papersCount", "papers_count"}
	SearchQueryKeys = []string{"searchParams", "search_params", "query"}
	PaperTitleKeys  = []string{"paperTitle", "paper_title", "title"}
	ConfidenceKeys  = []string{"summaryConfidence", "summary_confidence"}
	NotesCountKeys  = []string{"notesCount", "notes_count"}
	GapsCountKeys   = []string{"gapsCount", "gaps_count", "totalGaps", "total_gaps"}
	ProjectIDKeys   = []string{"projectId", "project_id"}
	PaperIDKeys     = []string{"paperId", "paper_id"}
)

var (
	textGroups   = [][]string{ProjectNameKeys, SearchQueryKeys, PaperTitleKeys, ConfidenceKeys, ProjectIDKeys, PaperIDKeys}
	numberGroups = [][]string{PapersCountKeys, NotesCountKeys, GapsCountKeys}
)

// Normalize returns a copy of data in which every canonical key holds the value
// String or Int would resolve through its aliases. Keys that resolve to nothing
// are left as they were. data itself is never modified.
func Normalize(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	for _, keys := range textGroups {
		if s, ok := String(data, keys...); ok {
			out[keys[0]] = s
		}
	}
	for _, keys := range numberGroups {
		if n, ok := Int(data, keys...); ok {
			out[keys[0]] = n
		}
	}
	return out
}

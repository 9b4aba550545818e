package dispatch

import (
	"fmt"

	"github.com/scholar-notify/internal/pkg/templatedata"
)

const (
	summaryTitleMax     = 40
	gapAnalysisTitleMax = 30
)

func webSearchTitle(data map[string]any, _ string) string {
	title := "🔍 Research Search Complete"
	if project, ok := templatedata.String(data, templatedata.ProjectNameKeys...); ok {
		title += " • " + project
	}
	if n, ok := templatedata.Int(data, templatedata.PapersCountKeys...); ok {
		title += fmt.Sprintf(" (%d papers)", n)
	}
	return title
}

func webSearchMessage(data map[string]any, _ string) string {
	n := intOrZero(data, templatedata.PapersCountKeys)
	project, hasProject := templatedata.String(data, templatedata.ProjectNameKeys...)
	query, hasQuery := templatedata.String(data, templatedata.SearchQueryKeys...)
	if hasProject && hasQuery {
		return fmt.Sprintf(`Web search completed for "%s". Found %d papers matching "%s".`, project, n, query)
	}
	return fmt.Sprintf("Academic paper search completed. Found %d papers.", n)
}

func summaryTitle(data map[string]any, _ string) string {
	title := "📄 AI Summary Ready"
	if paper, ok := templatedata.String(data, templatedata.PaperTitleKeys...); ok {
		title += " • " + templatedata.Truncate(paper, summaryTitleMax)
	}
	return title
}

func summaryMessage(data map[string]any, _ string) string {
	paper, ok := templatedata.String(data, templatedata.PaperTitleKeys...)
	if !ok {
		paper = "paper"
	}
	msg := `AI-powered summary generated for "` + paper + `"`
	if conf, ok := templatedata.String(data, templatedata.ConfidenceKeys...); ok {
		return msg + " with " + conf + " confidence."
	}
	return msg + "."
}

func projectDeletedTitle(data map[string]any, _ string) string {
	title := "🗑️ Project Deleted"
	if name, ok := templatedata.String(data, templatedata.ProjectNameKeys...); ok {
		title += " • " + name
	}
	return title
}

func projectDeletedMessage(data map[string]any, _ string) string {
	name, ok := templatedata.String(data, templatedata.ProjectNameKeys...)
	if !ok {
		name = "Unnamed Project"
	}
	notes := ""
	if n, ok := templatedata.Int(data, templatedata.NotesCountKeys...); ok {
		notes = fmt.Sprintf(", %d notes", n)
	}
	return fmt.Sprintf(`Project "%s" deleted. Removed %d papers%s.`, name, intOrZero(data, templatedata.PapersCountKeys), notes)
}

func gapAnalysisTitle(data map[string]any, _ string) string {
	title := "🎯 Gap Analysis Complete"
	if paper, ok := templatedata.String(data, templatedata.PaperTitleKeys...); ok {
		title += " • " + templatedata.Truncate(paper, gapAnalysisTitleMax)
	}
	if n, ok := templatedata.Int(data, templatedata.GapsCountKeys...); ok {
		title += fmt.Sprintf(" (%d gaps)", n)
	}
	return title
}

func gapAnalysisMessage(data map[string]any, _ string) string {
	return fmt.Sprintf("Gap analysis completed. Identified %d research opportunities.", intOrZero(data, templatedata.GapsCountKeys))
}

func intOrZero(data map[string]any, keys []string) int {
	n, _ := templatedata.Int(data, keys...)
	return n
}

func optionalString(data map[string]any, keys []string) *string {
	if s, ok := templatedata.String(data, keys...); ok {
		return &s
	}
	return nil
}

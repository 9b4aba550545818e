package dispatch

import (
	"fmt"

	"github.com/scholar-notify/internal/domain"
)

// textBuilder produces an in-app title or message from the request's template data.
type textBuilder func(data map[string]any, appName string) string

// route is everything the dispatcher needs to deliver one notification type.
type route struct {
	subject  string // format string, receives the app name
	template string
	feed     feedTemplate
}

// feedTemplate describes the in-app entry mirrored after a successful delivery.
type feedTemplate struct {
	category   string
	priority   domain.Priority
	actionURL  string
	actionText string
	title      textBuilder
	message    textBuilder
}

const unknownTemplate = "unknown"

// routes has no entry for ACCOUNT_UPDATE: the type is recognised but nothing is sent for it.
var routes = map[domain.NotificationType]route{
	domain.TypeWelcomeEmail: {
		subject:  "Welcome to %s!",
		template: "welcome-email",
		feed: feedTemplate{
			category:   "welcome_email",
			priority:   domain.PriorityLow,
			actionURL:  "/interface/projects",
			actionText: "Get Started",
			title:      withAppName("🎉 Welcome to %s!"),
			message:    static("Your account has been created successfully. Start exploring research papers."),
		},
	},
	domain.TypePasswordReset: {
		subject:  "Password Reset - %s",
		template: "password-reset-email",
		feed: feedTemplate{
			category:   "password_reset",
			priority:   domain.PriorityHigh,
			actionURL:  "/interface/account",
			actionText: "Update Password",
			title:      static("🔐 Password Reset Request"),
			message:    static("A password reset request was received for your account."),
		},
	},
	domain.TypeEmailVerification: {
		subject:  "Verify Your Email - %s",
		template: "email-verification",
		feed: feedTemplate{
			category:   "email_verification",
			priority:   domain.PriorityMedium,
			actionURL:  "/interface/account",
			actionText: "Verify Email",
			title:      static("✉️ Email Verification Required"),
			message:    static("Please verify your email address to complete your account setup."),
		},
	},
	domain.TypeWebSearchCompleted: {
		subject:  "Your web search results are ready - %s",
		template: "web-search-completed",
		feed: feedTemplate{
			category:   "web_search_completed",
			priority:   domain.PriorityMedium,
			actionURL:  "/interface/projects",
			actionText: "View Results",
			title:      webSearchTitle,
			message:    webSearchMessage,
		},
	},
	domain.TypeSummarizationComplete: {
		subject:  "Your paper summary is ready - %s",
		template: "summarization-completed",
		feed: feedTemplate{
			category:   "summarization_completed",
			priority:   domain.PriorityMedium,
			actionURL:  "/interface/projects",
			actionText: "View Summary",
			title:      summaryTitle,
			message:    summaryMessage,
		},
	},
	domain.TypeProjectDeleted: {
		subject:  "Project deleted - %s",
		template: "project-deleted",
		feed: feedTemplate{
			category:   "project_deleted",
			priority:   domain.PriorityHigh,
			actionURL:  "/interface/projects",
			actionText: "View Projects",
			title:      projectDeletedTitle,
			message:    projectDeletedMessage,
		},
	},
	domain.TypeGapAnalysisCompleted: {
		subject:  "Gap analysis is ready - %s",
		template: "gap-analysis-completed",
		feed: feedTemplate{
			category:   "gap_analysis_completed",
			priority:   domain.PriorityMedium,
			actionURL:  "/interface/projects",
			actionText: "View Analysis",
			title:      gapAnalysisTitle,
			message:    gapAnalysisMessage,
		},
	},
}

func static(text string) textBuilder {
	return func(map[string]any, string) string { return text }
}

func withAppName(format string) textBuilder {
	return func(_ map[string]any, appName string) string { return fmt.Sprintf(format, appName) }
}

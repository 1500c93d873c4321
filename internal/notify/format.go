package notify

import (
	"fmt"
	"strings"

	"discussion_bot/internal/pipeline"
)

// FormatReport formats a completed cycle.
func FormatReport(res *pipeline.CycleResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sync finished: %d sessions, %d created, %d existing",
		len(res.Sessions), len(res.Created), len(res.Skipped))
	if len(res.Failed) > 0 {
		fmt.Fprintf(&b, ", %d failed", len(res.Failed))
	}
	b.WriteString("\n")

	if len(res.Created) > 0 {
		b.WriteString("\nCreated:\n")
		for _, ch := range res.Created {
			fmt.Fprintf(&b, "  #%s\n", ch.Name)
		}
	}
	if len(res.Failed) > 0 {
		b.WriteString("\nFailed:\n")
		for _, f := range res.Failed {
			fmt.Fprintf(&b, "  %s: %v\n", f.Request.Name, f.Err)
		}
	}
	if res.Warnings > 0 {
		fmt.Fprintf(&b, "\n%d sessions are missing a date or link. The page layout may have changed.\n", res.Warnings)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatFailure formats a cycle that stopped before reconciling.
func FormatFailure(res *pipeline.CycleResult) string {
	return fmt.Sprintf("Sync failed (%s): %v", outcomeLabel(res.Outcome), res.Err)
}

// FormatRecovery announces the first successful cycle after failures.
func FormatRecovery(prev pipeline.Outcome) string {
	return fmt.Sprintf("Sync recovered after %s.", outcomeLabel(prev))
}

func outcomeLabel(o pipeline.Outcome) string {
	switch o {
	case pipeline.OutcomeMissingConfig:
		return "missing configuration"
	case pipeline.OutcomeFetchFailed:
		return "fetch failure"
	case pipeline.OutcomeParseFailed:
		return "page layout changed"
	case pipeline.OutcomeNoSessions:
		return "no sessions found"
	case pipeline.OutcomeListFailed:
		return "channel listing failure"
	default:
		return string(o)
	}
}

package handlers

import (
	"log/slog"

	"github.com/perfdash/dashboard-backend/internal/supabase"
)

const activityLogsTable = "activity_logs"

type activityEntry struct {
	TeamID      string         `json:"team_id"`
	UserID      string         `json:"user_id"`
	ActionType  string         `json:"action_type"`
	Description string         `json:"action_description"`
	Metadata    map[string]any `json:"metadata"`
}

// logActivity appends an activity_logs row attributed to userID.
// Best-effort: failures are logged and discarded, never surfaced.
func logActivity(sb *supabase.Client, userID, teamID, actionType, description string, metadata map[string]any) {
	entry := activityEntry{
		TeamID:      teamID,
		UserID:      userID,
		ActionType:  actionType,
		Description: description,
		Metadata:    metadata,
	}
	if _, failure := sb.Insert(activityLogsTable, entry); failure != nil {
		slog.Warn("activity log write failed", "action_type", actionType, "team_id", teamID, "error", failure.Error())
	}
}

// logActivityWithToken resolves the bearer token for attribution first.
// A missing token or failed resolution skips the log entry silently.
func logActivityWithToken(sb *supabase.Client, token, teamID, actionType, description string, metadata map[string]any) {
	if token == "" {
		return
	}
	user, failure := sb.ResolveUser(token)
	if failure != nil {
		slog.Warn("activity log attribution failed", "action_type", actionType, "error", failure.Error())
		return
	}
	logActivity(sb, user.ID, teamID, actionType, description, metadata)
}

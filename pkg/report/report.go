// Package report summarises notification state per user.
package report

import (
	"context"
	"fmt"
	"io"

	"accounthub/models"

	"gorm.io/gorm"
)

// UserUnread is one line of the unread report.
type UserUnread struct {
	UserID string
	Unread int64
	Total  int64
}

// UnreadByUser returns unread and total notification counts for every user
// that has at least minUnread unread notifications, busiest first.
func UnreadByUser(ctx context.Context, db *gorm.DB, minUnread int64) ([]UserUnread, error) {
	var rows []UserUnread
	err := db.WithContext(ctx).Model(&models.Notification{}).
		Select("user_id, SUM(CASE WHEN read = ? THEN 1 ELSE 0 END) AS unread, COUNT(*) AS total", false).
		Group("user_id").
		Having("SUM(CASE WHEN read = ? THEN 1 ELSE 0 END) >= ?", false, minUnread).
		Order("unread desc, user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("unread report: %w", err)
	}
	return rows, nil
}

// Print writes rows as pipe-separated lines.
func Print(w io.Writer, rows []UserUnread) {
	fmt.Fprintf(w, "users=%d\n", len(rows))
	for _, r := range rows {
		fmt.Fprintf(w, "%s|%d|%d\n", r.UserID, r.Unread, r.Total)
	}
}

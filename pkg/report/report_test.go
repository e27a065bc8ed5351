package report

import (
	"bytes"
	"context"
	"testing"

	"accounthub/models"
	"accounthub/pkg/activity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUnreadByUser(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:report?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	svc := activity.NewService(db)
	ctx := context.Background()

	create := func(uid string, n int) []string {
		var ids []string
		for i := 0; i < n; i++ {
			got, err := svc.CreateNotification(ctx, uid, activity.NotificationInput{Title: "t", Message: "m"})
			require.NoError(t, err)
			ids = append(ids, got.ID)
		}
		return ids
	}
	create("alice", 3)
	bob := create("bob", 2)
	require.NoError(t, svc.MarkAsRead(ctx, bob[0]))
	require.NoError(t, svc.MarkAsRead(ctx, bob[1]))
	create("carol", 1)

	rows, err := UnreadByUser(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, []UserUnread{
		{UserID: "alice", Unread: 3, Total: 3},
		{UserID: "carol", Unread: 1, Total: 1},
	}, rows)

	all, err := UnreadByUser(ctx, db, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	var buf bytes.Buffer
	Print(&buf, rows)
	assert.Equal(t, "users=2\nalice|3|3\ncarol|1|1\n", buf.String())
}

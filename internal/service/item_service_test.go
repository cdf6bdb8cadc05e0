package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestItemCreateDefaults(t *testing.T) {
	t.Parallel()

	_, items, _ := newTestServices(t)
	ctx := context.Background()

	created, err := items.Create(ctx, ItemInput{Name: "umbrella", OwnerEmail: "a@x.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID, "id assigned when the client omits one")
	require.False(t, created.Found)

	_, err = items.Create(ctx, ItemInput{Name: "orphan"})
	require.Error(t, err, "owner email is required")
}

func TestItemUpdate_AllowList(t *testing.T) {
	t.Parallel()

	_, items, _ := newTestServices(t)
	ctx := context.Background()

	created, err := items.Create(ctx, ItemInput{
		Name:        "umbrella",
		Description: "black",
		Location:    "library",
		OwnerEmail:  "a@x.com",
	})
	require.NoError(t, err)

	found := true
	location := "front desk"
	updated, err := items.Update(ctx, created.ID, ItemUpdate{Found: &found, Location: &location})
	require.NoError(t, err)
	require.True(t, updated.Found)
	require.Equal(t, "front desk", updated.Location)
	// untouched fields survive a partial update
	require.Equal(t, "umbrella", updated.Name)
	require.Equal(t, "a@x.com", updated.OwnerEmail)

	_, err = items.Update(ctx, "missing-id", ItemUpdate{Found: &found})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestItemDelete_Ownership(t *testing.T) {
	t.Parallel()

	_, items, _ := newTestServices(t)
	ctx := context.Background()

	created, err := items.Create(ctx, ItemInput{Name: "umbrella", OwnerEmail: "a@x.com"})
	require.NoError(t, err)

	require.ErrorIs(t, items.Delete(ctx, "b@x.com", created.ID), ErrForbidden)

	// the failed delete left the item in place
	got, err := items.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "umbrella", got.Name)

	require.ErrorIs(t, items.Delete(ctx, "a@x.com", "missing-id"), ErrNotFound)

	require.NoError(t, items.Delete(ctx, "a@x.com", created.ID))
	_, err = items.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNotificationCreate_TimestampDefault(t *testing.T) {
	t.Parallel()

	_, _, notifications := newTestServices(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	created, err := notifications.Create(ctx, NotificationInput{
		RecipientEmail: "a@x.com",
		Message:        "your umbrella was found",
		FinderEmail:    "b@x.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.True(t, created.Timestamp.After(before))

	explicit := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	created, err = notifications.Create(ctx, NotificationInput{
		RecipientEmail: "a@x.com",
		Timestamp:      &explicit,
	})
	require.NoError(t, err)
	require.Equal(t, explicit, created.Timestamp)

	_, err = notifications.Create(ctx, NotificationInput{Message: "no recipient"})
	require.Error(t, err)

	list, err := notifications.ListForRecipient(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

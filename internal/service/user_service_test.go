package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"campus-connect/internal/repository/sqlite"
)

func newTestServices(t *testing.T) (UserService, ItemService, NotificationService) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	users := sqlite.NewUserRepository(db)
	items := sqlite.NewItemRepository(db)
	notifications := sqlite.NewNotificationRepository(db)
	require.NoError(t, users.Init(ctx))
	require.NoError(t, items.Init(ctx))
	require.NoError(t, notifications.Init(ctx))

	return NewUserService(users, items, notifications), NewItemService(items), NewNotificationService(notifications)
}

func register(t *testing.T, users UserService, email string) {
	t.Helper()

	_, err := users.Register(context.Background(), RegisterInput{
		Username: "shanto",
		Email:    email,
		Password: "p1",
	})
	require.NoError(t, err)
}

func TestRegisterThenAuthenticate(t *testing.T) {
	t.Parallel()

	users, _, _ := newTestServices(t)
	ctx := context.Background()

	created, err := users.Register(ctx, RegisterInput{
		Username:    "shanto",
		Email:       "a@x.com",
		Password:    "p1",
		University:  "NSU",
		Department:  "CSE",
		BloodGroup:  "O+",
		PhoneNumber: "01700000000",
	})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", created.Email)
	require.Empty(t, created.PasswordHash, "hash must never leave the service layer")

	authed, err := users.Authenticate(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.Equal(t, "shanto", authed.Username)
	require.Empty(t, authed.PasswordHash)

	_, err = users.Authenticate(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "nobody@x.com", "p1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users, _, _ := newTestServices(t)
	ctx := context.Background()

	register(t, users, "a@x.com")

	_, err := users.Register(ctx, RegisterInput{Username: "imposter", Email: "a@x.com", Password: "p2"})
	require.ErrorIs(t, err, ErrEmailTaken)

	// first registration must be untouched
	got, err := users.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "shanto", got.Username)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	users, _, _ := newTestServices(t)
	ctx := context.Background()

	_, err := users.Register(ctx, RegisterInput{Email: "", Password: "p1"})
	require.Error(t, err)

	_, err = users.Register(ctx, RegisterInput{Email: "a@x.com", Password: ""})
	require.Error(t, err)
}

func TestUpdateProfilePicture(t *testing.T) {
	t.Parallel()

	users, _, _ := newTestServices(t)
	ctx := context.Background()

	register(t, users, "a@x.com")

	updated, err := users.UpdateProfilePicture(ctx, "a@x.com", "/uploads/42.png")
	require.NoError(t, err)
	require.Equal(t, "/uploads/42.png", updated.ProfilePicture)

	_, err = users.UpdateProfilePicture(ctx, "nobody@x.com", "/uploads/42.png")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = users.UpdateProfilePicture(ctx, "a@x.com", "")
	require.Error(t, err)
}

func TestDeleteUser_OwnershipAndCascade(t *testing.T) {
	t.Parallel()

	users, items, notifications := newTestServices(t)
	ctx := context.Background()

	register(t, users, "a@x.com")
	register(t, users, "b@x.com")

	_, err := items.Create(ctx, ItemInput{Name: "umbrella", OwnerEmail: "a@x.com"})
	require.NoError(t, err)
	survivor, err := items.Create(ctx, ItemInput{Name: "wallet", OwnerEmail: "b@x.com"})
	require.NoError(t, err)

	_, err = notifications.Create(ctx, NotificationInput{RecipientEmail: "a@x.com", Message: "found it", FinderEmail: "b@x.com"})
	require.NoError(t, err)
	_, err = notifications.Create(ctx, NotificationInput{RecipientEmail: "b@x.com", Message: "found it", FinderEmail: "a@x.com"})
	require.NoError(t, err)

	// non-owner cannot delete, nothing is mutated
	require.ErrorIs(t, users.Delete(ctx, "b@x.com", "a@x.com"), ErrForbidden)
	_, err = users.Get(ctx, "a@x.com")
	require.NoError(t, err)

	// missing accounts are 404 before the ownership comparison
	require.ErrorIs(t, users.Delete(ctx, "a@x.com", "nobody@x.com"), ErrNotFound)

	require.NoError(t, users.Delete(ctx, "a@x.com", "a@x.com"))

	_, err = users.Get(ctx, "a@x.com")
	require.ErrorIs(t, err, ErrNotFound)

	remaining, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, survivor.ID, remaining[0].ID)

	// notifications naming a@x.com as recipient or finder are gone
	list, err := notifications.ListForRecipient(ctx, "a@x.com")
	require.NoError(t, err)
	require.Empty(t, list)
	list, err = notifications.ListForRecipient(ctx, "b@x.com")
	require.NoError(t, err)
	require.Empty(t, list)
}

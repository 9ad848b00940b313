package domain

import "context"

// UserNotifier delivers account lifecycle notifications out-of-band.
// Dispatch is fire-and-forget with respect to the triggering mutation: a
// delivery failure is reported to the log, never to the caller, and never
// rolls back the committed change.
type UserNotifier interface {
	// WelcomeWithTemporaryPassword notifies a freshly created user of their
	// temporary credential.
	WelcomeWithTemporaryPassword(ctx context.Context, user *User, temporaryPassword string)
	// DetailsUpdated notifies a user that an administrator changed their
	// account details.
	DetailsUpdated(ctx context.Context, user *User)
	// AccountDeactivated notifies a user that their account was deactivated.
	AccountDeactivated(ctx context.Context, user *User)
}

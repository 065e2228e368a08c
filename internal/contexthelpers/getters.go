package contexthelpers

import (
	"context"
)

// CurrentUserID returns the user id bound to the request's session, or zero
// when the request carries no user.
func CurrentUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(CurrentUserIDContextKey).(int64)
	if !ok {
		return 0
	}

	return userID
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

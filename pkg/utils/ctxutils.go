package utils

import (
	"context"

	"dispatch-dashboard/pkg/contextkeys"
	apperrors "dispatch-dashboard/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetSessionIDFromCtx(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(contextkeys.SessionIDKey).(string)
	if !ok || sessionID == "" {
		return "", apperrors.ErrSessionIDNotFoundInContext
	}
	return sessionID, nil
}

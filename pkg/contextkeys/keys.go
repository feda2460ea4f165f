package contextkeys

type contextKey string

const (
	UserIDKey    contextKey = "UserID"
	SessionIDKey contextKey = "SessionID"
)

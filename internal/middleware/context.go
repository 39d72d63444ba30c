package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const usernameKey contextKey = "username"

func SetUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

func GetUsername(r *http.Request) string {
	v, _ := r.Context().Value(usernameKey).(string)
	return v
}

package prefs

import "context"

// Well-known keys.
const (
	KeyDarkMode = "darkMode"
	KeyToken    = "token"
)

// Repository is a string key/value store. Get returns "" and a nil error for
// a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}

// Package kv defines the persistent key-value primitive the score log and
// player profile are built on. The contract is non-fallible: a failed
// read degrades to the caller's default and a failed write reports false,
// but neither ever surfaces an error. Losing a local leaderboard write
// must not break an in-progress quiz.
package kv

import "context"

// Keys of the persisted namespace. Kept stable for compatibility with
// data written by earlier versions of the app.
const (
	ScoresKey   = "gigiceria-scores"
	PlayerKey   = "gigiceria-player"
	SettingsKey = "gigiceria-settings"
)

// Store is a string-keyed persistent mapping of JSON-encodable values.
//
// Get decodes the stored value into out and reports whether it did; on a
// missing key, corrupt payload, or backend failure it leaves out untouched
// and returns false, so callers initialize out with their fallback default.
// Set and Remove report success; failures are logged by implementations.
type Store interface {
	Get(ctx context.Context, key string, out any) bool
	Set(ctx context.Context, key string, value any) bool
	Remove(ctx context.Context, key string) bool
}

// Package session owns "who is logged in" for the notekeeper client.
//
// A Store keeps the current Session in memory, persists it to durable
// storage (keys "token" and "user"), and keeps every Store that shares the
// storage in sync:
//
//   - Stores in the same process are linked by a LocalBus. Login, Logout and
//     Clear publish on it, and every subscribed Store re-derives its Session
//     from storage before the call returns.
//   - Stores in other processes learn about changes through a remote Signal:
//     FileSignal watches the SQLite file with fsnotify, RedisSignal uses a
//     Redis pub/sub channel.
//
// The Session is never partially updated: it is authenticated exactly when
// both a token and a decodable user are stored.
package session

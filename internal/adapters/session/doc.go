// Package session provides ports.SessionStore implementations for shop
// sessions created by the install handshake.
//
// MemoryStore is the default and loses sessions on restart. RedisStore and
// SQLStore survive restarts and let several replicas share sessions. All of
// them treat an expired session as absent.
package session

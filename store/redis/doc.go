// Package redisstore provides a go-redis backed inbound.ClaimStore so several
// router instances can share idempotency claims.
package redisstore

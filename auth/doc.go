// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the small amount of secret handling the service needs.

# Admin Key

Resetting the tallies requires the configured admin key:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

ErrAdminDisabled is returned when no key is configured, ErrInvalidAdminKey on
mismatch. The comparison runs in constant time.

# ID Generation

Random hex IDs, used for the per-process IP hash salt:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Submissions are logged with a salted client hash instead of the raw address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth

// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifiers and poll admin keys.

# Entity IDs

NewID returns a random UUID string for stored entities:

	pollID := auth.NewID()

# Admin Keys

Poll admin keys are HMAC-SHA256 over the poll ID with a server-side salt,
URL-safe base64 without padding. Deterministic, so they are verified rather
than stored:

	key := auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(pollID, providedKey, cfg.AdminKeySalt)

Editor operations (adding candidates, finalizing) require the key in the
X-Admin-Key header. Validation uses constant-time comparison.
*/
package auth

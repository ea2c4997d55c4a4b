// Package auth defines the user identity contract and the registration
// and credential rules. Identities are keyed by their email address.
package auth

// Package auth implements password login and bearer tokens for zoneinv.
//
// Users live in the "users" database of the document store, one document
// per user keyed "user:<username>". Passwords are bcrypt hashes. Tokens are
// HMAC-signed JWTs carrying the username as subject and an expiry; every
// resolution re-reads the user so deleted accounts stop working at once.
package auth

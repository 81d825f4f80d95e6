// Package auth implements the household login.
//
// Users live in the document store under users/{username} with a
// plaintext password, a display name, and a role. Login compares the
// password byte for byte and records last_login; logout records
// last_logout. There are no tokens or sessions: clients keep the returned
// profile themselves.
//
// On first boot SeedOwner creates users/owner with a random password and
// logs it once.
package auth

// Package store provides the path-keyed JSON document store that holds all
// durable Homegate state.
//
// Paths are slash-separated segments such as "sensors/salon/gas". A value
// written at a path replaces the whole subtree under it; reading a path
// returns either the value written there or an object assembled from the
// values written below it.
//
// # Layout
//
//	sensors/{room}/{kind}               current reading
//	sensor_history/{room}/{kind}/{key}  appended readings
//	commands/{room}/{kind}              current command
//	command_history/{room}/{kind}/{key} appended commands
//	notifications/{key}                 notification records
//	users/{username}                    user records
//
// Push generates time-ordered UUIDv7 keys, and Children returns entries in
// the order they were first written.
//
// Every call is its own transaction. There is no atomicity across calls.
package store

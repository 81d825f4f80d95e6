// Package reading implements the write pipeline shared by sensor readings
// and commands: stamp the record, append it to the history log, then
// overwrite the current slot.
//
// The two store writes are separate calls. If the second fails the history
// already holds the new record while the current slot is stale; callers
// report the error and do not retry.
package reading

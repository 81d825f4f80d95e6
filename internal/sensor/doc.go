// Package sensor implements sensor reads, the validated single-reading
// write, and the bulk update.
//
// A validated write runs through reading.Writer (history append, then
// current overwrite). A high gas reading then escalates: an alert goes out
// through alert.Sender and a gas_alert notification is stored. Escalation
// is best effort and never fails the write.
//
// Bulk updates are a separate contract: items skip validation and only the
// current slot is written. Item failures are reported per item.
package sensor

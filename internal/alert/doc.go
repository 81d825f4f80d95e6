// Package alert fans out operator alerts to subscribers.
//
// A Message names a topic, a human-readable title and body, and a flat
// string map of data. Senders deliver it over a transport:
//
//   - MQTTSender publishes JSON to {alerts prefix}/{topic} at QoS 1
//   - KafkaSender writes JSON to {kafka prefix}{topic}
//   - Nop drops everything (alerts.transport: none)
//
// Callers treat delivery as best effort. A failed send is logged and
// counted by the caller; it never fails the write that triggered it.
package alert

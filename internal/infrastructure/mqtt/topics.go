package mqtt

import (
	"fmt"
	"strings"
)

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "homegate"

// Topics builds Homegate MQTT topics under a prefix.
//
//	topics := mqtt.NewTopics("homegate")
//	topics.Command("salon", "light") // "homegate/command/salon/light"
type Topics struct {
	prefix string
}

// NewTopics creates a topic builder. An empty prefix uses DefaultTopicPrefix.
func NewTopics(prefix string) Topics {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Status returns the retained gateway status topic.
func (t Topics) Status() string {
	return t.prefix + "/status"
}

// Sensor returns the topic a device publishes readings on.
func (t Topics) Sensor(room, kind string) string {
	return fmt.Sprintf("%s/sensor/%s/%s", t.prefix, room, kind)
}

// AllSensors returns the wildcard matching every sensor topic.
func (t Topics) AllSensors() string {
	return t.prefix + "/sensor/+/+"
}

// Command returns the topic commands for a device are published on.
func (t Topics) Command(room, kind string) string {
	return fmt.Sprintf("%s/command/%s/%s", t.prefix, room, kind)
}

// ParseSensor extracts room and kind from a sensor topic.
func (t Topics) ParseSensor(topic string) (room, kind string, ok bool) {
	rest, found := strings.CutPrefix(topic, t.prefix+"/sensor/")
	if !found {
		return "", "", false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Alert returns the topic an alert is fanned out on under alertPrefix.
func Alert(alertPrefix, topic string) string {
	return strings.TrimSuffix(alertPrefix, "/") + "/" + topic
}

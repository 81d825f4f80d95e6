// Package mqtt provides the MQTT client Homegate uses to talk to devices
// and alert subscribers.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Publishing alerts and command fan-out with QoS guarantees
//   - Sensor topic subscriptions, restored after reconnects
//   - Last Will and Testament (LWT) for offline detection
//
// # Topics
//
//	{prefix}/status                   gateway online/offline (retained)
//	{prefix}/sensor/{room}/{kind}     device readings, subscribed by ingest
//	{prefix}/command/{room}/{kind}    commands sent to devices (retained)
//	{alerts prefix}/{topic}           alert fan-out, e.g. homegate/alerts/gas_alert
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topics := mqtt.NewTopics(cfg.MQTT.TopicPrefix)
//	err = client.Subscribe(topics.AllSensors(), 1, handler)
package mqtt

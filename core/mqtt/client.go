package mqtt

// Publisher sends messages to an MQTT broker.
type Publisher interface {
	// Publish delivers payload on topic, retrying according to the client
	// configuration.
	Publish(topic string, payload []byte) error
	Disconnect()
}

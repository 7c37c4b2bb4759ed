package mqtt

// Publisher sends payloads to an MQTT broker.
type Publisher interface {
	// Publish sends payload to topic. Implementations retry transient
	// failures before returning an error.
	Publish(topic string, payload []byte) error
	Disconnect()
}

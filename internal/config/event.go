package config

// EventTopic returns the topic every loyalty event is published on
func (c *Configuration) EventTopic() string {
	return c.Event.Topic
}

package titanevents

const (
	TopicName              = "servicetitan"
	webhookReceivedName    = TopicName + ".webhook.received"
	operationCompletedName = TopicName + ".operation.completed"
)

// WebhookReceived is published for every normalized inbound webhook.
type WebhookReceived struct {
	HookUID   string
	EventType string
	WebhookID string
	Payload   map[string]any
}

func (e WebhookReceived) GetEventTypeName() string {
	return webhookReceivedName
}

func (e WebhookReceived) GetAggregateName() string {
	return e.HookUID
}

// OperationCompleted is published after an API operation has been executed.
type OperationCompleted struct {
	ConnectionUID string
	Resource      string
	Operation     string
	Success       bool
	ItemCount     int
}

func (e OperationCompleted) GetEventTypeName() string {
	return operationCompletedName
}

func (e OperationCompleted) GetAggregateName() string {
	return e.ConnectionUID
}

package notification

import log "github.com/sirupsen/logrus"

// Sink receives user-facing failure messages. Implementations are
// fire-and-forget; the domain never waits for delivery.
type Sink interface {
	ShowError(message string)
}

// LogSink reports user-facing errors through the application log. It is the
// default sink for deployments without a push channel to the frontend.
type LogSink struct{}

func (LogSink) ShowError(message string) {
	log.Error(message)
}

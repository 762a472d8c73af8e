package state

import "github.com/rs/zerolog"

// LogInspector records every store mutation through a structured logger.
// It observes only; production behavior is unchanged whether or not it
// is attached.
type LogInspector struct {
	log zerolog.Logger
}

// NewLogInspector creates an inspector writing to log.
func NewLogInspector(log zerolog.Logger) *LogInspector {
	return &LogInspector{log: log}
}

// OnMutation implements Inspector.
func (li *LogInspector) OnMutation(name string, before, after Snapshot) {
	li.log.Debug().
		Str("mutation", name).
		Int("insights", len(after.Insights)).
		Int("notifications", len(after.Notifications)).
		Bool("loading", after.Loading).
		Str("error", after.Error).
		Msg("store mutation")
}

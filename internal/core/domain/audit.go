package domain

import "time"

// AuditEvent is a structured record of a committed mutation. The engine only
// produces these; storage and retention belong to the audit sink.
type AuditEvent struct {
	ActorID   string            `json:"actor_id" bson:"actor_id"`
	Action    string            `json:"action" bson:"action"`
	TargetID  string            `json:"target_id,omitempty" bson:"target_id,omitempty"`
	Message   string            `json:"message" bson:"message"`
	Context   map[string]string `json:"context,omitempty" bson:"context,omitempty"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
}

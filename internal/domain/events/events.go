package events

import "time"

// Topic names follow "area:action".
const (
	// Content lifecycle, published by the content service after a
	// successful write. Subscribers invalidate caches keyed on these.
	EventPostSaved      = "content:post_saved"
	EventPostDeleted    = "content:post_deleted"
	EventProjectSaved   = "content:project_saved"
	EventProjectDeleted = "content:project_deleted"

	// Security audit trail. Token rejections are worth watching: a
	// burst of malformed or badly signed tokens is probing, not users.
	EventLoginSucceeded = "auth:login_succeeded"
	EventLoginFailed    = "auth:login_failed"
	EventTokenRejected  = "auth:token_rejected"
)

// ContentEventData accompanies the content:* topics.
type ContentEventData struct {
	Kind string `json:"kind"` // "post" or "project"
	ID   int    `json:"id"`
	Slug string `json:"slug,omitempty"`
}

// AuthEventData accompanies the auth:* topics. Reason carries the
// rejection class (expired, bad_signature, malformed, unknown_subject);
// it never carries token contents.
type AuthEventData struct {
	Username string    `json:"username,omitempty"`
	RemoteIP string    `json:"remote_ip,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}

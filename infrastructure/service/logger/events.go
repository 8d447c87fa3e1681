package logger

import (
	"context"
)

// LogAuthEvent records an authentication lifecycle event (login attempt,
// password reset, token verification) in a uniform shape.
func LogAuthEvent(ctx context.Context, l Logger, event, userID, ip string, success bool, fields map[string]interface{}) {
	merged := map[string]interface{}{
		"event_type": "auth",
		"event":      event,
		"success":    success,
	}
	if userID != "" {
		merged["user_id"] = userID
	}
	if ip != "" {
		merged["ip"] = ip
	}
	for k, v := range fields {
		merged[k] = v
	}
	if success {
		l.Info(ctx, event, merged)
		return
	}
	l.Warn(ctx, event, merged)
}

// LogSecurityEvent records an event worth flagging to operators (blocked IP,
// reused reset token, signature failures).
func LogSecurityEvent(ctx context.Context, l Logger, event, severity string, fields map[string]interface{}) {
	merged := map[string]interface{}{
		"event_type": "security",
		"event":      event,
		"severity":   severity,
	}
	for k, v := range fields {
		merged[k] = v
	}
	l.Warn(ctx, event, merged)
}

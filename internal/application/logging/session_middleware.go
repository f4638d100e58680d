package logging

import (
	"context"
	"reflect"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/mediator"
)

// SessionMiddleware tags the context logger with the session a request targets.
// Requests carrying a UserID string field (and optionally a LevelID int field) get
// user_id, level_id and request attached to every entry logged by their handler.
// Failed requests are logged once at WARN.
func SessionMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		userID, levelID, ok := extractSessionKey(request)
		if !ok {
			return next(ctx, request)
		}

		fields := map[string]interface{}{
			"user_id": userID,
			"request": mediator.RequestName(request),
		}
		if levelID != nil {
			fields["level_id"] = *levelID
		}
		logger := &scopedLogger{base: LoggerFromContext(ctx), fields: fields}

		response, err := next(WithLogger(ctx, logger), request)
		if err != nil {
			logger.Log("WARN", "Request failed", map[string]interface{}{"error": err.Error()})
		}
		return response, err
	}
}

// extractSessionKey reads UserID and LevelID fields from a request struct
func extractSessionKey(request mediator.Request) (string, *int, bool) {
	requestValue := reflect.ValueOf(request)
	if requestValue.Kind() == reflect.Ptr {
		if requestValue.IsNil() {
			return "", nil, false
		}
		requestValue = requestValue.Elem()
	}
	if requestValue.Kind() != reflect.Struct {
		return "", nil, false
	}

	userField := requestValue.FieldByName("UserID")
	if !userField.IsValid() || userField.Kind() != reflect.String || userField.String() == "" {
		return "", nil, false
	}

	var levelID *int
	levelField := requestValue.FieldByName("LevelID")
	switch {
	case !levelField.IsValid():
	case levelField.Kind() == reflect.Int:
		v := int(levelField.Int())
		levelID = &v
	case levelField.Kind() == reflect.Ptr && !levelField.IsNil() && levelField.Elem().Kind() == reflect.Int:
		v := int(levelField.Elem().Int())
		levelID = &v
	}
	return userField.String(), levelID, true
}

type scopedLogger struct {
	base   ContainerLogger
	fields map[string]interface{}
}

func (l *scopedLogger) Log(level, message string, metadata map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(metadata))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range metadata {
		merged[k] = v
	}
	l.base.Log(level, message, merged)
}

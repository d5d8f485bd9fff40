package service

import (
	"context"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/sirupsen/logrus"
)

// AuditService records the mutations operators issue through the console.
// The authoritative trail lives on the backend; this is the console-side log line.
type AuditService interface {
	LogCreate(ctx context.Context, actor *entity.Principal, resource string, entityID string)
	LogUpdate(ctx context.Context, actor *entity.Principal, resource string, entityID string)
	LogDelete(ctx context.Context, actor *entity.Principal, resource string, entityID string)
	LogAction(ctx context.Context, actor *entity.Principal, action string, resource string, entityID string, err error)
}

type auditService struct {
	log *logrus.Logger
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{log: log}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, actor *entity.Principal, resource string, entityID string) {
	s.LogAction(ctx, actor, entity.AuditActionCreate, resource, entityID, nil)
}

// LogUpdate logs an update action
func (s *auditService) LogUpdate(ctx context.Context, actor *entity.Principal, resource string, entityID string) {
	s.LogAction(ctx, actor, entity.AuditActionUpdate, resource, entityID, nil)
}

// LogDelete logs a delete action
func (s *auditService) LogDelete(ctx context.Context, actor *entity.Principal, resource string, entityID string) {
	s.LogAction(ctx, actor, entity.AuditActionDelete, resource, entityID, nil)
}

// LogAction logs any action; a non-nil err marks it as failed.
func (s *auditService) LogAction(ctx context.Context, actor *entity.Principal, action string, resource string, entityID string, err error) {
	fields := logrus.Fields{
		"action":    action,
		"resource":  resource,
		"entity_id": entityID,
	}
	if actor != nil {
		fields["user_id"] = actor.ID
		fields["username"] = actor.Username
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		fields["request_id"] = id
	}

	entry := s.log.WithContext(ctx).WithFields(fields)
	if err != nil {
		entry.Warnf("Failed to %s %s: %+v", action, resource, err)
		return
	}
	entry.Info("audit")
}

type requestIDKey struct{}

// RequestIDKey is the context key the request logger stores its request id under.
var RequestIDKey = requestIDKey{}

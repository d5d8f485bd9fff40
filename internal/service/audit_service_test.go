package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_LogDelete(t *testing.T) {
	log, hook := test.NewNullLogger()
	svc := NewAuditService(log)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	svc.LogDelete(ctx, &entity.Principal{ID: "u1", Username: "admin"}, "representatives", "r9")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "delete", entry.Data["action"])
	assert.Equal(t, "r9", entry.Data["entity_id"])
	assert.Equal(t, "admin", entry.Data["username"])
	assert.Equal(t, "req-1", entry.Data["request_id"])
}

func TestAuditService_FailedAction(t *testing.T) {
	log, hook := test.NewNullLogger()
	svc := NewAuditService(log)

	svc.LogAction(context.Background(), nil, entity.AuditActionUpdate, "doctors", "d1", errors.New("conflict"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.NotContains(t, entry.Data, "user_id")
}

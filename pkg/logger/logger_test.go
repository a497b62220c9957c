package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLevels(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	Init("debug", "json")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	_, isJSON := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	Init("bogus", "text")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	_, isText := logrus.StandardLogger().Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestWithContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	entry := WithContext(ctx)
	assert.Equal(t, "req-123", entry.Data["request_id"])

	entry = WithContext(context.Background())
	_, ok := entry.Data["request_id"]
	assert.False(t, ok)
}

func TestScope(t *testing.T) {
	assert.Equal(t, "docstore.memory", Scope("docstore.memory").Data["scope"])
}

package message

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/jeevan/internal/logger"
	"github.com/yanizio/jeevan/internal/registration"
	"github.com/yanizio/jeevan/internal/requestinfo"
	"github.com/yanizio/jeevan/internal/subscription"
)

var fixed = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func TestLogPublisher_Registered(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := LogPublisher{Log: zap.New(core).Sugar(), Now: func() time.Time { return fixed }}

	ctx := requestinfo.WithInfo(context.Background(), requestinfo.Info{
		Browser: "Firefox", Device: "Mobile", Country: "IN",
	})
	err := p.Registered(ctx, registration.Registration{
		Name:       "Asha",
		Gender:     registration.GenderFemale,
		BloodGroup: registration.ONeg,
		Location:   "Pune",
		Role:       registration.RoleDonor,
		Phone:      "9876543210",
		Email:      "asha@example.com",
	})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "registration", fields["event"])
	assert.Equal(t, "******3210", fields["phone"])
	assert.Equal(t, "a***@example.com", fields["email"])
	assert.Equal(t, "IN", fields["country"])
	assert.NotContains(t, fields, "name")
	at, _ := fields["at"].(time.Time)
	assert.True(t, at.Equal(fixed))
}

func TestLogPublisher_SubscribedUsesContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core).Sugar())

	require.NoError(t, LogPublisher{}.Subscribed(ctx, subscription.Subscription{Email: "x@y.io"}))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "subscription", fields["event"])
	assert.Equal(t, "x@y.io", fields["email"], "single-char local part is left alone")
	assert.NotContains(t, fields, "country")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "123", maskPhone("123"))
	assert.Equal(t, "**3456", maskPhone("123456"))
	assert.Equal(t, "no-at-sign", maskEmail("no-at-sign"))
}

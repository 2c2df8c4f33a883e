// internal/message/message.go
//
// Jeevan – Outbound messaging.
//
// Context
//   Accepted registrations and newsletter sign-ups are handed to a Publisher.
//   Storage and delivery are not part of this service yet, so the only
//   Publisher shipped is LogPublisher, which writes one structured record
//   per event.  Downstream tooling tails the log file.
//
//   Swap in a queue-backed Publisher (Redis, NATS, SQS) by implementing the
//   interface; handlers never see the concrete type.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package message

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/jeevan/internal/logger"
	"github.com/yanizio/jeevan/internal/registration"
	"github.com/yanizio/jeevan/internal/requestinfo"
	"github.com/yanizio/jeevan/internal/subscription"
)

// Publisher receives accepted submissions.
type Publisher interface {
	Registered(ctx context.Context, reg registration.Registration) error
	Subscribed(ctx context.Context, sub subscription.Subscription) error
}

// LogPublisher writes events to zap.  A nil Log falls back to the request
// logger carried on ctx.
type LogPublisher struct {
	Log *zap.SugaredLogger
	Now func() time.Time
}

func (p LogPublisher) logger(ctx context.Context) *zap.SugaredLogger {
	if p.Log != nil {
		return p.Log
	}
	return logger.FromContext(ctx)
}

func (p LogPublisher) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Registered logs a donor or acceptor registration.  Phone and email are
// masked.
func (p LogPublisher) Registered(ctx context.Context, reg registration.Registration) error {
	kv := []any{
		"event", "registration",
		"role", reg.Role,
		"blood_group", reg.BloodGroup,
		"gender", reg.Gender,
		"location", reg.Location,
		"phone", maskPhone(reg.Phone),
		"email", maskEmail(reg.Email),
		"at", p.now().UTC(),
	}
	p.logger(ctx).Infow("submission accepted", append(kv, origin(ctx)...)...)
	return nil
}

// Subscribed logs a newsletter sign-up.
func (p LogPublisher) Subscribed(ctx context.Context, sub subscription.Subscription) error {
	kv := []any{
		"event", "subscription",
		"email", maskEmail(sub.Email),
		"at", p.now().UTC(),
	}
	p.logger(ctx).Infow("submission accepted", append(kv, origin(ctx)...)...)
	return nil
}

// origin adds browser and country hints when the request was enriched.
func origin(ctx context.Context) []any {
	info, ok := requestinfo.FromContext(ctx)
	if !ok {
		return nil
	}
	return []any{
		"device", info.Device,
		"browser", info.Browser,
		"country", info.Country,
	}
}

// maskPhone keeps the last four digits.
func maskPhone(p string) string {
	if len(p) <= 4 {
		return p
	}
	masked := make([]byte, len(p))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(p)-4:], p[len(p)-4:])
	return string(masked)
}

// maskEmail keeps the first local-part character and the domain.
func maskEmail(e string) string {
	for i := 0; i < len(e); i++ {
		if e[i] == '@' {
			if i <= 1 {
				return e
			}
			return e[:1] + "***" + e[i:]
		}
	}
	return e
}

// components/donation/donation.go
//
// Jeevan donation component – registration and newsletter forms.
//
// Context
//   Both forms exist twice: a browser flavour posting url-encoded bodies
//   with a CSRF token, and a JSON flavour for API clients.  Either way the
//   raw strings go through the domain validator, and the first failing
//   field decides the answer.  Accepted submissions are handed to the
//   message Publisher; nothing is persisted here.
//
//   Two lookup endpoints back the page's on-blur checks: email validity
//   and phone normalisation.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package donation

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yanizio/jeevan/internal/component"
	"github.com/yanizio/jeevan/internal/form"
	"github.com/yanizio/jeevan/internal/logger"
	"github.com/yanizio/jeevan/internal/metrics"
	"github.com/yanizio/jeevan/internal/notify"
	"github.com/yanizio/jeevan/internal/registration"
	"github.com/yanizio/jeevan/internal/session"
	"github.com/yanizio/jeevan/internal/subscription"
	"github.com/yanizio/jeevan/internal/validate"
	"github.com/yanizio/jeevan/internal/view"
)

// User-facing outcomes.
const (
	MsgRegistered = "Thank you for registering! We will contact you soon."
	MsgSubscribed = "Successfully subscribed to newsletter!"
	MsgFailed     = "Something went wrong.  Please try again."
)

// Form labels used in metrics and spans.
const (
	formRegistration = "registration"
	formSubscription = "subscription"
)

var tracer = otel.Tracer("github.com/yanizio/jeevan/components/donation")

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component handles the donation and newsletter forms.
type Component struct {
	deps *component.Deps
}

// New returns the donation component.
func New(d *component.Deps) *Component { return &Component{deps: d} }

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "donation" }

// Routes adds the page and API endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Post("/donate", c.donateHTML)
	r.Post("/subscribe", c.subscribeHTML)
	r.Post("/api/registrations", c.donateJSON)
	r.Post("/api/subscriptions", c.subscribeJSON)
	r.Get("/api/validate/email", c.checkEmail)
	r.Get("/api/validate/phone", c.checkPhone)
}

/*──────────────────────────── Registration ─────────────────────────────────*/

func (c *Component) donateHTML(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "donation.register",
		trace.WithAttributes(attribute.String("transport", "form")))
	defer span.End()
	r = r.WithContext(ctx)

	raw, err := form.HandleSubmit(w, r, c.deps.Tokens, registration.Fields...)
	if err != nil {
		c.badForm(w, r, span, formRegistration, err)
		return
	}

	_, err = c.register(ctx, span, raw)
	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe):
		c.deps.Alerts.Show(session.VisitorID(ctx), notify.Error, fe.Message)
		c.deps.RenderHome(w, r, http.StatusUnprocessableEntity, component.HomeState{
			Donate: view.FormState{Values: raw, Error: fe},
		})
	case err != nil:
		c.deps.Flash(w, r, notify.Error, MsgFailed, "/#donate")
	default:
		c.deps.Flash(w, r, notify.Success, MsgRegistered, "/#donate")
	}
}

type registrationResponse struct {
	Message      string                    `json:"message"`
	Registration registration.Registration `json:"registration"`
}

func (c *Component) donateJSON(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "donation.register",
		trace.WithAttributes(attribute.String("transport", "json")))
	defer span.End()

	raw, err := form.DecodeJSON(w, r.WithContext(ctx))
	if err != nil {
		malformed(ctx, span, formRegistration, err)
		component.WriteMalformed(w, "Request body must be a JSON object of strings.")
		return
	}

	reg, err := c.register(ctx, span, raw)
	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe):
		component.WriteFieldError(w, fe)
	case err != nil:
		component.WriteJSON(w, http.StatusInternalServerError, component.ErrorBody{Error: "internal", Message: MsgFailed})
	default:
		component.WriteJSON(w, http.StatusCreated, registrationResponse{Message: MsgRegistered, Registration: reg})
	}
}

// register validates raw and publishes the result.  Validation failures
// come back as *validate.FieldError; anything else is a system error.
func (c *Component) register(ctx context.Context, span trace.Span, raw map[string]string) (registration.Registration, error) {
	reg, err := registration.Validate(raw)
	if err != nil {
		rejected(ctx, span, formRegistration, err)
		return registration.Registration{}, err
	}
	if err := c.deps.Publisher.Registered(ctx, reg); err != nil {
		failed(ctx, span, formRegistration, err)
		return registration.Registration{}, err
	}
	accepted(span, formRegistration)
	return reg, nil
}

/*──────────────────────────── Newsletter ───────────────────────────────────*/

func (c *Component) subscribeHTML(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "donation.subscribe",
		trace.WithAttributes(attribute.String("transport", "form")))
	defer span.End()
	r = r.WithContext(ctx)

	raw, err := form.HandleSubmit(w, r, c.deps.Tokens, subscription.FieldEmail)
	if err != nil {
		c.badForm(w, r, span, formSubscription, err)
		return
	}

	_, err = c.subscribe(ctx, span, raw[subscription.FieldEmail])
	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe):
		c.deps.Alerts.Show(session.VisitorID(ctx), notify.Error, fe.Message)
		c.deps.RenderHome(w, r, http.StatusUnprocessableEntity, component.HomeState{
			Subscribe: view.FormState{Values: raw, Error: fe},
		})
	case err != nil:
		c.deps.Flash(w, r, notify.Error, MsgFailed, "/#newsletter")
	default:
		c.deps.Flash(w, r, notify.Success, MsgSubscribed, "/#newsletter")
	}
}

func (c *Component) subscribeJSON(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "donation.subscribe",
		trace.WithAttributes(attribute.String("transport", "json")))
	defer span.End()

	raw, err := form.DecodeJSON(w, r.WithContext(ctx))
	if err != nil {
		malformed(ctx, span, formSubscription, err)
		component.WriteMalformed(w, "Request body must be a JSON object of strings.")
		return
	}

	sub, err := c.subscribe(ctx, span, raw[subscription.FieldEmail])
	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe):
		component.WriteFieldError(w, fe)
	case err != nil:
		component.WriteJSON(w, http.StatusInternalServerError, component.ErrorBody{Error: "internal", Message: MsgFailed})
	default:
		component.WriteJSON(w, http.StatusCreated, map[string]any{"message": MsgSubscribed, "subscription": sub})
	}
}

func (c *Component) subscribe(ctx context.Context, span trace.Span, email string) (subscription.Subscription, error) {
	sub, err := subscription.Validate(email)
	if err != nil {
		rejected(ctx, span, formSubscription, err)
		return subscription.Subscription{}, err
	}
	if err := c.deps.Publisher.Subscribed(ctx, sub); err != nil {
		failed(ctx, span, formSubscription, err)
		return subscription.Subscription{}, err
	}
	accepted(span, formSubscription)
	return sub, nil
}

/*──────────────────────────── Field checks ─────────────────────────────────*/

type emailCheck struct {
	Valid bool `json:"valid"`
	Empty bool `json:"empty"`
}

// checkEmail backs the on-blur hint.  A blank field is not flagged; the
// required check happens on submit.
func (c *Component) checkEmail(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("value")
	component.WriteJSON(w, http.StatusOK, emailCheck{Valid: v == "" || validate.Email(v), Empty: v == ""})
}

type phoneCheck struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// checkPhone returns the input as the phone control would show it, and
// whether that value would pass.
func (c *Component) checkPhone(w http.ResponseWriter, r *http.Request) {
	v := validate.NormalizePhoneInput(r.URL.Query().Get("value"))
	component.WriteJSON(w, http.StatusOK, phoneCheck{Value: v, Valid: validate.Phone(v)})
}

/*──────────────────────────── outcome helpers ──────────────────────────────*/

// badForm answers a browser post whose body or token did not check out.
func (c *Component) badForm(w http.ResponseWriter, r *http.Request, span trace.Span, formName string, err error) {
	malformed(r.Context(), span, formName, err)
	if errors.Is(err, form.ErrBadToken) {
		c.deps.Flash(w, r, notify.Error, component.SessionExpired, "/")
		return
	}
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}

func accepted(span trace.Span, formName string) {
	metrics.FormSubmissionsTotal.WithLabelValues(formName, metrics.OutcomeAccepted).Inc()
	span.SetAttributes(attribute.String("outcome", metrics.OutcomeAccepted))
}

func rejected(ctx context.Context, span trace.Span, formName string, err error) {
	fe, ok := validate.AsFieldError(err)
	if !ok {
		return
	}
	metrics.FormSubmissionsTotal.WithLabelValues(formName, metrics.OutcomeRejected).Inc()
	metrics.FormRejectionsTotal.WithLabelValues(formName, fe.Field).Inc()
	span.SetAttributes(
		attribute.String("outcome", metrics.OutcomeRejected),
		attribute.String("field", fe.Field),
		attribute.String("reason", fe.Reason()),
	)
	logger.FromContext(ctx).Infow("submission rejected",
		"form", formName, "field", fe.Field, "kind", fe.Kind.Code())
}

func malformed(ctx context.Context, span trace.Span, formName string, err error) {
	metrics.FormSubmissionsTotal.WithLabelValues(formName, metrics.OutcomeMalformed).Inc()
	span.SetAttributes(attribute.String("outcome", metrics.OutcomeMalformed))
	logger.FromContext(ctx).Infow("submission malformed", "form", formName, "err", err)
}

func failed(ctx context.Context, span trace.Span, formName string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "publish failed")
	logger.FromContext(ctx).Errorw("publish submission", "form", formName, "err", err)
}

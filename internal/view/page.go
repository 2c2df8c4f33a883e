package view

import (
	"time"

	"github.com/yanizio/jeevan/internal/head"
	"github.com/yanizio/jeevan/internal/notify"
	"github.com/yanizio/jeevan/internal/registration"
	"github.com/yanizio/jeevan/internal/requestinfo"
	"github.com/yanizio/jeevan/internal/site"
	"github.com/yanizio/jeevan/internal/stats"
	"github.com/yanizio/jeevan/internal/validate"
)

// FormState is what a form re-renders with after a rejected post.
type FormState struct {
	Values map[string]string
	Error  *validate.FieldError
}

// Value returns the posted value for field, or "".
func (f FormState) Value(field string) string { return f.Values[field] }

// Home is the data for home.html.
type Home struct {
	Head      *head.Builder
	Site      *site.Content
	Panels    []site.Panel
	Stats     []stats.Animated
	Alert     *notify.Alert
	AlertTTL  time.Duration
	CSRF      string
	Donate    FormState
	Subscribe FormState
	Visitor   requestinfo.Info

	FrameInterval time.Duration
}

// Genders and friends feed the select controls.
func (Home) Genders() []registration.Gender         { return registration.Genders }
func (Home) BloodGroups() []registration.BloodGroup { return registration.BloodGroups }
func (Home) Roles() []registration.Role             { return registration.Roles }

package templates

import (
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithRoles(roles []string) Option { return func(d *EmailData) { d.Roles = roles } }
func WithActive(active bool) Option   { return func(d *EmailData) { d.Active = active } }
func WithActor(actor string) Option   { return func(d *EmailData) { d.Actor = actor } }

// Branding carries the company fields shared by every e-mail.
type Branding struct {
	CompanyName string
	AppName     string
	SupportURL  string
}

// NewEmailData fills the common fields, then applies opts.
func NewEmailData(b Branding, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,

		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		SupportURL:  b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

package smtp

import (
	"context"
	"fmt"

	"github.com/scholar-notify/internal/domain"
	"github.com/scholar-notify/internal/pkg/templatedata"
)

// Renderer produces an HTML body from a template id and variables.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

type htmlSender interface {
	SendHTML(ctx context.Context, to, toName, subject, body string) error
}

// TemplateMailer renders an email's template and delivers the result.
type TemplateMailer struct {
	renderer Renderer
	mailer   htmlSender
	appName  string
}

func NewTemplateMailer(renderer Renderer, mailer *Mailer, appName string) *TemplateMailer {
	return &TemplateMailer{renderer: renderer, mailer: mailer, appName: appName}
}

// Send renders e.Template and mails it. Rendering and transport failures both
// wrap domain.ErrDelivery.
func (t *TemplateMailer) Send(ctx context.Context, e domain.Email) error {
	body, err := t.renderer.Render(e.Template, t.variables(e))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}
	if err := t.mailer.SendHTML(ctx, e.To, e.ToName, e.Subject, body); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}
	return nil
}

// variables normalises the template data onto its canonical keys and adds the
// recipient and app name. Keys already present in the data are kept.
func (t *TemplateMailer) variables(e domain.Email) map[string]any {
	vars := templatedata.Normalize(e.Data)
	for k, v := range map[string]any{
		"recipientName":  e.ToName,
		"recipientEmail": e.To,
		"appName":        t.appName,
	} {
		if _, ok := vars[k]; !ok {
			vars[k] = v
		}
	}
	return vars
}

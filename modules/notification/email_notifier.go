package notification

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"go-admin-panel/common"
	"go-admin-panel/domain"
	"go-admin-panel/pkg/email"
	"go-admin-panel/pkg/log"
	"go-admin-panel/pkg/utils"
)

//go:embed templates/*.html
var templates embed.FS

const sendTimeout = 30 * time.Second

// Config carries the values rendered into every notification.
type Config struct {
	AppName   string
	PanelURL  string
	FromEmail string
}

// EmailNotifier renders the account lifecycle emails and sends them through
// the configured email client. Delivery is fire-and-forget: failures are
// logged against the masked recipient and never surface to the caller.
type EmailNotifier struct {
	client email.Client
	logger log.Logger
	cfg    Config
	tmpl   *template.Template
}

var _ domain.UserNotifier = (*EmailNotifier)(nil)

func NewEmailNotifier(client email.Client, logger log.Logger, cfg Config) (*EmailNotifier, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse notification templates: %w", err)
	}
	return &EmailNotifier{
		client: client,
		logger: logger,
		cfg:    cfg,
		tmpl:   tmpl,
	}, nil
}

type templateData struct {
	AppName           string
	PanelURL          string
	Name              string
	Email             string
	TemporaryPassword string
}

func (n *EmailNotifier) WelcomeWithTemporaryPassword(ctx context.Context, user *domain.User, temporaryPassword string) {
	n.dispatch(user, "welcome.html", fmt.Sprintf("Welcome to %s", n.cfg.AppName), templateData{
		AppName:           n.cfg.AppName,
		PanelURL:          common.JoinURLPath(n.cfg.PanelURL, "login"),
		Name:              user.Name,
		Email:             user.Email,
		TemporaryPassword: temporaryPassword,
	})
}

func (n *EmailNotifier) DetailsUpdated(ctx context.Context, user *domain.User) {
	n.dispatch(user, "details_updated.html", "Your account details were updated", templateData{
		AppName: n.cfg.AppName,
		Name:    user.Name,
		Email:   user.Email,
	})
}

func (n *EmailNotifier) AccountDeactivated(ctx context.Context, user *domain.User) {
	n.dispatch(user, "account_deactivated.html", "Your account was deactivated", templateData{
		AppName: n.cfg.AppName,
		Name:    user.Name,
		Email:   user.Email,
	})
}

// dispatch sends asynchronously on a detached context so the triggering
// request (and its transaction) never waits on the mail provider.
func (n *EmailNotifier) dispatch(user *domain.User, templateName, subject string, data templateData) {
	var body bytes.Buffer
	if err := n.tmpl.ExecuteTemplate(&body, templateName, data); err != nil {
		n.logger.Error("failed to render notification email",
			log.String("template", templateName),
			log.String("recipient", utils.MaskEmail(user.Email)),
			log.Error(err),
		)
		return
	}

	message := &email.Message{
		From:    n.cfg.FromEmail,
		To:      []string{user.Email},
		Subject: subject,
		HTML:    body.String(),
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := n.client.Send(sendCtx, message); err != nil {
			n.logger.Error("failed to send notification email",
				log.String("template", templateName),
				log.String("recipient", utils.MaskEmail(user.Email)),
				log.Error(err),
			)
		}
	}()
}

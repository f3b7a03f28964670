// Package email composes the localized confirmation email sent to a
// declarant once their ticket exists. Composition is pure: the logo asset
// is resolved once at process start and passed in, and rendering the same
// inputs twice yields byte-identical HTML.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/exp/slices"
)

type Language string

const (
	LangFrench  Language = "fr"
	LangEnglish Language = "en"
)

// DefaultFrancophoneAlpha3 is the builtin set of country codes that get
// the French template. Operators can replace it wholesale via
// FRANCOPHONE_ALPHA3.
var DefaultFrancophoneAlpha3 = []string{"FRA", "BEL", "CHE", "LUX", "MCO", "CAN"}

type stringTable struct {
	HTMLLang             string
	Title                string
	HeaderSubtitle       string
	Hello                string
	ReceiptIntro         string
	ReceiptTicket        string
	BtnTicket            string
	Reply1               string
	Reply2               string
	AccountTitle         string
	AccountIntro         string
	AccountResetPrefix   string
	ResetLabel           string
	AccountResetFallback string
	Footer               string
	FooterTermsLabel     string
	SubjectPrefix        string
	SubjectBase          string
}

var stringTables = map[Language]stringTable{
	LangFrench: {
		HTMLLang:             "fr",
		Title:                "Confirmation de réception",
		HeaderSubtitle:       "Confirmation de réception",
		Hello:                "Bonjour",
		ReceiptIntro:         "Nous confirmons la bonne réception de votre déclaration pour la base GNSS",
		ReceiptTicket:        "Votre demande a été enregistrée sous le ticket",
		BtnTicket:            "Accéder au ticket",
		Reply1:               "Si vous avez des questions, vous pouvez répondre directement à cet email.",
		Reply2:               "Toutefois, pour un meilleur suivi, nous vous recommandons de passer par le ticket (lien ci-dessous).",
		AccountTitle:         "Accès à votre compte",
		AccountIntro:         "Si c’est votre première déclaration de base GNSS, un compte a été créé automatiquement avec l’adresse",
		AccountResetPrefix:   "Pour définir votre mot de passe, utilisez",
		ResetLabel:           "Mot de passe oublié",
		AccountResetFallback: "Pour définir votre mot de passe, utilisez la fonction “Mot de passe oublié” sur la page de connexion.",
		Footer:               "Message automatique — merci de ne pas partager d’informations sensibles par email.",
		FooterTermsLabel:     "Centipede-RTK — Conditions générales",
		SubjectPrefix:        "Confirmation de réception",
		SubjectBase:          "Base GNSS",
	},
	LangEnglish: {
		HTMLLang:             "en",
		Title:                "Submission received",
		HeaderSubtitle:       "Submission received",
		Hello:                "Hello",
		ReceiptIntro:         "We confirm receipt of your GNSS base declaration",
		ReceiptTicket:        "Your request has been recorded under ticket",
		BtnTicket:            "View ticket",
		Reply1:               "If you have any questions, you can reply directly to this email.",
		Reply2:               "However, for better tracking, we recommend using the ticket link below.",
		AccountTitle:         "Access to your account",
		AccountIntro:         "If this is your first GNSS base declaration, an account has been created automatically with the email address",
		AccountResetPrefix:   "To set your password, use",
		ResetLabel:           "Forgot password",
		AccountResetFallback: "To set your password, use the “Forgot password” link on the login page.",
		Footer:               "Automated message — please do not share sensitive information by email.",
		FooterTermsLabel:     "Centipede-RTK — Terms & Conditions",
		SubjectPrefix:        "Submission received",
		SubjectBase:          "GNSS base",
	},
}

func stringsFor(lang Language) stringTable {
	if s, ok := stringTables[lang]; ok {
		return s
	}
	return stringTables[LangEnglish]
}

// Composer renders confirmation subjects and bodies. All of its state is
// resolved at construction.
type Composer struct {
	helpdeskName string
	termsURL     string
	logoSrc      template.URL
	francophone  []string
}

func NewComposer(helpdeskName, termsURL, logoSrc string, francophoneAlpha3 []string) *Composer {
	francophone := francophoneAlpha3
	if len(francophone) == 0 {
		francophone = DefaultFrancophoneAlpha3
	}

	normalized := make([]string, 0, len(francophone))
	for _, code := range francophone {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			normalized = append(normalized, code)
		}
	}

	return &Composer{
		helpdeskName: helpdeskName,
		termsURL:     termsURL,
		logoSrc:      template.URL(logoSrc),
		francophone:  normalized,
	}
}

// PickLanguage maps a country code onto the template language. Empty or
// unrecognized input always yields English.
func (c *Composer) PickLanguage(countryAlpha3 string) Language {
	a3 := strings.ToUpper(strings.TrimSpace(countryAlpha3))
	if a3 == "" {
		return LangEnglish
	}
	if slices.Contains(c.francophone, a3) {
		return LangFrench
	}
	return LangEnglish
}

// Subject builds the confirmation subject line. The mount point clause is
// included only when the code is present.
func (c *Composer) Subject(lang Language, ticketNumber, mountPoint string) string {
	s := stringsFor(lang)

	subject := s.SubjectPrefix
	if mp := strings.TrimSpace(mountPoint); mp != "" {
		subject += " — " + s.SubjectBase + " " + mp
	}

	return fmt.Sprintf("%s — Ticket #%s", subject, ticketNumber)
}

type BodyParams struct {
	ContactName      string
	CustomerEmail    string
	TicketNumber     string
	MountPoint       string
	TicketURL        string
	PasswordResetURL string
}

type bodyData struct {
	S            stringTable
	HelpdeskName string
	LogoSrc      template.URL
	TermsURL     string
	BodyParams
}

// Body renders the self-contained HTML email. Every declarant-supplied
// value goes through html/template's contextual escaping.
func (c *Composer) Body(lang Language, p BodyParams) (string, error) {
	p.MountPoint = strings.TrimSpace(p.MountPoint)

	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, bodyData{
		S:            stringsFor(lang),
		HelpdeskName: c.helpdeskName,
		LogoSrc:      c.logoSrc,
		TermsURL:     c.termsURL,
		BodyParams:   p,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return buf.String(), nil
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html lang="{{.S.HTMLLang}}">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width,initial-scale=1">
    <title>{{.S.Title}}</title>
  </head>
  <body style="margin:0;padding:0;background:#f6f7fb;font-family:Arial,Helvetica,sans-serif;">
    <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background:#f6f7fb;">
      <tr>
        <td align="center" style="padding:26px 12px;">
          <table role="presentation" width="640" cellspacing="0" cellpadding="0" style="max-width:640px;background:#ffffff;border:1px solid #e5e7eb;border-radius:14px;overflow:hidden;">
            <tr>
              <td style="padding:18px 22px;border-bottom:1px solid #e5e7eb;">
                <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                  <tr>
                    <td valign="middle" style="width:74px;padding-right:12px;">
                      {{if .LogoSrc}}<img src="{{.LogoSrc}}" alt="{{.HelpdeskName}}" height="64" style="display:block;height:64px;width:auto;max-width:260px;">{{end}}
                    </td>
                    <td valign="middle">
                      <div style="font-size:18px;font-weight:800;color:#111827;line-height:22px;">{{.HelpdeskName}}</div>
                      <div style="font-size:13px;color:#6b7280;margin-top:4px;line-height:18px;">{{.S.HeaderSubtitle}}</div>
                    </td>
                  </tr>
                </table>
              </td>
            </tr>

            <tr>
              <td style="padding:22px 22px;color:#111827;font-size:16px;line-height:24px;">
                <p style="margin:0 0 14px 0;">{{.S.Hello}}{{with .ContactName}} {{.}}{{end}},</p>

                <p style="margin:0 0 14px 0;">
                  {{.S.ReceiptIntro}}{{with .MountPoint}} <strong>{{.}}</strong>{{end}}.<br>
                  {{.S.ReceiptTicket}} <strong>#{{.TicketNumber}}</strong>.
                </p>

                <div style="height:10px;line-height:10px;font-size:10px;">&nbsp;</div>

                <p style="margin:0 0 14px 0;">
                  {{.S.Reply1}}<br>
                  {{.S.Reply2}}
                </p>

                {{if .TicketURL}}<table role="presentation" cellspacing="0" cellpadding="0" style="margin:18px 0 18px 0;">
                  <tr>
                    <td>
                      <a href="{{.TicketURL}}" style="display:inline-block;padding:12px 16px;border-radius:10px;text-decoration:none;font-weight:700;font-size:14px;background:#111827;color:#ffffff;">{{.S.BtnTicket}} #{{.TicketNumber}}</a>
                    </td>
                  </tr>
                </table>{{end}}

                <hr style="border:none;border-top:1px solid #e5e7eb;margin:18px 0;">

                <p style="margin:0 0 8px 0;font-weight:800;font-size:15px;line-height:20px;">{{.S.AccountTitle}}</p>
                <p style="margin:0;font-size:15px;line-height:22px;">
                  {{.S.AccountIntro}} <strong>{{.CustomerEmail}}</strong>.<br>
                  {{if .PasswordResetURL}}{{.S.AccountResetPrefix}} <a href="{{.PasswordResetURL}}" style="color:#2563eb;text-decoration:underline;">{{.S.ResetLabel}}</a>.{{else}}{{.S.AccountResetFallback}}{{end}}
                </p>
              </td>
            </tr>

            <tr>
              <td style="padding:14px 22px;border-top:1px solid #e5e7eb;font-size:12px;line-height:18px;color:#6b7280;">
                {{.S.Footer}}<br>
                <a href="{{.TermsURL}}" style="color:#6b7280;text-decoration:underline;">{{.S.FooterTermsLabel}}</a>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>`))

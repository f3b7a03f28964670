package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/CentipedeRTK/ticket-management-zammad/email"
	"github.com/CentipedeRTK/ticket-management-zammad/models"
	"github.com/CentipedeRTK/ticket-management-zammad/server/common"
)

const (
	missingTokenMessage       = "ZAMMAD_TOKEN is not configured on the server."
	mapConfirmationMessage    = "Map confirmation is required."
	mountPointTakenMessage    = "Mount point already in use. Please choose another one."
	mountPointRetryMessage    = "Unable to check whether the mount point is already in use. Please try again later."
	malformedFormMessage      = "Malformed form data."
	attachmentsArticleSubject = "Attachments (form)"
	attachmentsArticleBody    = "See attached files."
)

// HandleSubmit runs the declaration pipeline: acknowledgement gate,
// validation, uniqueness gate, ticket creation, attachment note, then the
// confirmation email. Validation and uniqueness run before any mutating
// call; once the ticket exists, only the email step is soft.
func (a *Api) HandleSubmit() echo.HandlerFunc {
	type output struct {
		Ok          bool               `json:"ok"`
		TicketID    int                `json:"ticket_id"`
		Number      string             `json:"number"`
		EmailStatus models.EmailStatus `json:"email_status"`
	}
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if a.cfg.ZammadToken == "" {
			return jsonDetailError(c, common.NewStatusError(http.StatusInternalServerError, missingTokenMessage))
		}

		sub, err := bindSubmission(c)
		if err != nil {
			return jsonDetailError(c, err)
		}

		if !sub.MapConfirmed() {
			return jsonDetailError(c, common.NewStatusError(http.StatusUnprocessableEntity, mapConfirmationMessage))
		}

		if verr := validateSubmission(sub); verr != nil {
			return jsonDetailError(c, verr)
		}

		taken, _, err := a.isMountPointTaken(ctx, sub.MountPoint)
		if err != nil {
			// Hard gate: a declarant may not proceed past an
			// unverifiable uniqueness check.
			return jsonDetailError(c, common.NewStatusError(statusOf(err, http.StatusServiceUnavailable), mountPointRetryMessage))
		}
		if taken {
			return jsonDetailError(c, common.NewStatusError(http.StatusUnprocessableEntity, mountPointTakenMessage))
		}

		ticket, err := a.ticketing.CreateTicket(ctx, buildTicketRequest(a.cfg.ZammadGroup, sub))
		if err != nil {
			// Downstream status and message pass through untouched.
			return jsonDetailError(c, err)
		}

		if len(sub.Attachments) > 0 {
			err := a.ticketing.CreateNoteArticle(ctx, common.NoteArticle{
				TicketID:    ticket.ID,
				Subject:     attachmentsArticleSubject,
				Body:        attachmentsArticleBody,
				Attachments: sub.Attachments,
			})
			if err != nil {
				return jsonDetailError(c, err)
			}
		}

		emailStatus := models.EmailSkipped
		if a.cfg.ConfirmEmail {
			emailStatus = a.sendConfirmationEmail(ctx, ticket, sub)
		}

		return c.JSON(http.StatusOK, output{
			Ok:          true,
			TicketID:    ticket.ID,
			Number:      ticket.Number,
			EmailStatus: emailStatus,
		})
	}
}

// sendConfirmationEmail classifies the outcome instead of failing the
// request: the ticket already exists and there is nothing to roll back.
func (a *Api) sendConfirmationEmail(ctx context.Context, ticket models.Ticket, sub models.Submission) models.EmailStatus {
	lang := a.composer.PickLanguage(sub.CountryAlpha3)
	subject := a.composer.Subject(lang, ticket.Number, sub.MountPoint)

	publicURL := strings.TrimRight(a.cfg.ZammadPublicURL, "/")
	var ticketURL string
	if publicURL != "" {
		ticketURL = fmt.Sprintf("%s/#ticket/zoom/%d", publicURL, ticket.ID)
	}

	// Never fall back to an internal link for the reset flow.
	resetURL := strings.TrimRight(a.cfg.ZammadPasswordResetURL, "/")
	if resetURL == "" && publicURL != "" {
		resetURL = publicURL + "/#password_reset"
	}

	body, err := a.composer.Body(lang, email.BodyParams{
		ContactName:      sub.ContactName,
		CustomerEmail:    sub.Email,
		TicketNumber:     ticket.Number,
		MountPoint:       sub.MountPoint,
		TicketURL:        ticketURL,
		PasswordResetURL: resetURL,
	})
	if err != nil {
		log.Error().Err(err).Int("ticket_id", ticket.ID).Msg("failed to compose confirmation email")
		return models.EmailFailed
	}

	err = a.ticketing.CreateEmailArticle(ctx, common.EmailArticle{
		TicketID: ticket.ID,
		To:       sub.Email,
		Subject:  subject,
		Body:     body,
	})
	if err == nil {
		return models.EmailSent
	}

	var serr *common.StatusError
	if errors.As(err, &serr) {
		log.Error().Int("ticket_id", ticket.ID).Int("status", serr.Status).Str("body", serr.Message).Msg("confirmation email rejected by helpdesk")
		return models.EmailFailed
	}

	// No response at all. The helpdesk may still deliver the mail after
	// our timeout, so report pending for manual follow-up.
	log.Warn().Err(err).Int("ticket_id", ticket.ID).Msg("confirmation email outcome unknown")
	return models.EmailPending
}

func bindSubmission(c echo.Context) (models.Submission, error) {
	params, err := c.FormParams()
	if err != nil {
		return models.Submission{}, common.NewStatusError(http.StatusBadRequest, malformedFormMessage)
	}

	sub := models.SubmissionFromForm(params)

	form, err := c.MultipartForm()
	if err != nil {
		// Plain urlencoded submissions carry no files.
		return sub, nil
	}

	for _, files := range form.File {
		for _, fh := range files {
			attachment, err := readAttachment(fh)
			if err != nil {
				return models.Submission{}, common.NewStatusError(http.StatusBadRequest, malformedFormMessage)
			}
			sub.Attachments = append(sub.Attachments, attachment)
		}
	}

	return sub, nil
}

func readAttachment(fh *multipart.FileHeader) (models.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return models.Attachment{}, err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.Attachment{}, err
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = mimetype.Detect(data).String()
	}

	return models.Attachment{
		Filename: fh.Filename,
		MimeType: mime,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

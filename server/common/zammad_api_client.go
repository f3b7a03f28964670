package common

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/CentipedeRTK/ticket-management-zammad/models"
)

const (
	ticketTimeout = 60 * time.Second
	// Email articles are allowed to run long. Zammad may still deliver
	// the mail after our client gives up, which is why the caller treats
	// a timeout here as "pending" rather than "failed".
	emailTimeout = 180 * time.Second
)

// ZammadClient talks to the helpdesk REST API with a static agent token.
type ZammadClient struct {
	baseURL     string
	token       string
	client      *http.Client
	emailClient *http.Client
}

func NewZammadClient(baseURL, token string) *ZammadClient {
	return &ZammadClient{
		baseURL:     strings.TrimRight(baseURL, "/") + "/api/v1",
		token:       token,
		client:      &http.Client{Timeout: ticketTimeout},
		emailClient: &http.Client{Timeout: emailTimeout},
	}
}

type TicketArticle struct {
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
	Type        string `json:"type"`
	Internal    bool   `json:"internal"`
}

type TicketRequest struct {
	Title      string
	Group      string
	CustomerID string
	Article    TicketArticle
	// CustomFields are forwarded verbatim as top-level ticket
	// attributes (the form's custom object attributes in Zammad).
	CustomFields map[string]string
}

func (z *ZammadClient) CreateTicket(ctx context.Context, t TicketRequest) (models.Ticket, error) {
	payload := map[string]any{
		"title":       t.Title,
		"group":       t.Group,
		"customer_id": t.CustomerID,
		"article":     t.Article,
	}
	for k, v := range t.CustomFields {
		// Never let a form field clobber the ticket envelope.
		if _, taken := payload[k]; taken {
			continue
		}
		payload[k] = v
	}

	var ticket models.Ticket
	if err := z.do(ctx, z.client, "/tickets", payload, &ticket); err != nil {
		return models.Ticket{}, err
	}

	return ticket, nil
}

type NoteArticle struct {
	TicketID    int
	Subject     string
	Body        string
	Attachments []models.Attachment
}

func (z *ZammadClient) CreateNoteArticle(ctx context.Context, n NoteArticle) error {
	payload := map[string]any{
		"ticket_id":    n.TicketID,
		"subject":      n.Subject,
		"body":         n.Body,
		"content_type": "text/plain",
		"type":         "note",
		"internal":     false,
		"attachments":  n.Attachments,
		"sender":       "Agent",
	}

	return z.do(ctx, z.client, "/ticket_articles", payload, nil)
}

type EmailArticle struct {
	TicketID int
	To       string
	Subject  string
	Body     string
}

func (z *ZammadClient) CreateEmailArticle(ctx context.Context, e EmailArticle) error {
	payload := map[string]any{
		"ticket_id":    e.TicketID,
		"to":           e.To,
		"subject":      e.Subject,
		"body":         e.Body,
		"content_type": "text/html",
		"type":         "email",
		"internal":     false,
		"sender":       "Agent",
	}

	return z.do(ctx, z.emailClient, "/ticket_articles", payload, nil)
}

func (z *ZammadClient) do(ctx context.Context, client *http.Client, path string, payload any, out any) error {
	req, err := newJSONRequest(ctx, http.MethodPost, z.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", fmt.Sprintf("Token token=%s", z.token))

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := readErrorBody(res)
		if msg == "" {
			msg = fmt.Sprintf("helpdesk returned status code %d", res.StatusCode)
		}
		return NewStatusError(res.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/CentipedeRTK/ticket-management-zammad/models"
	"github.com/CentipedeRTK/ticket-management-zammad/server/common"
)

func buildTicketRequest(group string, sub models.Submission) common.TicketRequest {
	title := fmt.Sprintf("GNSS declaration %s — %s", sub.MountPoint, time.Now().UTC().Format("2006-01-02"))

	return common.TicketRequest{
		Title:      title,
		Group:      group,
		CustomerID: "guess:" + sub.Email,
		Article: common.TicketArticle{
			Subject:     title,
			Body:        summaryBody(sub),
			ContentType: "text/plain",
			Type:        "web",
			Internal:    false,
		},
		CustomFields: sub.CustomFields(),
	}
}

// summaryBody renders the plain-text initial article: one line per field
// group, blank optional fields omitted.
func summaryBody(sub models.Submission) string {
	declarant := fmt.Sprintf("Declarant: %s <%s>", orDash(sub.ContactName), sub.Email)
	if sub.Profession != "" {
		declarant += " — " + sub.Profession
	}

	lines := []string{
		"GNSS base declaration",
		declarant,
		fmt.Sprintf("Position: lat %s ; lon %s ; elevation %s m",
			fixed(sub.Latitude, 8), fixed(sub.Longitude, 8), fixed(sub.ElevationM, 3)),
		fmt.Sprintf("Quality (mm): E_N %s ; E_E %s ; E_H %s", sub.EN, sub.EE, sub.EH),
		fmt.Sprintf("Base: MP %s ; Country %s", orDash(sub.MountPoint), orDash(sub.CountryAlpha3)),
		fmt.Sprintf("Hardware: receiver %s ; antenna %s", orDash(sub.Receiver), orDash(sub.Antenna)),
	}

	if sub.Epoch != "" {
		lines = append(lines, "Epoch: "+sub.Epoch)
	}
	if sub.Notes != "" {
		lines = append(lines, "Notes: "+sub.Notes)
	}

	return strings.Join(lines, "\n")
}

// fixed reformats a numeric string with a fixed number of decimals,
// leaving it untouched when it does not parse.
func fixed(raw string, decimals int) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return raw
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

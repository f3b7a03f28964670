package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComposer() *Composer {
	return NewComposer("Centipede-RTK Helpdesk", "https://www.centipede-rtk.org/terms-conditions", "", nil)
}

func TestPickLanguage(t *testing.T) {
	c := testComposer()

	assert.Equal(t, LangFrench, c.PickLanguage("FRA"))
	assert.Equal(t, LangFrench, c.PickLanguage(" fra "))
	assert.Equal(t, LangFrench, c.PickLanguage("BEL"))
	assert.Equal(t, LangEnglish, c.PickLanguage("USA"))
	assert.Equal(t, LangEnglish, c.PickLanguage(""))
	assert.Equal(t, LangEnglish, c.PickLanguage("??"))

	// Same input, same answer.
	for i := 0; i < 3; i++ {
		assert.Equal(t, LangFrench, c.PickLanguage("FRA"))
	}
}

func TestPickLanguageOverrideReplacesDefaultSet(t *testing.T) {
	c := NewComposer("h", "t", "", []string{"DEU"})

	assert.Equal(t, LangFrench, c.PickLanguage("DEU"))
	// Override is wholesale: FRA is no longer in the active set.
	assert.Equal(t, LangEnglish, c.PickLanguage("FRA"))
}

func TestSubject(t *testing.T) {
	c := testComposer()

	assert.Equal(t,
		"Confirmation de réception — Base GNSS AB12 — Ticket #1001",
		c.Subject(LangFrench, "1001", "AB12"))
	assert.Equal(t,
		"Submission received — GNSS base AB12 — Ticket #1001",
		c.Subject(LangEnglish, "1001", "AB12"))
	// Mount point clause drops out when the code is absent.
	assert.Equal(t,
		"Submission received — Ticket #1001",
		c.Subject(LangEnglish, "1001", "  "))
}

func TestBodyLocalization(t *testing.T) {
	c := testComposer()
	params := BodyParams{
		ContactName:   "Jane Doe",
		CustomerEmail: "jane@example.org",
		TicketNumber:  "1001",
		MountPoint:    "AB12",
	}

	fr, err := c.Body(LangFrench, params)
	require.NoError(t, err)
	assert.Contains(t, fr, `lang="fr"`)
	assert.Contains(t, fr, "Nous confirmons la bonne réception")
	assert.Contains(t, fr, "<strong>AB12</strong>")

	en, err := c.Body(LangEnglish, params)
	require.NoError(t, err)
	assert.Contains(t, en, `lang="en"`)
	assert.Contains(t, en, "We confirm receipt of your GNSS base declaration")
	assert.Contains(t, en, "<strong>#1001</strong>")
}

func TestBodyDeterministic(t *testing.T) {
	c := testComposer()
	params := BodyParams{
		ContactName:   "Jane Doe",
		CustomerEmail: "jane@example.org",
		TicketNumber:  "1001",
		MountPoint:    "AB12",
		TicketURL:     "https://helpdesk.example.org/#ticket/zoom/42",
	}

	first, err := c.Body(LangEnglish, params)
	require.NoError(t, err)
	second, err := c.Body(LangEnglish, params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBodyEscapesDeclarantInput(t *testing.T) {
	c := testComposer()

	out, err := c.Body(LangEnglish, BodyParams{
		ContactName:   `<script>alert("x")</script>`,
		CustomerEmail: "jane@example.org",
		TicketNumber:  "1001",
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestBodyOptionalBlocks(t *testing.T) {
	c := testComposer()
	base := BodyParams{
		CustomerEmail: "jane@example.org",
		TicketNumber:  "1001",
	}

	// No ticket URL: no button. No reset URL: fallback sentence.
	out, err := c.Body(LangEnglish, base)
	require.NoError(t, err)
	assert.NotContains(t, out, "View ticket")
	assert.Contains(t, out, "use the “Forgot password” link on the login page")
	assert.NotContains(t, out, "<img")

	withLinks := base
	withLinks.TicketURL = "https://helpdesk.example.org/#ticket/zoom/42"
	withLinks.PasswordResetURL = "https://helpdesk.example.org/#password_reset"

	out, err = c.Body(LangEnglish, withLinks)
	require.NoError(t, err)
	assert.Contains(t, out, "View ticket")
	assert.Contains(t, out, "https://helpdesk.example.org/#ticket/zoom/42")
	assert.Contains(t, out, `href="https://helpdesk.example.org/#password_reset"`)
	assert.NotContains(t, out, "use the “Forgot password” link on the login page")
}

func TestBodyInlineStylesOnly(t *testing.T) {
	c := testComposer()
	out, err := c.Body(LangEnglish, BodyParams{CustomerEmail: "a@b.cd", TicketNumber: "1"})
	require.NoError(t, err)

	assert.False(t, strings.Contains(out, "<link"), "no external stylesheet")
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
}

func TestComposerWithLogo(t *testing.T) {
	c := NewComposer("h", "t", "data:image/png;base64,aGVsbG8=", nil)

	out, err := c.Body(LangEnglish, BodyParams{CustomerEmail: "a@b.cd", TicketNumber: "1"})
	require.NoError(t, err)
	assert.Contains(t, out, `src="data:image/png;base64,aGVsbG8="`)
}

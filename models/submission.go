package models

import (
	"net/url"
	"strings"
)

// Submission is the declarant-provided field bag from the public form.
// Numeric fields stay strings so validation can report user-facing
// messages instead of bind failures, and so latitude and longitude keep
// their submitted precision. Validation tags are evaluated in field
// order; the first violation is the one reported.
type Submission struct {
	Email         string `validate:"submit_email"`
	ContactName   string `validate:"required"`
	MountPoint    string `validate:"submit_mountpoint"`
	CountryAlpha3 string `validate:"submit_alpha3"`
	Receiver      string `validate:"required"`
	Antenna       string `validate:"required"`
	Latitude      string `validate:"submit_coord=90"`
	Longitude     string `validate:"submit_coord=180"`
	ElevationM    string `validate:"submit_finite"`
	EN            string `validate:"submit_finite,submit_max=10"`
	EE            string `validate:"submit_finite,submit_max=10"`
	EH            string `validate:"submit_finite,submit_max=20"`
	Profession    string
	Epoch         string
	Notes         string
	ConfirmMap    string

	// Fields keeps the raw form bag so non-reserved extras can be
	// forwarded to the ticketing system untouched.
	Fields      url.Values
	Attachments []Attachment
}

// Attachment is an uploaded file ready for the ticketing API
// (base64 content, Zammad attachment field names).
type Attachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime-type"`
	Data     string `json:"data"`
}

// SubmissionFromForm builds a Submission from posted form values,
// trimming and uppercasing exactly where the intake contract demands it.
func SubmissionFromForm(form url.Values) Submission {
	return Submission{
		Email:         strings.TrimSpace(form.Get("email")),
		ContactName:   strings.TrimSpace(form.Get("contact_name")),
		MountPoint:    strings.ToUpper(strings.TrimSpace(form.Get("mount_point"))),
		CountryAlpha3: form.Get("country_alpha3"),
		Receiver:      strings.TrimSpace(form.Get("receiver")),
		Antenna:       strings.TrimSpace(form.Get("antenna")),
		Latitude:      form.Get("latitude"),
		Longitude:     form.Get("longitude"),
		ElevationM:    form.Get("elevation_m"),
		EN:            form.Get("e_n"),
		EE:            form.Get("e_e"),
		EH:            form.Get("e_h"),
		Profession:    strings.TrimSpace(form.Get("profession")),
		Epoch:         strings.TrimSpace(form.Get("epoch")),
		Notes:         strings.TrimSpace(form.Get("notes")),
		ConfirmMap:    strings.TrimSpace(form.Get("confirm_map")),
		Fields:        form,
	}
}

// MapConfirmed reports whether the declarant acknowledged the map
// position check.
func (s Submission) MapConfirmed() bool {
	switch strings.ToLower(s.ConfirmMap) {
	case "", "false", "0", "no", "off":
		return false
	}
	return true
}

var reservedFields = map[string]bool{
	"confirm_map": true,
}

// CustomFields returns every submitted non-empty value that is not
// reserved, keyed by its form name. The normalized mount point takes
// precedence over the raw submitted value.
func (s Submission) CustomFields() map[string]string {
	out := make(map[string]string, len(s.Fields))
	for k, vs := range s.Fields {
		if reservedFields[k] || len(vs) == 0 {
			continue
		}
		if strings.TrimSpace(vs[0]) == "" {
			continue
		}
		out[k] = vs[0]
	}
	if _, ok := out["mount_point"]; ok {
		out["mount_point"] = s.MountPoint
	}
	return out
}

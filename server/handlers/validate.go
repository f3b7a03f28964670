package handlers

import (
	"errors"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/CentipedeRTK/ticket-management-zammad/models"
	"github.com/CentipedeRTK/ticket-management-zammad/server/common"
)

const (
	mountPointRegexString = "^[A-Z0-9]{2,10}$"
	alpha3RegexString     = "^[A-Z]{3}$"
	emailRegexString      = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	// At least eight digits after the decimal point, per the network's
	// position quality requirement.
	coordinateRegexString = `^-?\d+\.\d{8,}$`
)

var (
	mountPointRegex = regexp.MustCompile(mountPointRegexString)
	alpha3Regex     = regexp.MustCompile(alpha3RegexString)
	emailRegex      = regexp.MustCompile(emailRegexString)
	coordinateRegex = regexp.MustCompile(coordinateRegexString)
)

const invalidMountPointMessage = "Invalid mount point (2 to 10 characters, A-Z and 0-9 only)."

// violationMessages maps "StructField/tag" (then "StructField") to the
// user-facing message for the first failed rule.
var violationMessages = map[string]string{
	"Email":          "Missing or invalid email address.",
	"ContactName":    "Full name is required.",
	"MountPoint":     invalidMountPointMessage,
	"CountryAlpha3":  "Missing or invalid ISO alpha-3 country code.",
	"Receiver":       "Receiver is required.",
	"Antenna":        "Antenna is required.",
	"Latitude":       "Invalid latitude (at least 8 decimals, -90..90).",
	"Longitude":      "Invalid longitude (at least 8 decimals, -180..180).",
	"ElevationM":     "Missing or invalid elevation (m).",
	"EN/submit_finite": "E_N missing or invalid (mm).",
	"EN/submit_max":    "E_N must be 10 mm or less.",
	"EE/submit_finite": "E_E missing or invalid (mm).",
	"EE/submit_max":    "E_E must be 10 mm or less.",
	"EH/submit_finite": "E_H missing or invalid (mm).",
	"EH/submit_max":    "E_H must be 20 mm or less.",
}

var submissionValidator = newSubmissionValidator()

func newSubmissionValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("submit_email", validEmail, false)
	_ = v.RegisterValidation("submit_mountpoint", validMountPoint, false)
	_ = v.RegisterValidation("submit_alpha3", validAlpha3, false)
	_ = v.RegisterValidation("submit_coord", validCoordinate, false)
	_ = v.RegisterValidation("submit_finite", validFinite, false)
	_ = v.RegisterValidation("submit_max", validMax, false)

	return v
}

// validateSubmission runs the ordered rule set and reports the first
// violation only. The product surfaces one message at a time.
func validateSubmission(sub models.Submission) *common.StatusError {
	err := submissionValidator.Struct(sub)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg, ok := violationMessages[fe.StructField()+"/"+fe.Tag()]
		if !ok {
			msg = violationMessages[fe.StructField()]
		}
		if msg == "" {
			msg = "Invalid submission."
		}
		return common.NewStatusError(http.StatusUnprocessableEntity, msg)
	}

	return common.NewStatusError(http.StatusUnprocessableEntity, err.Error())
}

// normalizeMountPoint uppercases and trims a candidate code and rejects
// anything outside the safe charset before it can reach a query.
func normalizeMountPoint(raw string) (string, error) {
	mp := strings.ToUpper(strings.TrimSpace(raw))
	if !mountPointRegex.MatchString(mp) {
		return "", common.NewStatusError(http.StatusUnprocessableEntity, invalidMountPointMessage)
	}
	return mp, nil
}

func validEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validMountPoint(fl validator.FieldLevel) bool {
	return mountPointRegex.MatchString(fl.Field().String())
}

func validAlpha3(fl validator.FieldLevel) bool {
	return alpha3Regex.MatchString(fl.Field().String())
}

// validCoordinate enforces decimal precision on the submitted string and
// a numeric range of +-param.
func validCoordinate(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if !coordinateRegex.MatchString(raw) {
		return false
	}

	bound, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}

	return v >= -bound && v <= bound
}

func validFinite(fl validator.FieldLevel) bool {
	_, ok := parseFinite(fl.Field().String())
	return ok
}

func validMax(fl validator.FieldLevel) bool {
	bound, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}

	v, ok := parseFinite(fl.Field().String())
	if !ok {
		// submit_finite already reported the parse failure.
		return true
	}

	return v <= bound
}

func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

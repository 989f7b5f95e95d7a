package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Philippine mobile numbers: 09XXXXXXXXX or +639XXXXXXXXX
	MobilePattern = `^(\+63|0)9\d{9}$`

	// DateLayout is the wire format of calendar dates
	DateLayout = "2006-01-02"

	// GradeLevels accepted for contestants
	GradeLevels = []string{
		"Grade 7", "Grade 8", "Grade 9", "Grade 10", "Grade 11", "Grade 12",
		"College",
	}
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Mobile *regexp.Regexp
}{
	Mobile: regexp.MustCompile(MobilePattern),
}

// Clock is swapped in tests that need a fixed "today".
var Clock = time.Now

// IsMobile reports whether s is a valid mobile number once spaces and
// dashes are removed.
func IsMobile(s string) bool {
	return CompiledPatterns.Mobile.MatchString(NormalizeMobile(s))
}

// NormalizeMobile strips the separators people type into phone fields.
func NormalizeMobile(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
}

// IsGradeLevel matches s against GradeLevels case-insensitively.
func IsGradeLevel(s string) bool {
	for _, g := range GradeLevels {
		if strings.EqualFold(strings.TrimSpace(s), g) {
			return true
		}
	}
	return false
}

// ParseDate parses a DateLayout string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func validateMobile(fl validator.FieldLevel) bool {
	return IsMobile(fl.Field().String())
}

func validateGradeLevel(fl validator.FieldLevel) bool {
	return IsGradeLevel(fl.Field().String())
}

// validateNotFuture accepts time.Time values and DateLayout strings that
// are not after today. Unparseable strings fail.
func validateNotFuture(fl validator.FieldLevel) bool {
	today := Clock()
	endOfToday := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)

	switch v := fl.Field().Interface().(type) {
	case time.Time:
		return !v.After(endOfToday)
	case string:
		d, err := ParseDate(v)
		if err != nil {
			return false
		}
		return !d.After(endOfToday)
	}
	return false
}

// jsonFieldName reports fields by their JSON name so error messages match
// what the client sent.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Register installs the custom rules on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		"mobile":     validateMobile,
		"gradelevel": validateGradeLevel,
		"notfuture":  validateNotFuture,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validator: %w", tag, err)
		}
	}
	return nil
}

// RegisterWithGin installs the custom rules on gin's binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

// FieldPath turns a validator namespace such as
// "SingleRegistrationRequest.student.email" into "student.email".
func FieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Message creates a human-readable validation error message
func Message(fe validator.FieldError) string {
	field := FieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return field + " must have at least " + fe.Param() + " items"
		}
		return field + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return field + " must have at most " + fe.Param() + " items"
		}
		return field + " must be at most " + fe.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "mobile":
		return field + " must be a mobile number like 09171234567"
	case "gradelevel":
		return field + " must be one of: " + strings.Join(GradeLevels, ", ")
	case "notfuture":
		return field + " must be a date (YYYY-MM-DD) not in the future"
	case "datetime":
		return field + " must match the format " + fe.Param()
	case "url":
		return field + " must be a valid URL"
	case "uuid":
		return field + " must be a valid pass code"
	case "eq":
		return field + " must be " + fe.Param()
	case "required_if":
		return field + " is required when " + fe.Param()
	default:
		return field + " validation failed: " + fe.Tag()
	}
}

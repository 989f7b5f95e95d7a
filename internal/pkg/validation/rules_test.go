package validation

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Phone     string `json:"phone" validate:"required,mobile"`
	Grade     string `json:"grade" validate:"required,gradelevel"`
	BirthDate string `json:"birthDate" validate:"required,notfuture"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func fixClock(t *testing.T, day string) {
	t.Helper()
	d, err := time.Parse(DateLayout, day)
	require.NoError(t, err)
	Clock = func() time.Time { return d.Add(10 * time.Hour) }
	t.Cleanup(func() { Clock = time.Now })
}

func TestIsMobile(t *testing.T) {
	valid := []string{"09171234567", "+639171234567", "0917-123-4567", " 0917 123 4567 "}
	invalid := []string{"", "9171234567", "08171234567", "+6391712345", "0917123456a"}

	for _, s := range valid {
		assert.True(t, IsMobile(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsMobile(s), s)
	}
}

func TestIsGradeLevel(t *testing.T) {
	assert.True(t, IsGradeLevel("Grade 10"))
	assert.True(t, IsGradeLevel("grade 12"))
	assert.True(t, IsGradeLevel("college"))
	assert.False(t, IsGradeLevel("Grade 3"))
	assert.False(t, IsGradeLevel(""))
}

func TestRegisteredRules(t *testing.T) {
	fixClock(t, "2026-03-01")
	v := newValidator(t)

	ok := sample{Phone: "09171234567", Grade: "Grade 9", BirthDate: "2011-05-20"}
	assert.NoError(t, v.Struct(ok))

	today := ok
	today.BirthDate = "2026-03-01"
	assert.NoError(t, v.Struct(today))

	tests := []struct {
		name  string
		edit  func(s *sample)
		field string
		tag   string
	}{
		{"bad phone", func(s *sample) { s.Phone = "12345" }, "phone", "mobile"},
		{"bad grade", func(s *sample) { s.Grade = "Kinder" }, "grade", "gradelevel"},
		{"future date", func(s *sample) { s.BirthDate = "2026-03-02" }, "birthDate", "notfuture"},
		{"garbled date", func(s *sample) { s.BirthDate = "20/05/2011" }, "birthDate", "notfuture"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ok
			tt.edit(&s)

			err := v.Struct(s)
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field())
			assert.Equal(t, tt.tag, verrs[0].Tag())
			assert.Contains(t, Message(verrs[0]), tt.field)
		})
	}
}

func TestFieldPathNested(t *testing.T) {
	type inner struct {
		Email string `json:"email" validate:"required,email"`
	}
	type outer struct {
		Student inner `json:"student"`
	}

	err := newValidator(t).Struct(outer{Student: inner{Email: "nope"}})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "student.email", FieldPath(verrs[0]))
	assert.Equal(t, "student.email must be a valid email address", Message(verrs[0]))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "", PlainText(""))
	assert.Equal(t, "Hello", PlainText("<b>Hello</b><script>alert(1)</script>"))
	assert.Equal(t, "Rock & Roll", PlainText("Rock & Roll"))
	assert.Equal(t, "Tom's band", PlainText("  Tom's band "))
	assert.Equal(t, "a < b", PlainText("a < b"))

	// entity-encoded markup must not come back as a live tag
	assert.Equal(t, "", PlainText("&lt;script&gt;alert(1)&lt;/script&gt;"))
	got := PlainText("<b>x</b>&lt;img src=x onerror=alert(1)&gt;")
	assert.Equal(t, "x", got)
	assert.NotContains(t, PlainText("&amp;lt;img src=x onerror=alert(1)&amp;gt;"), "<img")
}

package portfolio

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Validation errors returned by Validate. Their messages are shown to the visitor as-is.
var (
	ErrCaptchaUnsolved = errors.New("please complete the reCAPTCHA verification")
	ErrMissingFields   = errors.New("please fill in all fields")
	ErrInvalidEmail    = errors.New("please enter a valid email address")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactForm is a submitted contact message.
type ContactForm struct {
	Name         string `form:"name" json:"name"`
	Email        string `form:"email" json:"email"`
	Message      string `form:"message" json:"message"`
	CaptchaToken string `form:"g-recaptcha-response" json:"captcha_token"`
}

// Verifier reports whether a bot-verification challenge was solved.
type Verifier interface {
	Solved(ctx context.Context, token string) (bool, error)
}

// TokenPresenceVerifier treats any non-empty response token as solved.
type TokenPresenceVerifier struct{}

// Solved reports whether token is non-empty. It never returns an error.
func (TokenPresenceVerifier) Solved(_ context.Context, token string) (bool, error) {
	return token != "", nil
}

// Validate checks the captcha first, then the required fields, then the email shape.
// Fields are compared after trimming surrounding whitespace.
func Validate(ctx context.Context, form ContactForm, verifier Verifier) error {
	solved, err := verifier.Solved(ctx, form.CaptchaToken)
	if err != nil {
		return err
	}
	if !solved {
		return ErrCaptchaUnsolved
	}

	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	message := strings.TrimSpace(form.Message)
	if name == "" || email == "" || message == "" {
		return ErrMissingFields
	}
	if !IsValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}

// IsValidEmail reports whether email has the shape local@domain.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

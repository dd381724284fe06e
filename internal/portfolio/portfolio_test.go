package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProjects() []Project {
	return []Project{
		{ID: 1, Title: "Shop", Category: "web"},
		{ID: 2, Title: "Tracker", Category: "mobile"},
		{ID: 3, Title: "Blog", Category: "web"},
	}
}

func TestFilter(t *testing.T) {
	testCases := []struct {
		name     string
		category string
		expected []int
	}{
		{name: "all", category: FilterAll, expected: []int{1, 2, 3}},
		{name: "empty means all", category: "", expected: []int{1, 2, 3}},
		{name: "web keeps order", category: "web", expected: []int{1, 3}},
		{name: "unknown category", category: "desktop", expected: []int{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids := []int{}
			for _, p := range Filter(sampleProjects(), tc.category) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func TestFind(t *testing.T) {
	p, ok := Find(sampleProjects(), 2)
	assert.True(t, ok)
	assert.Equal(t, "Tracker", p.Title)

	_, ok = Find(sampleProjects(), 42)
	assert.False(t, ok)
}

func TestDefaultProjects(t *testing.T) {
	projects := DefaultProjects()
	assert.NotEmpty(t, projects)
	assert.Len(t, Filter(projects, "web"), len(projects))
}

type failingVerifier struct{}

func (failingVerifier) Solved(context.Context, string) (bool, error) {
	return false, errors.New("verification service unreachable")
}

func TestValidate(t *testing.T) {
	valid := ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hello", CaptchaToken: "token"}

	testCases := []struct {
		name     string
		mutate   func(f *ContactForm)
		expected error
	}{
		{name: "valid form", mutate: func(f *ContactForm) {}},
		{name: "captcha unsolved wins over other problems", mutate: func(f *ContactForm) {
			f.CaptchaToken = ""
			f.Email = ""
		}, expected: ErrCaptchaUnsolved},
		{name: "blank message", mutate: func(f *ContactForm) { f.Message = "   " }, expected: ErrMissingFields},
		{name: "missing name", mutate: func(f *ContactForm) { f.Name = "" }, expected: ErrMissingFields},
		{name: "bad email", mutate: func(f *ContactForm) { f.Email = "ada@example" }, expected: ErrInvalidEmail},
		{name: "email with spaces", mutate: func(f *ContactForm) { f.Email = "ada lovelace@example.com" }, expected: ErrInvalidEmail},
		{name: "surrounding whitespace is trimmed", mutate: func(f *ContactForm) { f.Email = "  ada@example.com " }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := valid
			tc.mutate(&form)
			err := Validate(context.Background(), form, TokenPresenceVerifier{})
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}

	t.Run("verifier failure is returned", func(t *testing.T) {
		err := Validate(context.Background(), valid, failingVerifier{})
		assert.EqualError(t, err, "verification service unreachable")
	})
}

// Package form models the link submission form as an explicit state value
// with pure update functions.
package form

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"go-link-shortener/types"
	"go-link-shortener/urlgen"
	"go-link-shortener/utils"
)

// DefaultBaseURL is the prefix short codes are appended to.
const DefaultBaseURL = "http://localhost:3000"

// Form is the state of one submission form and the links it has produced.
type Form struct {
	URL           string
	ShortCode     string
	ExpiryMinutes string
	Links         []types.Link
}

// Options supplies the collaborators Submit needs.
// Zero values fall back to DefaultBaseURL, uuid.NewString and urlgen.GenerateUnique.
type Options struct {
	BaseURL  string
	NewID    func() string
	Generate func(taken func(code string) bool) (string, error)
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Generate == nil {
		o.Generate = urlgen.GenerateUnique
	}
	return o
}

// SetURL returns f with the URL field replaced.
func (f Form) SetURL(v string) Form {
	f.URL = v
	return f
}

// SetShortCode returns f with the custom code field replaced.
func (f Form) SetShortCode(v string) Form {
	f.ShortCode = v
	return f
}

// SetExpiryMinutes returns f with the expiry field replaced.
func (f Form) SetExpiryMinutes(v string) Form {
	f.ExpiryMinutes = v
	return f
}

// Codes returns the set of short codes already in f.Links.
func (f Form) Codes() map[string]struct{} {
	codes := make(map[string]struct{}, len(f.Links))
	for _, l := range f.Links {
		codes[l.ShortCode] = struct{}{}
	}
	return codes
}

// Submit validates the form and appends a new link.
//
// On an invalid URL, f is returned untouched together with utils.ErrInvalidURL.
// On success the returned Form owns a fresh copy of the list with the new link
// appended, and its input fields are cleared.
func Submit(f Form, now time.Time, opts Options) (Form, error) {
	if err := utils.ValidateURL(f.URL); err != nil {
		return f, err
	}
	opts = opts.withDefaults()

	code := f.ShortCode
	if code == "" {
		codes := f.Codes()
		generated, err := opts.Generate(func(c string) bool {
			_, ok := codes[c]
			return ok
		})
		if err != nil {
			return f, err
		}
		code = generated
	}

	link := NewLink(opts.NewID(), f.URL, code, opts.BaseURL, utils.ExpiryOrDefault(f.ExpiryMinutes), now)

	links := make([]types.Link, len(f.Links), len(f.Links)+1)
	copy(links, f.Links)
	links = append(links, link)

	return Form{Links: links}, nil
}

// NewLink assembles a link record. Clicks always start at zero.
func NewLink(id, originalURL, code, baseURL string, expiryMinutes int, now time.Time) types.Link {
	return types.Link{
		ID:            id,
		OriginalURL:   originalURL,
		ShortCode:     code,
		ShortURL:      ShortURL(baseURL, code),
		ExpiryMinutes: expiryMinutes,
		CreatedAt:     now,
		Clicks:        0,
	}
}

// ShortURL joins the base URL and a code with a single slash.
func ShortURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/" + code
}

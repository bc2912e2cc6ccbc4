// Package i18n loads the embedded message catalogs and localizes UI strings.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// DefaultLanguage is used when no catalog matches the requested locale.
var DefaultLanguage = language.Japanese

// Catalog localizes message ids for one locale.
type Catalog struct {
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	tag       language.Tag
}

// New loads every embedded catalog and selects the best match for locale.
func New(locale string) (*Catalog, error) {
	bundle := goi18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join("locales", e.Name())); err != nil {
			return nil, fmt.Errorf("failed to load catalog %s: %w", e.Name(), err)
		}
	}

	tag := DefaultLanguage
	if locale != "" {
		requested, err := language.Parse(strings.ToLower(locale))
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		matcher := language.NewMatcher(bundle.LanguageTags())
		_, idx, conf := matcher.Match(requested)
		if conf != language.No {
			tag = bundle.LanguageTags()[idx]
		}
	}

	return &Catalog{
		bundle:    bundle,
		localizer: goi18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
	}, nil
}

// MustNew is like New but panics on error. The embedded catalogs are part
// of the binary, so failure means a build defect.
func MustNew(locale string) *Catalog {
	c, err := New(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Locale returns the selected language tag.
func (c *Catalog) Locale() language.Tag {
	return c.tag
}

// T localizes id. Missing ids render as the id itself.
func (c *Catalog) T(id string) string {
	return c.Tf(id, nil)
}

// Tf localizes id with template data.
func (c *Catalog) Tf(id string, data map[string]any) string {
	msg, err := c.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Languages lists the languages with an embedded catalog.
func (c *Catalog) Languages() []language.Tag {
	return c.bundle.LanguageTags()
}

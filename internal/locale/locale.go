package locale

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.json
var translations embed.FS

type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

var rtlLanguages = map[string]bool{"ar": true, "he": true, "fa": true, "ur": true}

// DirectionOf returns the text direction of a language tag such as "ar" or "ar-EG".
func DirectionOf(lang string) Direction {
	base := strings.ToLower(lang)
	if i := strings.IndexAny(base, "-_"); i > 0 {
		base = base[:i]
	}
	if rtlLanguages[base] {
		return RTL
	}
	return LTR
}

// Catalog is the process-wide translation bundle.
type Catalog struct {
	bundle    *i18n.Bundle
	matcher   language.Matcher
	supported []string
	fallback  string
}

func NewCatalog(defaultLang string) (*Catalog, error) {
	fallbackTag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("invalid default language %q: %w", defaultLang, err)
	}

	bundle := i18n.NewBundle(fallbackTag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := translations.ReadDir("translations")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(translations, "translations/"+f.Name()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f.Name(), err)
		}
	}

	tags := bundle.LanguageTags()
	supported := make([]string, 0, len(tags))
	for _, t := range tags {
		b, _ := t.Base()
		supported = append(supported, b.String())
	}

	fb, _ := fallbackTag.Base()
	return &Catalog{
		bundle:    bundle,
		matcher:   language.NewMatcher(tags),
		supported: supported,
		fallback:  fb.String(),
	}, nil
}

func (c *Catalog) Supported() []string {
	out := make([]string, len(c.supported))
	copy(out, c.supported)
	return out
}

func (c *Catalog) IsSupported(lang string) bool {
	for _, s := range c.supported {
		if s == lang {
			return true
		}
	}
	return false
}

// Negotiate picks the session's language when set and supported, else the
// best Accept-Language match, else the default.
func (c *Catalog) Negotiate(sessionLang, acceptLanguage string) string {
	if sessionLang != "" && c.IsSupported(sessionLang) {
		return sessionLang
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			tag, _, confidence := c.matcher.Match(tags...)
			if confidence != language.No {
				b, _ := tag.Base()
				if c.IsSupported(b.String()) {
					return b.String()
				}
			}
		}
	}
	return c.fallback
}

func (c *Catalog) Localizer(lang string) *Localizer {
	if !c.IsSupported(lang) {
		lang = c.fallback
	}
	return &Localizer{
		Language:  lang,
		Direction: DirectionOf(lang),
		loc:       i18n.NewLocalizer(c.bundle, lang, c.fallback),
	}
}

// Localizer translates for one language.
type Localizer struct {
	Language  string
	Direction Direction
	loc       *i18n.Localizer
}

// T translates key, falling back to the key itself when no message exists.
func (l *Localizer) T(key string, params map[string]interface{}) string {
	if l == nil || l.loc == nil || key == "" {
		return key
	}
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: params,
	})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if errors.As(err, &notFound) || msg == "" {
			return key
		}
	}
	return msg
}

func (l *Localizer) Styles() StyleFragment {
	if l == nil {
		return Styles(LTR)
	}
	return Styles(l.Direction)
}

func (l *Localizer) RTL() bool {
	return l != nil && l.Direction == RTL
}

type ctxKey struct{}

func WithLocalizer(ctx context.Context, l *Localizer) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request's localizer, or nil outside a request.
func FromContext(ctx context.Context) *Localizer {
	l, _ := ctx.Value(ctxKey{}).(*Localizer)
	return l
}

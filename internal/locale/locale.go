// Package locale provides the UI strings in Spanish (default) and English.
package locale

import (
	"embed"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/Veraticus/fintracker/internal/model"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when the configured locale matches nothing better.
var DefaultLanguage = language.Spanish

//go:embed locales/*.toml
var messageFiles embed.FS

// NewBundle loads every embedded message file.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := messageFiles.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list message files: %w", err)
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, readErr := messageFiles.ReadFile(name)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, readErr)
		}
		if _, parseErr := bundle.ParseMessageFileBytes(data, name); parseErr != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, parseErr)
		}
	}
	return bundle, nil
}

// Translator resolves message ids for one language.
type Translator struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// New returns a translator for the given BCP 47 locale ("es", "en-US", ...).
func New(locale string) (*Translator, error) {
	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}

	tag := DefaultLanguage
	if locale != "" {
		parsed, parseErr := language.Parse(locale)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, parseErr)
		}
		matcher := language.NewMatcher(bundle.LanguageTags())
		_, index, _ := matcher.Match(parsed)
		tag = bundle.LanguageTags()[index]
	}

	return &Translator{
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
	}, nil
}

// Language returns the matched language.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// T returns the message for id, or id itself when it is unknown.
func (t *Translator) T(id string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id})
}

// Tf fills the message template for id with data.
func (t *Translator) Tf(id string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural picks the plural form of id for count, exposed to the template as .Count.
func (t *Translator) Plural(id string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	msg, err := t.localizer.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return msg
}

// EntryType returns the tab label for an entry type.
func (t *Translator) EntryType(typ model.EntryType) string {
	if typ == model.EntryTypeIncome {
		return t.T("tab_incomes")
	}
	return t.T("tab_expenses")
}

// Period returns the selector label for a period.
func (t *Translator) Period(p model.Period) string {
	return t.T(periodKey("period", p))
}

// EmptyTransactions is the message shown when nothing of typ falls in p.
func (t *Translator) EmptyTransactions(typ model.EntryType, p model.Period) string {
	prefix := "empty_expenses"
	if typ == model.EntryTypeIncome {
		prefix = "empty_incomes"
	}
	return t.T(periodKey(prefix, p))
}

func periodKey(prefix string, p model.Period) string {
	switch p {
	case model.PeriodDay:
		return prefix + "_day"
	case model.PeriodWeek:
		return prefix + "_week"
	case model.PeriodYear:
		return prefix + "_year"
	default:
		return prefix + "_month"
	}
}

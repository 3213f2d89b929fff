// Package i18n holds the presentation catalogs. The aggregation engine
// emits English keys and labels; this package renders them per language.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
	"golang.org/x/text/language"
)

const (
	LangEN = "en"
	LangRU = "ru"
)

var requiredLanguages = []string{LangEN, LangRU}

var ErrNoLocales = errors.New("no locales found")

//go:embed locales/*.json
var embeddedLocales embed.FS

// EmbeddedLocales is the catalog set compiled into the binary.
func EmbeddedLocales() fs.FS {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// Manager is read-only after NewManager and safe for concurrent use.
type Manager struct {
	defaultLanguage string
	// catalogs hold every key of the default language, overridden by the
	// language's own translations.
	catalogs  map[string]map[string]string
	supported []string
	matcher   language.Matcher
	// matched lists languages in matcher tag order.
	matched []string
}

// NewManager loads every <language>.json at the root of locales. Both en and
// ru must be present. An unsupported defaultLanguage falls back to en.
func NewManager(defaultLanguage string, locales fs.FS) (*Manager, error) {
	raw, err := readCatalogs(locales)
	if err != nil {
		return nil, err
	}
	for _, required := range requiredLanguages {
		if _, ok := raw[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	manager := &Manager{defaultLanguage: LangEN, catalogs: make(map[string]map[string]string, len(raw))}
	for lang := range raw {
		manager.supported = append(manager.supported, lang)
	}
	slices.Sort(manager.supported)
	if normalized := normalizeLanguageTag(defaultLanguage); hasCatalog(raw, normalized) {
		manager.defaultLanguage = normalized
	}

	fallback := raw[manager.defaultLanguage]
	for lang, messages := range raw {
		merged := make(map[string]string, len(fallback)+len(messages))
		for key, value := range fallback {
			merged[key] = value
		}
		for key, value := range messages {
			if strings.TrimSpace(value) != "" {
				merged[key] = value
			}
		}
		manager.catalogs[lang] = merged
	}

	// The matcher falls back to its first tag, so the default goes first.
	manager.matched = []string{manager.defaultLanguage}
	for _, lang := range manager.supported {
		if lang != manager.defaultLanguage {
			manager.matched = append(manager.matched, lang)
		}
	}
	tags := make([]language.Tag, 0, len(manager.matched))
	for _, lang := range manager.matched {
		tags = append(tags, language.Make(lang))
	}
	manager.matcher = language.NewMatcher(tags)
	return manager, nil
}

func readCatalogs(locales fs.FS) (map[string]map[string]string, error) {
	entries, err := fs.ReadDir(locales, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	catalogs := map[string]map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		lang := strings.ToLower(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
		content, err := fs.ReadFile(locales, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		messages := map[string]string{}
		if err := sonic.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", lang)
		}
		catalogs[lang] = messages
	}

	if len(catalogs) == 0 {
		return nil, ErrNoLocales
	}
	return catalogs, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	return slices.Clone(manager.supported)
}

// NormalizeLanguage maps "ru_RU", "EN-us" and the like onto a supported
// language, or the default.
func (manager *Manager) NormalizeLanguage(raw string) string {
	if normalized := normalizeLanguageTag(raw); hasCatalog(manager.catalogs, normalized) {
		return normalized
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage honours q-values in an Accept-Language header.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return manager.defaultLanguage
	}

	_, index, confidence := manager.matcher.Match(desired...)
	if confidence == language.No {
		return manager.defaultLanguage
	}
	return manager.matched[index]
}

// Messages returns the merged catalog of language. Callers must not modify it.
func (manager *Manager) Messages(lang string) map[string]string {
	return manager.catalogs[manager.NormalizeLanguage(lang)]
}

func (manager *Manager) Translate(lang string, key string) string {
	if value, ok := manager.Messages(lang)[key]; ok {
		return value
	}
	return key
}

func (manager *Manager) Translatef(lang string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(lang, key), args...)
}

func hasCatalog(catalogs map[string]map[string]string, lang string) bool {
	_, ok := catalogs[lang]
	return lang != "" && ok
}

func normalizeLanguageTag(raw string) string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	lang = strings.ReplaceAll(lang, "_", "-")
	if separator := strings.Index(lang, "-"); separator >= 0 {
		lang = lang[:separator]
	}
	return lang
}

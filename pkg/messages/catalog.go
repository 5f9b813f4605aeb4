package messages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"regexp"
	"slices"
	"sort"

	"golang.org/x/text/language"

	"github.com/jhn78/framework/pkg/logger"
	"github.com/jhn78/framework/pkg/validator"
)

// DefaultLanguage is used when no better match exists.
const DefaultLanguage = "en"

//go:embed catalogs/*.yaml
var builtin embed.FS

// Catalog renders validation errors from message templates keyed by
// translation key. Templates use %{name} placeholders filled from the
// error's TranslationValues; %{field} receives the property label.
//
// A Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	templates   templates
	defaultLang string
	logMissing  bool
	logger      *slog.Logger
	langs       []string
	matcher     language.Matcher
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the language used when the requested one has no template.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.defaultLang = lang
		}
	}
}

// WithLogger sets the logger used to report missing templates.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMissingLogging reports every template lookup that falls back.
func WithMissingLogging(enabled bool) Option {
	return func(c *Catalog) {
		c.logMissing = enabled
	}
}

// New builds a Catalog from already decoded templates: language to nested keys.
func New(tree map[string]map[string]any, opts ...Option) (*Catalog, error) {
	if len(tree) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		templates:   make(templates, len(tree)),
		defaultLang: DefaultLanguage,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("messages"))
	for lang, keys := range tree {
		dst := make(map[string]any, len(keys))
		merge(dst, keys)
		c.templates[lang] = dst
	}
	c.index()
	return c, nil
}

// Parse builds a Catalog from YAML content.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	t, err := parseYAML(data)
	if err != nil {
		return nil, err
	}
	return New(t, opts...)
}

// Load reads YAML or JSON catalog files, chosen by extension. Later files
// override keys of earlier ones.
func Load(paths []string, opts ...Option) (*Catalog, error) {
	merged := make(templates)
	for _, path := range paths {
		if err := loadFile(os.ReadFile, path, merged); err != nil {
			return nil, err
		}
	}
	return New(merged, opts...)
}

// Default returns the built-in catalog with English and Spanish templates
// for every message the validator produces.
func Default(opts ...Option) *Catalog {
	c, err := New(builtinTemplates(), opts...)
	if err != nil {
		panic(fmt.Errorf("built-in catalog: %w", err))
	}
	return c
}

// Extend layers catalog files over the built-in templates. Keys the files
// define win; everything else keeps its built-in translation.
func Extend(paths []string, opts ...Option) (*Catalog, error) {
	merged := builtinTemplates()
	for _, path := range paths {
		if err := loadFile(os.ReadFile, path, merged); err != nil {
			return nil, err
		}
	}
	return New(merged, opts...)
}

func builtinTemplates() templates {
	merged := make(templates)
	files, err := fs.Glob(builtin, "catalogs/*.yaml")
	if err != nil {
		panic(err)
	}
	for _, path := range files {
		if err := loadFile(builtin.ReadFile, path, merged); err != nil {
			panic(fmt.Errorf("built-in catalog: %w", err))
		}
	}
	return merged
}

func loadFile(read func(string) ([]byte, error), path string, into templates) error {
	parse, err := parserFor(path)
	if err != nil {
		return err
	}
	data, err := read(path)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}
	t, err := parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for lang, keys := range t {
		if into[lang] == nil {
			into[lang] = make(map[string]any, len(keys))
		}
		merge(into[lang], keys)
	}
	return nil
}

func (c *Catalog) index() {
	c.langs = slices.Collect(maps.Keys(c.templates))
	sort.Strings(c.langs)
	// The default language goes first so the matcher falls back to it.
	if i := slices.Index(c.langs, c.defaultLang); i > 0 {
		c.langs = append([]string{c.defaultLang}, slices.Delete(c.langs, i, i+1)...)
	}
	tags := make([]language.Tag, len(c.langs))
	for i, lang := range c.langs {
		tags[i] = language.Make(lang)
	}
	c.matcher = language.NewMatcher(tags)
}

// Languages returns the catalog languages, default first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.langs)
}

// Match returns the catalog language closest to lang, which may be a BCP 47
// tag ("pt-BR") or an Accept-Language header value ("es-ES,es;q=0.9").
func (c *Catalog) Match(lang string) string {
	if _, ok := c.templates[lang]; ok {
		return lang
	}
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}
	_, i, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.defaultLang
	}
	return c.langs[i]
}

// Translate renders the template for key in lang. It falls back to the
// default language and reports false when neither has the key.
func (c *Catalog) Translate(lang, key string, values map[string]any) (string, bool) {
	tmpl, ok := c.template(c.Match(lang), key)
	if !ok {
		return "", false
	}
	return substitute(tmpl, values), true
}

// Render returns the message of e in lang with label in place of %{field}.
// Errors without a translation key, or whose key has no template, keep
// their own message.
func (c *Catalog) Render(lang string, e validator.ValidationError, label string) string {
	if e.TranslationKey == "" {
		return e.Message
	}
	tmpl, ok := c.template(c.Match(lang), e.TranslationKey)
	if !ok {
		return e.Message
	}
	values := make(map[string]any, len(e.TranslationValues)+1)
	maps.Copy(values, e.TranslationValues)
	if label == "" {
		label = e.Field
	}
	values["field"] = label
	return substitute(tmpl, values)
}

// RenderAll returns errs with every message rendered in lang. label maps a
// field to its display name and may be nil.
func (c *Catalog) RenderAll(lang string, errs validator.ValidationErrors, label func(field string) string) validator.ValidationErrors {
	if len(errs) == 0 {
		return errs
	}
	out := make(validator.ValidationErrors, len(errs))
	for i, e := range errs {
		name := e.Field
		if label != nil {
			name = label(e.Field)
		}
		e.Message = c.Render(lang, e, name)
		out[i] = e
	}
	return out
}

func (c *Catalog) template(lang, key string) (string, bool) {
	if tree, ok := c.templates[lang]; ok {
		if tmpl, ok := lookup(tree, key); ok {
			return tmpl, true
		}
	}
	if c.logMissing {
		c.logger.Warn("message template not found", slog.String("lang", lang), slog.String("key", key))
	}
	if lang == c.defaultLang {
		return "", false
	}
	if tree, ok := c.templates[c.defaultLang]; ok {
		return lookup(tree, key)
	}
	return "", false
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders. Unknown names are left in place.
func substitute(tmpl string, values map[string]any) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := values[name]; ok {
			return fmt.Sprint(v)
		}
		return match
	})
}

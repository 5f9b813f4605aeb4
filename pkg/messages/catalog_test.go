package messages_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhn78/framework/pkg/logger"
	"github.com/jhn78/framework/pkg/messages"
	"github.com/jhn78/framework/pkg/validator"
)

func requiredError(t *testing.T, field string) validator.ValidationError {
	t.Helper()
	err := validator.Use(validator.NotNull()).Validate(field, nil, validator.StrictConfig)
	require.NotNil(t, err)
	return *err
}

func TestDefault(t *testing.T) {
	t.Parallel()

	c := messages.Default()
	assert.Equal(t, []string{"en", "es"}, c.Languages())

	e := requiredError(t, "email")
	assert.Equal(t, "E-mail is not set", c.Render("en", e, "E-mail"))
	assert.Equal(t, "E-mail no está informado", c.Render("es", e, "E-mail"))

	t.Run("parameters", func(t *testing.T) {
		err := validator.Use(validator.NumberBetween(1, 10)).Validate("qty", 12, validator.StrictConfig)
		require.NotNil(t, err)
		assert.Equal(t, err.Message, c.Render("en", *err, "qty"))
		assert.Equal(t, "Cantidad tiene que estar entre 1 y 10", c.Render("es", *err, "Cantidad"))
	})

	t.Run("label defaults to field", func(t *testing.T) {
		assert.Equal(t, "email is not set", c.Render("en", e, ""))
	})

	t.Run("every generated key has an English template", func(t *testing.T) {
		keys := []string{
			"validation.required", "validation.exact_length", "validation.min_length",
			"validation.max_length", "validation.string_case", "validation.format",
			"validation.invalid_format", "validation.decimals", "validation.number_is",
			"validation.number_between", "validation.no_repeat", "validation.count_is",
			"validation.date_only", "validation.state_required", "validation.state_forbidden",
			"validation.state_unknown", "validation.kind",
		}
		for _, key := range keys {
			_, ok := c.Translate("en", key, nil)
			assert.True(t, ok, key)
			_, ok = c.Translate("es", key, nil)
			assert.True(t, ok, key)
		}
	})
}

func TestFallback(t *testing.T) {
	t.Parallel()

	c := messages.Default()
	e := requiredError(t, "email")

	t.Run("regional tag matches base language", func(t *testing.T) {
		assert.Equal(t, "es", c.Match("es-MX"))
		assert.Equal(t, "E-mail no está informado", c.Render("es-MX", e, "E-mail"))
	})

	t.Run("accept-language header", func(t *testing.T) {
		assert.Equal(t, "es", c.Match("fr-FR,es;q=0.8,en;q=0.5"))
	})

	t.Run("unknown language uses default", func(t *testing.T) {
		assert.Equal(t, "en", c.Match("ja"))
		assert.Equal(t, "en", c.Match("not a tag!"))
		assert.Equal(t, "E-mail is not set", c.Render("ja", e, "E-mail"))
	})

	t.Run("missing key keeps message", func(t *testing.T) {
		e := validator.ValidationError{Field: "x", Message: "x is odd", TranslationKey: "validation.odd"}
		assert.Equal(t, "x is odd", c.Render("es", e, "X"))
	})

	t.Run("custom message is never replaced", func(t *testing.T) {
		err := validator.Use(validator.NotNull(), validator.WithMessage("%{field} please")).Validate("name", nil, validator.StrictConfig)
		require.NotNil(t, err)
		assert.Equal(t, "name please", c.Render("es", *err, "Nombre"))
	})

	t.Run("missing key in language falls back to default", func(t *testing.T) {
		c, err := messages.Parse([]byte(`
en:
  validation:
    required: "%{field} is missing"
    extra: "only english"
es:
  validation:
    required: "falta %{field}"
`))
		require.NoError(t, err)
		s, ok := c.Translate("es", "validation.extra", nil)
		assert.True(t, ok)
		assert.Equal(t, "only english", s)

		_, ok = c.Translate("es", "validation.none", nil)
		assert.False(t, ok)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("merges files in order", func(t *testing.T) {
		c, err := messages.Load([]string{"catalogs/en.yaml", "testdata/extra.yaml", "testdata/extra.json"})
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "de", "fr"}, c.Languages())

		e := requiredError(t, "email")
		assert.Equal(t, "Please fill in E-mail", c.Render("en", e, "E-mail"))
		assert.Equal(t, "E-mail est obligatoire", c.Render("fr", e, "E-mail"))
		assert.Equal(t, "E-mail fehlt", c.Render("de-AT", e, "E-mail"))

		s, ok := c.Translate("en", "validation.date_only", map[string]any{"field": "Due"})
		assert.True(t, ok)
		assert.Equal(t, "Due has a time part", s)
	})

	t.Run("default language option", func(t *testing.T) {
		c, err := messages.Load([]string{"testdata/extra.yaml"}, messages.WithDefaultLanguage("fr"))
		require.NoError(t, err)
		assert.Equal(t, "fr", c.Languages()[0])
		assert.Equal(t, "fr", c.Match("ja"))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := messages.Load([]string{"testdata/missing.yaml"})
		assert.ErrorIs(t, err, messages.ErrFailedToReadFile)

		_, err = messages.Load([]string{"testdata/extra.toml"})
		assert.ErrorIs(t, err, messages.ErrUnsupportedFormat)

		_, err = messages.Load([]string{"testdata/broken.yaml"})
		assert.ErrorIs(t, err, messages.ErrInvalidCatalog)

		_, err = messages.Load(nil)
		assert.ErrorIs(t, err, messages.ErrEmptyCatalog)

		_, err = messages.Parse([]byte("en: ["))
		assert.ErrorIs(t, err, messages.ErrFailedToParseYAML)
	})
}

func TestExtend(t *testing.T) {
	t.Parallel()

	c, err := messages.Extend([]string{"testdata/extra.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es", "fr"}, c.Languages())

	e := requiredError(t, "email")
	assert.Equal(t, "Please fill in E-mail", c.Render("en", e, "E-mail"))
	assert.Equal(t, "E-mail no está informado", c.Render("es", e, "E-mail"))
	assert.Equal(t, "E-mail est obligatoire", c.Render("fr", e, "E-mail"))

	s, ok := c.Translate("fr", "validation.date_only", map[string]any{"field": "Due"})
	assert.True(t, ok, "keys missing from the file fall back to the built-in default language")
	assert.Equal(t, "Due has a time part", s)

	assert.Equal(t, "E-mail is not set", messages.Default().Render("en", e, "E-mail"),
		"extending does not alter the built-in catalog")

	_, err = messages.Extend([]string{"testdata/missing.yaml"})
	assert.ErrorIs(t, err, messages.ErrFailedToReadFile)
}

func TestRenderAll(t *testing.T) {
	t.Parallel()

	c := messages.Default()
	errs := validator.Check(validator.StrictConfig, "email", "E-mail", nil,
		validator.Use(validator.NotNull()),
	)
	labels := map[string]string{"email": "Correo"}

	out := c.RenderAll("es", errs, func(field string) string { return labels[field] })
	require.Len(t, out, 1)
	assert.Equal(t, "Correo no está informado", out[0].Message)
	assert.Equal(t, "E-mail is not set", errs[0].Message, "input is not modified")

	assert.Nil(t, c.RenderAll("es", nil, nil))
}

func TestSubstitution(t *testing.T) {
	t.Parallel()

	c, err := messages.Parse([]byte(`en: {greeting: "Hi %{name}, %{unknown} stays"}`))
	require.NoError(t, err)
	s, ok := c.Translate("en", "greeting", map[string]any{"name": "Ann"})
	assert.True(t, ok)
	assert.Equal(t, "Hi Ann, %{unknown} stays", s)
}

func TestMissingLogging(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	c := messages.Default(
		messages.WithLogger(logger.New(logger.WithOutput(buf), logger.WithTextFormatter())),
		messages.WithMissingLogging(true),
	)
	_, ok := c.Translate("es", "validation.none", nil)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "message template not found")
	assert.Contains(t, buf.String(), "key=validation.none")
}

func TestConcurrentRender(t *testing.T) {
	t.Parallel()

	c := messages.Default()
	e := requiredError(t, "email")
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "E-mail no está informado", c.Render("es", e, "E-mail"))
		}()
	}
	wg.Wait()
}

// Package messages renders validation errors in the caller's language.
//
// Rules report a translation key and the values of their parameters next to
// the English message. A Catalog maps those keys to templates per language:
//
//	en:
//	  validation:
//	    required: "%{field} is not set"
//	es:
//	  validation:
//	    required: "%{field} no está informado"
//
// Keys are looked up with dot notation (validation.required). Placeholders
// are filled from ValidationError.TranslationValues, except %{field}, which
// receives the property label given to Render.
//
// Lookup order is the requested language (matched with golang.org/x/text
// language matching, so "es-MX" finds "es"), then the default language, then
// the error's own message. Errors carrying a custom message have no key and
// are never replaced.
//
//	catalog := messages.Default()
//	for _, e := range errs {
//	    fmt.Println(catalog.Render("es", e, labels[e.Field]))
//	}
//
// Extend overrides selected templates from files while the built-in catalogs
// cover every other key.
package messages

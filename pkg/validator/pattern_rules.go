package validator

import (
	"fmt"
	"regexp"
)

var (
	emailRegex     = fullMatch(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,63}`)
	telephoneRegex = fullMatch(`((\+|00)\d\d)? *(\([ 0-9]+\))? *[0-9][ \-.0-9]+`)
	urlRegex       = fullMatch(`(?i)(https?://)?[\da-z.\-]+\.[a-z.]{2,6}[/\w .\-~%+=&?#:]*`)
	fileNameRegex  = fullMatch(`[^\\/:*?"<>|\x00-\x1f]+`)
)

// fullMatch compiles pattern so that it only matches whole strings.
func fullMatch(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + pattern + `)$`)
}

// checkFormat is shared by every regex-based variant: empty and nil strings pass.
func checkFormat(rule string, re *regexp.Regexp, format string, value any) *Violation {
	s, _ := stringOf(rule, value)
	if s == "" || re.MatchString(s) {
		return nil
	}
	if format == "" {
		return violation("validation.invalid_format", FieldPlaceholder+" has an incorrect format", map[string]any{})
	}
	return violation("validation.format",
		fmt.Sprintf("%s does not have a valid %s format", FieldPlaceholder, format),
		map[string]any{"format": format},
	)
}

type regexRule struct {
	pattern string
	re      *regexp.Regexp
	format  string
}

// Regex requires the whole string to match pattern. format is a human label
// for the expected format used in messages and may be empty.
func Regex(pattern, format string) Rule {
	if pattern == "" {
		panic(invalidRule("Regex pattern must not be empty"))
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		panic(invalidRule("Regex pattern %q: %v", pattern, err))
	}
	return regexRule{pattern: pattern, re: re, format: format}
}

func (r regexRule) Check(value any) *Violation {
	return checkFormat("Regex", r.re, r.format, value)
}

func (r regexRule) Requirement() string {
	if r.format != "" {
		return fmt.Sprintf("with a valid %s format", r.format)
	}
	return fmt.Sprintf("matching %s", r.pattern)
}

type emailRule struct{}

// Email requires an e-mail address.
func Email() Rule { return emailRule{} }

func (emailRule) Check(value any) *Violation {
	return checkFormat("Email", emailRegex, "e-mail", value)
}

func (emailRule) Requirement() string { return "with a valid e-mail format" }

type telephoneRule struct{}

// Telephone requires a phone number with an optional international prefix
// and area code.
func Telephone() Rule { return telephoneRule{} }

func (telephoneRule) Check(value any) *Violation {
	return checkFormat("Telephone", telephoneRegex, "telephone", value)
}

func (telephoneRule) Requirement() string { return "with a valid telephone format" }

type urlRule struct{}

// URL requires a web address, the http(s) scheme being optional.
func URL() Rule { return urlRule{} }

func (urlRule) Check(value any) *Violation {
	return checkFormat("URL", urlRegex, "URL", value)
}

func (urlRule) Requirement() string { return "with a valid URL format" }

type fileNameRule struct{}

// FileName rejects path separators, reserved and control characters.
func FileName() Rule { return fileNameRule{} }

func (fileNameRule) Check(value any) *Violation {
	return checkFormat("FileName", fileNameRegex, "file name", value)
}

func (fileNameRule) Requirement() string { return "with a valid file name format" }

package messages

import "errors"

var (
	ErrFailedToReadFile  = errors.New("failed to read message catalog")
	ErrFailedToParseYAML = errors.New("failed to parse YAML catalog")
	ErrFailedToParseJSON = errors.New("failed to parse JSON catalog")
	ErrUnsupportedFormat = errors.New("unsupported catalog file format")
	ErrInvalidCatalog    = errors.New("invalid catalog structure")
	ErrEmptyCatalog      = errors.New("catalog has no languages")
)

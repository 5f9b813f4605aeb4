package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhn78/framework/pkg/logger"
	"github.com/jhn78/framework/pkg/messages"
	"github.com/jhn78/framework/pkg/schema"
	"github.com/jhn78/framework/pkg/validator"
)

// errRecordsInvalid is returned when at least one record fails. The
// failures themselves are already printed.
var errRecordsInvalid = errors.New("records failed validation")

type validateOptions struct {
	schemaPath   string
	strict       bool
	lang         string
	catalogPaths []string
	output       string
}

// recordResult is one record in JSON output.
type recordResult struct {
	Record int                        `json:"record"`
	Valid  bool                       `json:"valid"`
	Error  string                     `json:"error,omitempty"`
	Errors validator.ValidationErrors `json:"errors,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate [records.yaml]",
		Short: "Validate records against a schema",
		Long: `Validate a YAML list of records (or a single record) against a schema.
Reads standard input when the file is "-".

Each failure is printed as:
  record N: field: message

Examples:
  # Validate with the strictness from VALIDATION_STRICT
  rulecheck validate --schema order.yaml orders.yaml

  # Accept legacy data and print Spanish messages
  rulecheck validate --schema order.yaml --strict=false --lang es orders.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.settings.Validation()
			if cmd.Flags().Changed("strict") {
				cfg.Lenient = !opts.strict
			}
			return a.validate(opts, cfg, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.schemaPath, "schema", "s", "", "Schema file (YAML)")
	cmd.Flags().BoolVar(&opts.strict, "strict", true, "Enforce rules marked disable_on_corrupt (default from VALIDATION_STRICT)")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "Render messages in this language (e.g. en, es)")
	cmd.Flags().StringSliceVar(&opts.catalogPaths, "messages", nil, "Message catalog files (YAML or JSON) layered over the built-in ones")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (a *app) validate(opts validateOptions, cfg validator.Config, recordsPath string) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	s, err := schema.Load(opts.schemaPath, schema.WithLogger(a.log))
	if err != nil {
		return err
	}
	catalog, err := a.catalog(opts)
	if err != nil {
		return err
	}
	records, err := readRecords(recordsPath)
	if err != nil {
		return err
	}

	labels := make(map[string]string)
	for _, d := range s.Describe() {
		labels[d.Name] = d.Label
	}
	label := func(field string) string { return labels[field] }

	results := make([]recordResult, 0, len(records))
	failed := 0
	var skipped []error
	for i, record := range records {
		res := recordResult{Record: i + 1}
		errs, err := s.Check(record, cfg)
		switch {
		case err != nil:
			res.Error = err.Error()
			skipped = append(skipped, err)
			a.log.Warn("record skipped",
				logger.Group("record",
					slog.Int("index", res.Record),
					logger.State(record[s.StateProperty()]),
				),
				logger.Error(err),
			)
		case catalog != nil:
			res.Errors = catalog.RenderAll(opts.lang, errs, label)
		default:
			res.Errors = errs
		}
		res.Valid = res.Error == "" && len(res.Errors) == 0
		if !res.Valid {
			failed++
		}
		results = append(results, res)
	}

	if opts.output == "json" {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res.Error != "" {
				a.printf("record %d: %s\n", res.Record, res.Error)
			}
			for _, e := range res.Errors {
				a.printf("record %d: %s: %s\n", res.Record, e.Field, e.Message)
			}
		}
	}

	a.log.Info("validation finished",
		logger.Entity(s.Entity()),
		logger.Count(len(records)),
		slog.Int("failed", failed),
		slog.Bool("strict", !cfg.Lenient),
		slog.Int("skipped", len(skipped)),
		logger.Errors(skipped...),
	)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errRecordsInvalid, failed, len(records))
	}
	return nil
}

// catalog returns nil when messages are printed as generated.
func (a *app) catalog(opts validateOptions) (*messages.Catalog, error) {
	if opts.lang == "" && len(opts.catalogPaths) == 0 {
		return nil, nil
	}
	catOpts := []messages.Option{
		messages.WithLogger(a.log),
		messages.WithMissingLogging(true),
	}
	if len(opts.catalogPaths) == 0 {
		return messages.Default(catOpts...), nil
	}
	return messages.Extend(opts.catalogPaths, catOpts...)
}

// readRecords decodes a YAML list of mappings, or a single mapping.
func readRecords(path string) ([]schema.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse records %s: %w", path, err)
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []schema.Record{v}, nil
	case []any:
		records := make([]schema.Record, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("record %d is not a mapping: %T", i+1, item)
			}
			records = append(records, m)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("records must be a list of mappings, got %T", raw)
	}
}

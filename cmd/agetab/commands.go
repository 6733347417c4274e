package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"agetab/internal/authz"
	"agetab/internal/convert"
	"agetab/internal/diagnostic"
	"agetab/internal/document"
	"agetab/internal/logging"
	"agetab/internal/profile"
	"agetab/internal/schema"
)

type options struct {
	SchemaPath   string
	DocumentPath string
	ProfilePath  string
	Allow        []string
	GenerateIDs  bool
	Dump         bool
	LogLevel     string
	LogFormat    string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "agetab",
		Short:         "Convert tabular documents into a typed object graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.SchemaPath, "schema", "s", "", "Path to the schema YAML file")
	flags.StringVarP(&opts.DocumentPath, "document", "d", "", "Path to the document YAML file")
	flags.StringVarP(&opts.ProfilePath, "profile", "p", "", "Path to a syntax profile HCL file")
	flags.StringSliceVar(&opts.Allow, "allow", nil,
		"Permitted schema extensions: custom-class, custom-attribute, custom-relation, custom-qualifier or all")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "Log format: text or json")

	_ = cmd.MarkPersistentFlagRequired("schema")
	_ = cmd.MarkPersistentFlagRequired("document")

	cmd.AddCommand(newConvertCommand(&opts), newCheckCommand(&opts))

	return cmd
}

func newConvertCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a document and print the resulting objects",
		Long: "Convert a document against a schema.\n\n" +
			"Examples:\n" +
			"  agetab convert -s schema.yaml -d samples.yaml\n" +
			"  agetab convert -s schema.yaml -d samples.yaml --allow all --generate-ids --dump\n",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd.OutOrStdout(), cmd.ErrOrStderr(), *opts)
		},
	}

	cmd.Flags().BoolVar(&opts.GenerateIDs, "generate-ids", false, "Assign generated ids to objects without one")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "Dump the converted objects in full")

	return cmd
}

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Convert a document and report diagnostics only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, log, err := convertDocument(cmd.ErrOrStderr(), *opts)
			if err != nil {
				return reportFailure(cmd.OutOrStdout(), log, err)
			}

			printWarnings(cmd.OutOrStdout(), res.Diagnostics)
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d object(s)\n", len(res.Module.Objects()))

			return nil
		},
	}
}

func runConvert(stdout, stderr io.Writer, opts options) error {
	res, log, err := convertDocument(stderr, opts)
	if err != nil {
		return reportFailure(stdout, log, err)
	}

	printWarnings(stdout, res.Diagnostics)

	views := renderModule(res.Module)

	if opts.Dump {
		spew.Fdump(stdout, views)
		return nil
	}

	fmt.Fprintf(stdout, "%d object(s), %d inferred type(s), %d inverse relation(s)\n",
		len(views), len(res.InferredTypes), res.InverseRelations)

	for _, v := range views {
		fmt.Fprintf(stdout, "  %s\n", v.summary())
	}

	return nil
}

// convertDocument loads every input named by opts and runs the conversion.
// The returned log is nil when loading failed.
func convertDocument(stderr io.Writer, opts options) (*convert.Result, *diagnostic.Log, error) {
	logger := logging.New(opts.LogLevel, opts.LogFormat, stderr)

	prof := profile.Default()

	if opts.ProfilePath != "" {
		p, err := profile.LoadFile(opts.ProfilePath)
		if err != nil {
			return nil, nil, err
		}

		prof = p
	}

	perms, err := authz.NewStatic(opts.Allow...)
	if err != nil {
		return nil, nil, err
	}

	sch, err := schema.LoadFile(opts.SchemaPath)
	if err != nil {
		return nil, nil, err
	}

	doc, err := document.LoadFile(opts.DocumentPath, prof)
	if err != nil {
		return nil, nil, err
	}

	cfg := convert.DefaultConfig()
	cfg.Profile = prof
	cfg.Permissions = perms
	cfg.Logger = logger

	if opts.GenerateIDs {
		cfg.IDGenerator = convert.UUIDGenerator{}
	}

	log := diagnostic.NewLog("Converting document "+opts.DocumentPath, logger)
	res, err := convert.NewConverter(sch, cfg).Convert(doc, log)

	return res, log, err
}

func reportFailure(w io.Writer, log *diagnostic.Log, err error) error {
	var f *convert.Failure
	if log == nil || !errors.As(err, &f) {
		return err
	}

	log.Print(w, slog.LevelWarn)

	fmt.Fprintln(w, "Errors:")

	for _, d := range f.Diagnostics.Errors {
		fmt.Fprintf(w, "  %s\n", d)
	}

	return fmt.Errorf("conversion failed with %d error(s)", len(f.Diagnostics.Errors))
}

func printWarnings(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		fmt.Fprintln(w, d.String())
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alessio/schemaguard/schema"
	"github.com/alessio/schemaguard/schemafile"
)

var (
	schemaPath string
	quiet      bool
)

var validateCmd = &cobra.Command{
	Use:   "validate --schema schema.yaml document.json [document.json ...]",
	Short: "Check JSON documents against a schema",
	Long: `Compiles the schema once and checks every document against it. Each
violation prints as "<path>: <message>". The exit status is non-zero when
any document fails to conform.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema document (YAML or JSON)")
	validateCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-violation output, only set the exit status")
	_ = validateCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	node, err := schemafile.ParseFile(schemaPath)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	validator, err := schema.Compile(node)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	zap.S().Debugw("schema compiled", "schema", schemaPath)

	invalid := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if quiet {
			ok, err := validator.CheckJSON(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if !ok {
				invalid++
				zap.S().Warnw("document invalid", "document", path)
			}
			continue
		}

		violations, err := validator.ErrorsJSON(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(violations) == 0 {
			zap.S().Infow("document valid", "document", path)
			continue
		}
		invalid++
		zap.S().Warnw("document invalid", "document", path, "violations", len(violations))
		for _, v := range violations {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, schema.Format(v))
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d documents failed validation", invalid, len(args))
	}
	return nil
}

// Command mold merges stored data with changes under a field whitelist and prints the result.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/askretov/mold"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errCannotEncode = errors.New("cannot encode report")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "mold",
		Short:        "Merge and filter entity data through a field whitelist",
		SilenceUsage: true,
	}
	cmd.AddCommand(applyCmd())
	return cmd
}

func applyCmd() *cobra.Command {
	var fields []string
	var basePath string
	var changesPath string
	var lenient bool
	var pretty bool

	c := &cobra.Command{
		Use:   "apply",
		Short: "Apply changes on top of base data and print validated and changed fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := loadFields(basePath)
			if err != nil {
				return fmt.Errorf("base: %w", err)
			}
			changes, err := loadFields(changesPath)
			if err != nil {
				return fmt.Errorf("changes: %w", err)
			}
			mode := mold.Strict
			if lenient {
				mode = mold.Lenient
			}
			return apply(cmd.OutOrStdout(), fields, base, changes, mode, pretty)
		},
	}

	c.Flags().StringSliceVarP(&fields, "fields", "f", nil, "Whitelisted field names (required)")
	c.Flags().StringVarP(&basePath, "base", "b", "", "YAML or JSON file with stored data (optional)")
	c.Flags().StringVarP(&changesPath, "changes", "c", "", "YAML or JSON file with changes (optional)")
	c.Flags().BoolVar(&lenient, "lenient", false, "Skip unknown fields instead of failing")
	c.Flags().BoolVar(&pretty, "pretty", false, "Indent output")

	_ = c.MarkFlagRequired("fields")
	return c
}

// apply runs an Immutable mold with a pass-through validation and writes the report to w
func apply(w io.Writer, fields []string, base, changes mold.Fields, mode mold.Mode, pretty bool) error {
	shape := mold.NewShape(fields, passThrough(fields))
	im, err := mold.NewImmutable(shape, base, changes, mode)
	if err != nil {
		return err
	}
	validated, err := im.Validated()
	if err != nil {
		return err
	}
	changed, err := im.ChangesValidated()
	if err != nil {
		return err
	}
	report := mold.NewFields(
		mold.F("validated", validated),
		mold.F("changes", changed),
		mold.F("status", im.Status().String()),
	)
	out := report.JSON(pretty)
	if out == nil {
		return errCannotEncode
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// passThrough keeps raw values as they are, ordered as the whitelist
func passThrough(fields []string) mold.ValidateFunc {
	return func(raw mold.Raw) (mold.Fields, error) {
		var result mold.Fields
		all := raw.All()
		for _, name := range fields {
			if value, ok := all.Get(name); ok {
				result.Set(name, value)
			}
		}
		return result, nil
	}
}

func loadFields(path string) (mold.Fields, error) {
	var result mold.Fields
	if strings.TrimSpace(path) == "" {
		return result, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return result, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return result, nil
	}
	if err := yaml.Unmarshal(data, &result); err != nil {
		return result, err
	}
	return result, nil
}

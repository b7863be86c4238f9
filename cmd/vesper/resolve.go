package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vesper-lang/vesper/internal/cli/demo"
	"github.com/vesper-lang/vesper/internal/cli/ui"
	"github.com/vesper-lang/vesper/internal/compiler/conversion"
	"github.com/vesper-lang/vesper/internal/compiler/overload"
)

var resolveArgs string

func init() {
	resolveCmd.Flags().StringVar(&resolveArgs, "args", "", "Comma-separated argument types for the call")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <function>",
	Short: "Resolve an overloaded call against the demo registry",
	Long: `Run overload resolution for a call to one of the demo world's free
functions and report the winning candidate with the conversion applied
to each argument. Failed resolutions print the same diagnostics the
compiler emits: no match, ambiguity, or a const violation.

  vesper resolve print --args int
  vesper resolve lerp --args "int, int"
  vesper resolve clamp --args int`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		reg := demo.BuildRegistry()

		candidates := reg.Overloads(name)
		if len(candidates) == 0 {
			noColor := flagNoColor || (cfg != nil && cfg.NoColor)
			ui.DidYouMean(os.Stderr, ui.FindSimilar(name, reg.FunctionNames()), noColor)
			return fmt.Errorf("unknown function %q", name)
		}

		argTypes, err := demo.ParseTypeList(reg, resolveArgs)
		if err != nil {
			suggestSpelling(err)
			return err
		}

		resolver := overload.NewResolver(reg, conversion.NewEngine(reg))
		match, err := resolver.Resolve(name, candidates, argTypes)

		sess.Logger.Debug("overload resolution finished",
			zap.String("function", name),
			zap.Int("candidates", len(candidates)),
			zap.Bool("resolved", err == nil))

		if err != nil {
			var resErr *overload.ResolutionError
			if cfg.Output == "json" && errors.As(err, &resErr) {
				out, jerr := resErr.ToJSON()
				if jerr != nil {
					return jerr
				}
				fmt.Println(out)
				return fmt.Errorf("resolution failed")
			}
			return err
		}

		rendered := make([]string, len(argTypes))
		for i, at := range argTypes {
			rendered[i] = reg.RenderType(at)
		}
		call := fmt.Sprintf("%s(%s)", name, strings.Join(rendered, ", "))

		type argStep struct {
			Kind    string `json:"kind,omitempty"`
			Cost    int    `json:"cost"`
			Default bool   `json:"default,omitempty"`
		}
		steps := make([]argStep, len(match.ArgConversions))
		for i, c := range match.ArgConversions {
			if c == nil {
				steps[i] = argStep{Default: true}
				continue
			}
			steps[i] = argStep{Kind: c.Kind.String(), Cost: c.Cost}
		}

		if cfg.Output == "json" {
			return printJSON(struct {
				Call      string    `json:"call"`
				Picked    string    `json:"picked"`
				TotalCost int       `json:"total_cost"`
				Args      []argStep `json:"args"`
			}{Call: call, Picked: reg.RenderFunction(match.Function), TotalCost: match.TotalCost, Args: steps})
		}

		table := ui.NewKeyValueTable(os.Stdout, cfg.NoColor)
		table.AddRow("call", call)
		table.AddRow("picked", reg.RenderFunction(match.Function))
		table.AddRow("total cost", strconv.Itoa(match.TotalCost))
		for i, s := range steps {
			label := "arg " + strconv.Itoa(i)
			switch {
			case s.Default:
				table.AddRow(label, "default value")
			case s.Cost == 0:
				table.AddRow(label, s.Kind)
			default:
				table.AddRow(label, fmt.Sprintf("%s (cost %d)", s.Kind, s.Cost))
			}
		}
		table.Render()
		return nil
	},
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vesper-lang/vesper/internal/cli/demo"
	"github.com/vesper-lang/vesper/internal/cli/ui"
	"github.com/vesper-lang/vesper/internal/compiler/conversion"
)

var convertExplicit bool

func init() {
	convertCmd.Flags().BoolVar(&convertExplicit, "explicit", false, "Admit cast-only conversions")
}

var convertCmd = &cobra.Command{
	Use:   "convert <from> <to>",
	Short: "Explain the conversion between two type spellings",
	Long: `Resolve both spellings against the built-in demo registry and report the
conversion the engine picks: its kind, its cost on the ladder, whether
it applies implicitly, and the method behind user-defined steps.

Spellings use source syntax, quoted when they contain spaces:

  vesper convert int int64
  vesper convert "Player@" "Entity@"
  vesper convert "const Temperature" double`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := demo.BuildRegistry()

		from, err := demo.ParseType(reg, args[0])
		if err != nil {
			suggestSpelling(err)
			return err
		}
		to, err := demo.ParseType(reg, args[1])
		if err != nil {
			suggestSpelling(err)
			return err
		}

		opts := conversion.Implicit()
		if convertExplicit {
			opts = conversion.Explicit()
		}

		engine := conversion.NewEngine(reg)
		conv, ok := engine.Find(from, to, opts)
		sess.Logger.Debug("conversion search finished",
			zap.String("from", reg.RenderType(from)),
			zap.String("to", reg.RenderType(to)),
			zap.Bool("found", ok))

		type result struct {
			From     string `json:"from"`
			To       string `json:"to"`
			Found    bool   `json:"found"`
			Kind     string `json:"kind,omitempty"`
			Cost     int    `json:"cost"`
			Implicit bool   `json:"implicit"`
			Method   string `json:"method,omitempty"`
		}

		fromName := reg.RenderType(from)
		toName := reg.RenderType(to)

		if !ok {
			if cfg.Output == "json" {
				return printJSON(result{From: fromName, To: toName, Found: false})
			}
			fmt.Printf("no conversion from %s to %s\n", fromName, toName)
			if !convertExplicit {
				if _, castOnly := engine.Find(from, to, conversion.Explicit()); castOnly {
					fmt.Println("an explicit cast exists; rerun with --explicit")
				}
			}
			return nil
		}

		var method string
		if conv.Method != 0 {
			if fn, found := reg.Function(conv.Method); found {
				method = reg.RenderFunction(fn)
			}
		}

		if cfg.Output == "json" {
			return printJSON(result{
				From:     fromName,
				To:       toName,
				Found:    true,
				Kind:     conv.Kind.String(),
				Cost:     conv.Cost,
				Implicit: conv.IsImplicit(),
				Method:   method,
			})
		}

		table := ui.NewKeyValueTable(os.Stdout, cfg.NoColor)
		table.AddRow("from", fromName)
		table.AddRow("to", toName)
		table.AddRow("kind", conv.Kind.String())
		table.AddRow("cost", strconv.Itoa(conv.Cost))
		table.AddRow("implicit", strconv.FormatBool(conv.IsImplicit()))
		if method != "" {
			table.AddRow("method", method)
		}
		if conv.Target != 0 {
			table.AddRow("through", reg.TypeName(conv.Target))
		}
		table.Render()
		return nil
	},
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vesper-lang/vesper/internal/cli/demo"
	"github.com/vesper-lang/vesper/internal/cli/ui"
	"github.com/vesper-lang/vesper/internal/compiler/types"
)

var (
	hashFunction string
	hashMethod   string
	hashConst    bool
)

func init() {
	hashCmd.Flags().StringVar(&hashFunction, "function", "", "Hash as a function with this comma-separated parameter list")
	hashCmd.Flags().StringVar(&hashMethod, "method", "", "Hash as a method of this owner type")
	hashCmd.Flags().BoolVar(&hashConst, "const", false, "Mark the method const (only with --method)")
}

var hashCmd = &cobra.Command{
	Use:   "hash <name>",
	Short: "Print identity hashes for a name",
	Long: `Print the domain-separated identity hashes of a name: as a type and as a
plain identifier, plus as a function or method when a parameter list is
given. Parameter spellings resolve against the built-in demo registry,
so "const string, int" works but project-specific types do not.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		reg := demo.BuildRegistry()

		type row struct {
			Domain string `json:"domain"`
			Hash   string `json:"hash"`
		}
		rows := []row{
			{Domain: "type", Hash: types.HashName(name).String()},
			{Domain: "identifier", Hash: types.HashIdent(name).String()},
		}

		var params []types.Hash
		if cmd.Flags().Changed("function") || cmd.Flags().Changed("method") {
			list, err := demo.ParseTypeList(reg, hashFunction)
			if err != nil {
				suggestSpelling(err)
				return err
			}
			for _, dt := range list {
				params = append(params, dt.Hash)
			}
		}

		if cmd.Flags().Changed("function") {
			rows = append(rows, row{
				Domain: "function",
				Hash:   types.HashFunction(name, params).String(),
			})
		}
		if cmd.Flags().Changed("method") {
			owner, err := demo.ParseType(reg, hashMethod)
			if err != nil {
				suggestSpelling(err)
				return err
			}
			rows = append(rows, row{
				Domain: "method",
				Hash:   types.HashMethod(owner.Hash, name, params, hashConst, false).String(),
			})
		}

		sess.Logger.Debug("hashed name",
			zap.String("name", name),
			zap.Int("domains", len(rows)))

		if cfg.Output == "json" {
			return printJSON(rows)
		}

		table := ui.NewKeyValueTable(os.Stdout, cfg.NoColor)
		for _, r := range rows {
			table.AddRow(r.Domain, r.Hash)
		}
		table.Render()
		return nil
	},
}

package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vesper-lang/vesper/internal/cli/ui"
	"github.com/vesper-lang/vesper/internal/compiler/conversion"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Print the conversion cost ladder",
	Long: `Print every rung of the conversion cost ladder. Overload resolution sums
these per argument and picks the cheapest candidate, so the relative
order here decides which overload wins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		type rung struct {
			Cost    int    `json:"cost"`
			Family  string `json:"family"`
			Example string `json:"example"`
		}
		ladder := []rung{
			{conversion.CostExact, "exact match", "int -> int"},
			{conversion.CostConstAddition, "const or handle adjustment", "Player@ -> const Player@"},
			{conversion.CostEnumSameSize, "enum to same-size integer", "Color -> int"},
			{conversion.CostEnumDiffSize, "enum to other numeric", "Color -> double"},
			{conversion.CostWidening, "widening", "int -> int64"},
			{conversion.CostNarrowing, "narrowing", "int64 -> int8"},
			{conversion.CostSignedToUnsigned, "signed to unsigned", "int -> uint"},
			{conversion.CostUnsignedToSigned, "unsigned to signed", "uint -> int"},
			{conversion.CostIntToFloat, "integer to float", "int -> double"},
			{conversion.CostFloatToInt, "float to integer", "double -> int"},
			{conversion.CostReferenceCast, "hierarchy reference cast", "Player@ -> Entity@"},
			{conversion.CostObjectToPrimitive, "object to primitive", "Temperature -> double"},
			{conversion.CostToObject, "conversion to object", "double -> Seconds"},
			{conversion.CostVarArg, "variadic catch-all", "int -> ?"},
			{conversion.CostExplicitOnly, "explicit cast only", "opConv, opCast"},
		}

		if cfg.Output == "json" {
			return printJSON(ladder)
		}

		table := ui.NewTable(os.Stdout, []string{"Cost", "Family", "Example"}, cfg.NoColor)
		for _, r := range ladder {
			table.AddRow(strconv.Itoa(r.Cost), r.Family, r.Example)
		}
		table.Render()
		return nil
	},
}

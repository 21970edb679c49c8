package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/angelmondragon/ridefinderz-filters/pkg/querystate"
)

func newEncodeCmd() *cobra.Command {
	var (
		categories []string
		brands     []string
		engines    []string
		minPrice   int64
		maxPrice   int64
		limitMax   int64
		limitGap   int64
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the listing query string for a set of criteria",
		Example: `  filterctl encode --brand Ducati --brand KTM --max 900000
  filterctl encode --category Adventure --engine 1000plus`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := filters.Limits{MaxPrice: limitMax, Gap: limitGap}
			if err := l.Validate(); err != nil {
				return err
			}
			c := filters.Criteria{PriceRange: filters.Bounds{Min: 0, Max: l.MaxPrice}}
			var err error
			if c.Categories, err = parseLabels(categories, enums.ParseListingCategory); err != nil {
				return err
			}
			if c.Brands, err = parseLabels(brands, enums.ParseBrand); err != nil {
				return err
			}
			if c.EngineSizes, err = parseLabels(engines, enums.ParseEngineSize); err != nil {
				return err
			}
			if cmd.Flags().Changed("min") {
				c.PriceRange.Min = l.Clamp(minPrice)
			}
			if cmd.Flags().Changed("max") {
				c.PriceRange.Max = l.Clamp(maxPrice)
			}
			if c.PriceRange.Min > c.PriceRange.Max {
				return fmt.Errorf("min price %d exceeds max price %d", c.PriceRange.Min, c.PriceRange.Max)
			}
			fmt.Fprintln(cmd.OutOrStdout(), querystate.Encode(c, l).Encode())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&categories, "category", nil, "category label (repeatable)")
	cmd.Flags().StringArrayVar(&brands, "brand", nil, "brand label (repeatable)")
	cmd.Flags().StringArrayVar(&engines, "engine", nil, "engine size bucket: lt600, 600-999, 1000plus (repeatable)")
	cmd.Flags().Int64Var(&minPrice, "min", 0, "minimum price")
	cmd.Flags().Int64Var(&maxPrice, "max", 0, "maximum price")
	cmd.Flags().Int64Var(&limitMax, "max-price", filters.DefaultMaxPrice, "upper bound of the price facet")
	cmd.Flags().Int64Var(&limitGap, "gap", filters.DefaultPriceGap, "minimum slider gap")
	return cmd
}

func parseLabels[T any](raw []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, v := range raw {
		parsed, err := parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

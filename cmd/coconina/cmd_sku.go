package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/coconina/storefront/app/catalog"
	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/app/sku"
)

var (
	skuBrand    string
	skuCreator  string
	skuDate     string
	skuCategory string
	skuSeq      int
)

// coconina sku:generate
var skuGenerateCmd = &cobra.Command{
	Use:   "sku:generate",
	Short: "Build a SKU; the sequence defaults to the next free one in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := models.ParseCategory(skuCategory)
		if err != nil {
			return err
		}
		date := skuDate
		if date == "" {
			date = sku.DateCode(time.Now())
		}
		seq := skuSeq
		if seq <= 0 {
			seq = sku.NextSequenceNumber(catalog.Products(), cat)
		}

		s, err := sku.Generate(sku.Options{
			Brand:          skuBrand,
			Creator:        skuCreator,
			CollectionDate: date,
			Category:       cat,
			SequenceNumber: seq,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

// coconina sku:parse <sku>
var skuParseCmd = &cobra.Command{
	Use:   "sku:parse <sku>",
	Short: "Split a SKU into its segments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts, err := sku.Parse(args[0])
		if err != nil {
			return err
		}
		out := struct {
			sku.Parts
			Category string `json:"category,omitempty"`
			Valid    bool   `json:"valid"`
		}{Parts: parts, Valid: sku.IsValid(args[0])}
		if c, ok := sku.CategoryForCode(parts.CategoryCode); ok {
			out.Category = string(c)
		}
		return writeJSON(cmd.OutOrStdout(), out)
	},
}

// coconina sku:validate <sku>...
var skuValidateCmd = &cobra.Command{
	Use:   "sku:validate <sku>...",
	Short: "Check SKUs against the format; exits non-zero if any is invalid",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bad := 0
		for _, s := range args {
			mark := "ok"
			if !sku.IsValid(s) {
				mark = "invalid"
				bad++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", mark, s)
		}
		if bad > 0 {
			return fmt.Errorf("%d of %d SKUs invalid", bad, len(args))
		}
		return nil
	},
}

// coconina sku:datecode [YYYY-MM]
var skuDateCodeCmd = &cobra.Command{
	Use:   "sku:datecode [YYYY-MM]",
	Short: "Print the collection date code for a month (default: now)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := time.Now()
		if len(args) == 1 {
			parsed, err := time.Parse("2006-01", args[0])
			if err != nil {
				return fmt.Errorf("want YYYY-MM, got %q", args[0])
			}
			t = parsed
		}
		fmt.Fprintln(cmd.OutOrStdout(), sku.DateCode(t))
		return nil
	},
}

func init() {
	skuGenerateCmd.Flags().StringVarP(&skuBrand, "brand", "b", sku.DefaultBrand, "Brand segment")
	skuGenerateCmd.Flags().StringVar(&skuCreator, "creator", "NINA", "Creator segment")
	skuGenerateCmd.Flags().StringVarP(&skuDate, "date", "d", "", "Collection date code (default: current month)")
	skuGenerateCmd.Flags().StringVarP(&skuCategory, "category", "c", "", "Category slug")
	skuGenerateCmd.Flags().IntVarP(&skuSeq, "seq", "s", 0, "Sequence number (default: next free)")
	_ = skuGenerateCmd.MarkFlagRequired("category")
}

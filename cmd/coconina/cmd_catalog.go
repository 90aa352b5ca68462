package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/coconina/storefront/app/controllers"
	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/app/services"
	"github.com/coconina/storefront/config"
	"github.com/coconina/storefront/pkg/cache"
	"github.com/coconina/storefront/pkg/links"
)

var (
	categoryFlag string
	jsonFlag     bool
	productFlag  string
	messageFlag  string
)

// bootGateway loads config and builds the gateway the server would use.
func bootGateway(ctx context.Context) (*services.Gateway, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return services.NewGatewayFromConfig(cache.Connect(ctx)), nil
}

// coconina catalog:list
var catalogListCmd = &cobra.Command{
	Use:   "catalog:list",
	Short: "List products, optionally filtered by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := bootGateway(cmd.Context())
		if err != nil {
			return err
		}
		cat := strings.ToLower(strings.TrimSpace(categoryFlag))
		if cat == "" {
			cat = "all"
		}
		products := gw.FetchProductsByCategory(cmd.Context(), cat)
		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), products)
		}
		return printProducts(cmd.OutOrStdout(), products)
	},
}

// coconina catalog:show <id>
var catalogShowCmd = &cobra.Command{
	Use:   "catalog:show <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := bootGateway(cmd.Context())
		if err != nil {
			return err
		}
		p, ok := gw.FetchProductByID(cmd.Context(), args[0])
		if !ok {
			return fmt.Errorf("product %q not found", args[0])
		}
		return writeJSON(cmd.OutOrStdout(), p)
	},
}

// coconina cache:warm
var cacheWarmCmd = &cobra.Command{
	Use:   "cache:warm",
	Short: "Fetch the catalog from the API into the cache once",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := bootGateway(cmd.Context())
		if err != nil {
			return err
		}
		report, err := gw.Warm(cmd.Context())
		if errors.Is(err, services.ErrNotConfigured) {
			fmt.Fprintln(cmd.OutOrStdout(), "API_BASE_URL is not set; the storefront serves fixtures and nothing is cached.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Warmed %d products (%d details, %d failed) in %s\n",
			report.Products, report.Details, report.Failed, report.Took.Round(time.Millisecond))
		return nil
	},
}

// coconina cache:clear [id...]
var cacheClearCmd = &cobra.Command{
	Use:   "cache:clear [id...]",
	Short: "Drop the cached product list and the given product details",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := bootGateway(cmd.Context())
		if err != nil {
			return err
		}
		if err := gw.Invalidate(cmd.Context(), args...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared product list and %d product(s)\n", len(args))
		return nil
	},
}

// coconina whatsapp
var whatsappCmd = &cobra.Command{
	Use:   "whatsapp",
	Short: "Print a WhatsApp chat link",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		lc := controllers.LinkConfigFromEnv()
		msg := lc.DefaultMessage
		switch {
		case productFlag != "":
			msg = controllers.ProductInquiryMessage(productFlag)
		case messageFlag != "":
			msg = messageFlag
		}
		fmt.Fprintln(cmd.OutOrStdout(), links.WhatsAppURL(lc.Number, msg))
		return nil
	},
}

func printProducts(out io.Writer, products []models.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(out, "No products.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSKU\tNAME\tCATEGORY\tPRICE\tIN STOCK")
	fmt.Fprintln(w, "--\t---\t----\t--------\t-----\t--------")
	for _, p := range products {
		price := "-"
		if p.Price != nil {
			price = p.Price.StringFixed(2)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n", p.ID, p.SKU, p.Name, p.Category, price, p.InStock())
	}
	return w.Flush()
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	catalogListCmd.Flags().StringVarP(&categoryFlag, "category", "c", "all", "Category slug or \"all\"")
	catalogListCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print JSON instead of a table")
	whatsappCmd.Flags().StringVarP(&productFlag, "product", "p", "", "Product name to ask about")
	whatsappCmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Custom message")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "coconina",
	Short:         "Coco Nina storefront backend",
	Long:          "Serves the Coco Nina jewelry catalog, contact form and WhatsApp links, and provides catalog and SKU tooling.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Catalog
	rootCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(cacheWarmCmd)
	rootCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(whatsappCmd)

	// SKU
	rootCmd.AddCommand(skuGenerateCmd)
	rootCmd.AddCommand(skuParseCmd)
	rootCmd.AddCommand(skuValidateCmd)
	rootCmd.AddCommand(skuDateCodeCmd)
}

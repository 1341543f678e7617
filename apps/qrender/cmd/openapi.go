package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quatton/qrender/pkg/qapi"
	"github.com/quatton/qrender/pkg/qapi/routes"
	"github.com/spf13/cobra"
)

var openapiCmd = &cobra.Command{
	Use:     "openapi",
	Aliases: []string{"spec"},
	Short:   "Print the render agent's OpenAPI document",
	Long:    `Outputs the OpenAPI document of the render agent API without starting it. Useful for generating add-on clients.`,
	RunE:    generateOpenAPI,
}

var (
	openapiOutput    string
	openapiDowngrade bool
)

func init() {
	rootCmd.AddCommand(openapiCmd)
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "Write output to file (default stdout)")
	openapiCmd.Flags().BoolVar(&openapiDowngrade, "downgrade", true, "Downgrade OpenAPI to 3.0")
}

func generateOpenAPI(cmd *cobra.Command, args []string) error {
	api := qapi.NewApi(Version)
	routes.RegisterAPI(api.Api, nil, "")

	var (
		spec []byte
		err  error
	)
	if openapiDowngrade {
		spec, err = api.Api.OpenAPI().Downgrade()
	} else {
		spec, err = json.Marshal(api.Api.OpenAPI())
	}
	if err != nil {
		return fmt.Errorf("generating OpenAPI document: %w", err)
	}

	if openapiOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(spec))
		return nil
	}
	if err := os.WriteFile(openapiOutput, spec, 0644); err != nil {
		return fmt.Errorf("writing OpenAPI document to %s: %w", openapiOutput, err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dowjones/factiva-core-go/download"
	"github.com/dowjones/factiva-core-go/request"
)

func init() {
	taxonomyCmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "List the available taxonomy categories",
		Run:   runTaxonomyList,
	}

	downloadCmd := &cobra.Command{
		Use:   "download <category> <format>",
		Short: "Download the codes file for a taxonomy category",
		Args:  cobra.ExactArgs(2),
		Run:   runTaxonomyDownload,
	}
	downloadCmd.Flags().String("dir", ".", "Target directory for the downloaded file")
	downloadCmd.Flags().Bool("timestamp", false, "Append a timestamp to the file name")

	taxonomyCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

// taxonomyResponse is the vendor payload for the taxonomy listing.
type taxonomyResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			Name string `json:"name"`
		} `json:"attributes"`
	} `json:"data"`
}

func runTaxonomyList(cmd *cobra.Command, args []string) {
	d, err := buildDeps(cmd)
	if err != nil {
		fail("%v", err)
	}

	resp, err := d.client.APISend(cmd.Context(), request.Options{
		Method:  http.MethodGet,
		URL:     d.host + request.TaxonomyBasePath,
		Headers: d.headers,
	})
	if err != nil {
		fail("failed to list taxonomies: %v", err)
	}

	var payload taxonomyResponse
	if err := resp.JSON(&payload); err != nil {
		fail("failed to decode taxonomy listing: %v", err)
	}

	successColor.Printf("%d taxonomy categories\n", len(payload.Data))
	for _, category := range payload.Data {
		name := category.Attributes.Name
		if name == "" {
			name = category.ID
		}
		fmt.Printf("  %s\n", name)
	}
}

func runTaxonomyDownload(cmd *cobra.Command, args []string) {
	d, err := buildDeps(cmd)
	if err != nil {
		fail("%v", err)
	}

	category, format := args[0], args[1]
	targetDir, _ := cmd.Flags().GetString("dir")
	addTimestamp, _ := cmd.Flags().GetBool("timestamp")

	dl := download.New(d.client, d.obs)
	url := fmt.Sprintf("%s%s/%s/%s", d.host, request.TaxonomyBasePath, category, format)

	path, err := dl.DownloadFile(cmd.Context(), url, d.headers, category, format, targetDir, addTimestamp)
	if err != nil {
		fail("taxonomy download failed: %v", err)
	}

	successColor.Printf("saved %s\n", path)
}

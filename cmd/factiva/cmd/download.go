package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dowjones/factiva-core-go/download"
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Stream a vendor URL to a local file",
		Args:  cobra.ExactArgs(1),
		Run:   runDownload,
	}

	downloadCmd.Flags().String("name", "download", "Base name for the downloaded file")
	downloadCmd.Flags().String("ext", "json", "File extension (csv, json, xls, xlsx, avro)")
	downloadCmd.Flags().String("dir", ".", "Target directory for the downloaded file")
	downloadCmd.Flags().Bool("timestamp", false, "Append a timestamp to the file name")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) {
	d, err := buildDeps(cmd)
	if err != nil {
		fail("%v", err)
	}

	name, _ := cmd.Flags().GetString("name")
	ext, _ := cmd.Flags().GetString("ext")
	targetDir, _ := cmd.Flags().GetString("dir")
	addTimestamp, _ := cmd.Flags().GetBool("timestamp")

	dl := download.New(d.client, d.obs)
	path, err := dl.DownloadFile(cmd.Context(), args[0], d.headers, name, ext, targetDir, addTimestamp)
	if err != nil {
		fail("download failed: %v", err)
	}

	successColor.Printf("saved %s\n", path)
}

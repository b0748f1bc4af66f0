package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of the database",
	Long: `Export every vocabulary, result, saved progress and setting to a
JSON file that restore can read back, into the same or another database
type.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "backup file (default backup_YYYYMMDD_HHMMSS.json)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	output := exportOutput
	if output == "" {
		output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.backup.Export(ctx, output); err != nil {
		return err
	}
	fmt.Printf("Backup written to %s\n", output)
	return nil
}

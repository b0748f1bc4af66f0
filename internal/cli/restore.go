package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	restoreClear bool
	restoreYes   bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore a JSON backup into the database",
	Long: `Restore a backup written by export. Restored vocabularies and results
are added next to existing data unless --clear is given, which deletes
everything first.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	f := restoreCmd.Flags()
	f.BoolVar(&restoreClear, "clear", false, "delete all existing data before restoring")
	f.BoolVarP(&restoreYes, "yes", "y", false, "do not ask for confirmation with --clear")
}

func runRestore(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup file: %w", err)
	}

	if restoreClear && !restoreYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			"This will DELETE ALL existing data. Type 'yes' to continue: ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled.")
			return nil
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

	if restoreClear {
		if err := st.backup.Clear(ctx); err != nil {
			return err
		}
	}
	if err := st.backup.Import(ctx, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", path)
	return nil
}

// confirm asks prompt on w and reports whether the answer read from r is "yes".
func confirm(r io.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.TrimSpace(line) == "yes", nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wordtrainer/internal/service"
	"wordtrainer/internal/wordlist"
)

var (
	importVocabularyID int64
	importName         string
	importSourceLang   string
	importTargetLang   string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a text or YAML word list into a vocabulary",
	Long: `Import word pairs from a file into a stored vocabulary.

Files ending in .yaml or .yml are read as YAML lists, anything else as
text with one pair per line. Pairs already in the vocabulary are
skipped. Use --vocabulary to add to an existing vocabulary, or --name
to create a new one.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.Int64Var(&importVocabularyID, "vocabulary", 0, "ID of the vocabulary to add to")
	f.StringVar(&importName, "name", "", "name of a new vocabulary to create")
	f.StringVar(&importSourceLang, "source", "", "source language of the new vocabulary")
	f.StringVar(&importTargetLang, "target", "", "target language of the new vocabulary")
	importCmd.MarkFlagsMutuallyExclusive("vocabulary", "name")
	importCmd.MarkFlagsOneRequired("vocabulary", "name")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read word list: %w", err)
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

	vocabID := importVocabularyID
	if importName != "" {
		v, err := st.vocab.CreateVocabulary(ctx, service.VocabularyInput{
			Name:       importName,
			SourceLang: importSourceLang,
			TargetLang: importTargetLang,
		})
		if err != nil {
			return err
		}
		vocabID = v.ID
		fmt.Printf("Created vocabulary %q (id %d)\n", v.Name, v.ID)
	}

	progress := func(total, processed, skipped int) {
		fmt.Fprintf(os.Stderr, "\rImporting %d/%d (%d skipped)", processed, total, skipped)
		if processed == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	var report service.ImportReport
	if wordlist.IsYAML(path) {
		report, err = st.vocab.ImportYAML(ctx, vocabID, data, progress)
	} else {
		report, err = st.vocab.ImportText(ctx, vocabID, string(data), progress)
	}
	if errors.Is(err, service.ErrNothingToImport) {
		return fmt.Errorf("%s: no word pairs found", path)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d of %d pairs, %d already present\n", report.Added, report.Total, report.Skipped)
	return nil
}

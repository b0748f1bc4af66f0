package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"wordtrainer/internal/service"
	"wordtrainer/internal/session"
	"wordtrainer/internal/tui"
	"wordtrainer/internal/wordlist"
)

var (
	practiceReverse       bool
	practiceRepeatInvalid bool
	practiceStrict        bool
	practiceLimit         int
	practiceResume        bool
	practiceSaveMissed    string
)

var practiceCmd = &cobra.Command{
	Use:   "practice <file|vocabulary-id>",
	Short: "Practise a word list file or a stored vocabulary",
	Long: `Practise word pairs interactively.

The argument is either a text or YAML word list file, or the numeric ID
of a vocabulary in the database. Enter submits an answer, or moves on
when the input is empty. Ctrl+P reveals the answer, Ctrl+D removes the
word for good, Esc finishes early and Ctrl+C quits (stored practices
are paused and can be resumed with --resume).`,
	Args: cobra.ExactArgs(1),
	RunE: runPractice,
}

func init() {
	f := practiceCmd.Flags()
	f.BoolVarP(&practiceReverse, "reverse", "r", false, "prompt with the translation, answer with the original")
	f.BoolVar(&practiceRepeatInvalid, "repeat-invalid", false, "ask missed words again until answered")
	f.BoolVar(&practiceStrict, "strict", false, "require accents to match exactly")
	f.IntVarP(&practiceLimit, "limit", "n", 0, "practise at most this many randomly chosen words")
	f.BoolVar(&practiceResume, "resume", false, "continue the saved progress of a stored vocabulary")
	f.StringVar(&practiceSaveMissed, "save-missed", "", "write missed words to this file when finished")
}

func runPractice(cmd *cobra.Command, args []string) error {
	if !tui.IsTTY() {
		return tui.ErrNotTTY
	}
	target := args[0]
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		if _, statErr := os.Stat(target); errors.Is(statErr, os.ErrNotExist) {
			return practiceStored(cmd, id)
		}
	}
	return practiceFile(target)
}

func flagConfig() session.Config {
	return session.Config{
		RepeatInvalid: practiceRepeatInvalid,
		Reverse:       practiceReverse,
		StrictMatch:   practiceStrict,
	}
}

func practiceFile(path string) error {
	words, err := wordlist.LoadFile(path)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("%s: no word pairs found", path)
	}

	pool := wordlist.DedupByOriginal(words)
	if practiceLimit > 0 && practiceLimit < len(pool) {
		pool = wordlist.RandomSelection(pool, practiceLimit, nil)
	}

	// Removing a word rewrites the file without it.
	onRemove := func(w session.WordTranslation) error {
		kept := make([]session.WordTranslation, 0, len(words))
		for _, x := range words {
			if x.Key() != w.Key() {
				kept = append(kept, x)
			}
		}
		if err := wordlist.SaveFile(path, kept); err != nil {
			return err
		}
		words = kept
		return nil
	}

	return runModel(tui.NewEngineAdapter(pool, flagConfig(), onRemove), path)
}

func practiceStored(cmd *cobra.Command, vocabularyID int64) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	v, err := st.vocab.GetVocabulary(ctx, vocabularyID)
	if err != nil {
		return err
	}

	opts := service.PracticeOptions{
		VocabularyID: vocabularyID,
		Resume:       practiceResume,
		Limit:        practiceLimit,
	}
	flags := cmd.Flags()
	if flags.Changed("reverse") || flags.Changed("repeat-invalid") || flags.Changed("strict") {
		cfg := flagConfig()
		opts.Config = &cfg
	}

	started, err := st.practice.Start(ctx, opts)
	if err != nil {
		return err
	}
	return runModel(tui.NewServiceAdapter(ctx, st.practice, started), v.Name)
}

func runModel(p tui.Practice, title string) error {
	m, err := tui.Run(tui.New(p, title))
	if err != nil {
		return err
	}
	if m.Err() != nil {
		return m.Err()
	}
	if m.Paused() {
		fmt.Println("Practice paused.")
		return nil
	}
	sum := m.Summary()
	if sum == nil {
		return nil
	}

	fmt.Printf("Score: %d%% (%s), %d of %d right first time\n", sum.Score, sum.Bucket, sum.Correct, sum.Total)
	for _, w := range sum.Missed {
		fmt.Printf("  %s\t%s\n", w.Original, w.Translation)
	}
	if practiceSaveMissed != "" && len(sum.Missed) > 0 {
		if err := wordlist.SaveFile(practiceSaveMissed, sum.Missed); err != nil {
			return err
		}
		fmt.Printf("Missed words saved to %s\n", practiceSaveMissed)
	}
	return nil
}

package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wordtrainer/internal/database"
	"wordtrainer/internal/models"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/session"
)

// firstPick makes the engine always prompt the first remaining word.
type firstPick struct{}

func (firstPick) Intn(int) int { return 0 }

type testEnv struct {
	db        *database.DB
	vocabRepo *repository.VocabularyRepository
	results   *repository.ResultRepository
	progress  *repository.ProgressRepository
	settings  *repository.SettingsRepository

	vocab    *VocabularyService
	practice *PracticeService
	history  *ResultService
	backup   *BackupService
	registry *PracticeRegistry
	clock    *fakeClock
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(context.Background(), "../../migrations"))

	env := &testEnv{
		db:        db,
		vocabRepo: repository.NewVocabularyRepository(db),
		results:   repository.NewResultRepository(db),
		progress:  repository.NewProgressRepository(db),
		settings:  repository.NewSettingsRepository(db),
		registry:  NewPracticeRegistry(),
		clock:     &fakeClock{now: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)},
	}
	email, err := NewEmailService(context.Background(), "us-east-1", "", "", "", false)
	require.NoError(t, err)

	env.vocab = NewVocabularyService(env.vocabRepo)
	env.practice = NewPracticeService(env.vocabRepo, env.results, env.progress, env.settings, email, env.registry,
		WithRandomSource(func() session.Random { return firstPick{} }),
		WithClock(env.clock.Now),
	)
	env.history = NewResultService(env.results, env.vocabRepo)
	env.backup = NewBackupService(db, env.vocabRepo, env.results, env.progress, env.settings)
	return env
}

// seed creates a vocabulary with the given "original=translation" pairs.
func (env *testEnv) seed(t *testing.T, name string, pairs ...session.WordTranslation) (*models.Vocabulary, []models.Word) {
	t.Helper()
	ctx := context.Background()

	v, err := env.vocab.CreateVocabulary(ctx, VocabularyInput{Name: name, SourceLang: "en", TargetLang: "cs"})
	require.NoError(t, err)
	words, err := env.vocabRepo.AddWords(ctx, v.ID, pairs)
	require.NoError(t, err)
	return v, words
}

func animals() []session.WordTranslation {
	return []session.WordTranslation{
		{Original: "dog", Translation: "pes"},
		{Original: "cat", Translation: "kočka"},
		{Original: "bird", Translation: "pták"},
	}
}

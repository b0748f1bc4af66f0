package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordtrainer/internal/models"
	"wordtrainer/internal/session"
)

func TestPracticeFullRun(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "Animals", animals()...)

	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)
	assert.Equal(t, "dog", st.Prompt)
	assert.Equal(t, 3, st.Total)
	assert.Empty(t, st.Answer, "answer hidden until revealed")

	res, err := env.practice.Submit(ctx, st.ID, "kocka")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "incorrect", res.State.Outcome)

	res, err = env.practice.Submit(ctx, st.ID, "pes")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, "pes", res.State.Answer)

	for i := 0; i < 2; i++ {
		st, err = env.practice.Next(ctx, st.ID)
		require.NoError(t, err)
		cur := map[string]string{"cat": "kočka", "bird": "pták"}[st.Prompt]
		require.NotEmpty(t, cur, "unexpected prompt %q", st.Prompt)
		_, err = env.practice.Submit(ctx, st.ID, cur)
		require.NoError(t, err)
	}
	st, err = env.practice.Next(ctx, st.ID)
	require.NoError(t, err)
	assert.True(t, st.Complete)

	result, err := env.practice.Finish(ctx, st.ID)
	require.NoError(t, err)
	assert.NotZero(t, result.ID)
	assert.Equal(t, 3, result.TotalWords)
	assert.Equal(t, 2, result.CorrectFirstTry)
	assert.Equal(t, 67, result.Score)
	assert.Equal(t, models.BucketFair, result.Bucket)

	missed := result.Missed()
	require.Len(t, missed, 1)
	assert.Equal(t, "dog", missed[0].Original)
	assert.Equal(t, 2, missed[0].Attempts)
	assert.False(t, missed[0].Skipped)

	_, err = env.practice.State(ctx, st.ID)
	assert.ErrorIs(t, err, ErrPracticeNotFound)
	assert.Zero(t, env.registry.Len())

	saved, err := env.progress.GetProgress(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, saved, "finish clears saved progress")
}

func TestPracticeStartErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: 999})
	assert.ErrorIs(t, err, ErrVocabularyNotFound)

	empty, _ := env.seed(t, "Empty")
	_, err = env.practice.Start(ctx, PracticeOptions{VocabularyID: empty.ID})
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestPracticeUsesStoredDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "Animals", animals()...)

	require.NoError(t, env.settings.SaveUserSettings(ctx, models.UserSettings{Reverse: true, WordLimit: 2}))

	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)
	assert.True(t, st.Config.Reverse)
	assert.Equal(t, 2, st.Total)

	override := session.Config{RepeatInvalid: true}
	st, err = env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID, Config: &override, Limit: -1})
	require.NoError(t, err)
	assert.Equal(t, override, st.Config)
	assert.Equal(t, 3, st.Total)
}

func TestPracticeProgressSinkAndResume(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "Animals", animals()...)

	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)

	_, err = env.practice.Submit(ctx, st.ID, "wrong")
	require.NoError(t, err)

	saved, err := env.progress.GetProgress(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, saved, "recorded attempt is persisted")
	assert.Len(t, saved.Snapshot.Invalid, 1)
	assert.Len(t, saved.Pool, 3)

	_, err = env.practice.Next(ctx, st.ID)
	require.NoError(t, err)
	require.NoError(t, env.practice.Pause(ctx, st.ID))
	assert.ErrorIs(t, env.practice.Pause(ctx, st.ID), ErrPracticeNotFound)

	resumed, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID, Resume: true})
	require.NoError(t, err)
	assert.True(t, resumed.Resumed)
	assert.Equal(t, 2, resumed.Remaining)
	assert.Equal(t, 1, resumed.Missed)
	assert.Equal(t, 3, resumed.Total)
	assert.Equal(t, "cat", resumed.Prompt)

	result, err := env.practice.Finish(ctx, resumed.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalWords)
	assert.Zero(t, result.CorrectFirstTry)
	for _, w := range result.Words {
		if w.Original == "dog" {
			assert.Equal(t, 1, w.Attempts, "attempts survive the pause")
			assert.False(t, w.Skipped)
		} else {
			assert.True(t, w.Skipped)
		}
	}
}

func TestPracticeFinishAfterCorrectAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "Animals", animals()...)

	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)
	res, err := env.practice.Submit(ctx, st.ID, "pes")
	require.NoError(t, err)
	require.True(t, res.Correct)

	result, err := env.practice.Finish(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectFirstTry)
	assert.Equal(t, 33, result.Score)
	for _, w := range result.Words {
		assert.Equal(t, w.Original == "dog", w.Correct, w.Original)
	}
}

func TestPracticePauseAfterCorrectAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "Animals", animals()...)

	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)
	_, err = env.practice.Submit(ctx, st.ID, "pes")
	require.NoError(t, err)
	require.NoError(t, env.practice.Pause(ctx, st.ID))

	resumed, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID, Resume: true})
	require.NoError(t, err)
	assert.Equal(t, 2, resumed.Remaining, "answered word is not asked again")
	assert.Equal(t, "cat", resumed.Prompt)

	result, err := env.practice.Finish(ctx, resumed.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectFirstTry)
}

func TestPracticeResumeDropsDeletedWords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, words := env.seed(t, "Animals", animals()...)

	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)
	require.NoError(t, env.practice.Pause(ctx, st.ID))

	require.NoError(t, env.vocab.DeleteWord(ctx, v.ID, words[0].ID))

	resumed, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID, Resume: true})
	require.NoError(t, err)
	assert.Equal(t, 2, resumed.Total)
	assert.Equal(t, 2, resumed.Remaining)
	assert.NotEqual(t, "dog", resumed.Prompt)
}

func TestPracticeRemoveWord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, words := env.seed(t, "Animals", animals()...)

	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)
	require.Equal(t, words[0].ID, st.WordID)

	st, err = env.practice.RemoveWord(ctx, st.ID, words[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "cat", st.Prompt)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 2, st.Remaining)

	count, err := env.vocabRepo.CountWords(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "removed from the vocabulary too")

	_, err = env.practice.RemoveWord(ctx, st.ID, "missing")
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestPracticeSubmitAfterComplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "One", session.WordTranslation{Original: "hello", Translation: "ahoj"})

	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)
	_, err = env.practice.Submit(ctx, st.ID, "ahoj")
	require.NoError(t, err)
	st, err = env.practice.Next(ctx, st.ID)
	require.NoError(t, err)
	require.True(t, st.Complete)

	_, err = env.practice.Submit(ctx, st.ID, "ahoj")
	assert.ErrorIs(t, err, ErrNoPrompt)
	_, err = env.practice.Peek(ctx, st.ID)
	assert.ErrorIs(t, err, ErrNoPrompt)
}

func TestPracticeExpireIdle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "Animals", animals()...)

	idle, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)

	env.clock.now = env.clock.now.Add(90 * time.Minute)
	active, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: v.ID})
	require.NoError(t, err)

	env.clock.now = env.clock.now.Add(time.Minute)
	expired := env.practice.ExpireIdle(ctx, time.Hour)

	assert.Equal(t, 1, expired)
	_, err = env.practice.State(ctx, idle.ID)
	assert.ErrorIs(t, err, ErrPracticeNotFound)
	_, err = env.practice.State(ctx, active.ID)
	assert.NoError(t, err)

	saved, err := env.progress.GetProgress(ctx, v.ID)
	require.NoError(t, err)
	assert.NotNil(t, saved, "expired practice is paused, not lost")
}

func TestBuildResultCountsSkippedWords(t *testing.T) {
	p := &practice{
		vocabularyID: 1,
		pool: []session.WordTranslation{
			{ID: "a", Original: "dog", Translation: "pes"},
			{ID: "b", Original: "cat", Translation: "kočka"},
		},
		attempts: map[string]int{"a": 1},
	}

	result := buildResult(p, session.Result{RemainingAndInvalid: []session.WordTranslation{p.pool[1]}}, time.Now())

	require.Len(t, result.Words, 2)
	assert.True(t, result.Words[0].Correct)
	assert.True(t, result.Words[1].Skipped)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, models.BucketFair, result.Bucket)
}

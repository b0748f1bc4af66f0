package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordtrainer/internal/models"
)

// practiseOnce runs a full practice answering every word except those in miss.
func practiseOnce(t *testing.T, env *testEnv, vocabID int64, miss map[string]bool) *models.TestResult {
	t.Helper()
	ctx := context.Background()

	answers := map[string]string{"dog": "pes", "cat": "kočka", "bird": "pták"}
	st, err := env.practice.Start(ctx, PracticeOptions{VocabularyID: vocabID})
	require.NoError(t, err)
	for !st.Complete {
		answer := answers[st.Prompt]
		if miss[st.Prompt] {
			answer = "?"
		}
		_, err = env.practice.Submit(ctx, st.ID, answer)
		require.NoError(t, err)
		st, err = env.practice.Next(ctx, st.ID)
		require.NoError(t, err)
	}
	result, err := env.practice.Finish(ctx, st.ID)
	require.NoError(t, err)
	return result
}

func TestResultHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "Animals", animals()...)

	first := practiseOnce(t, env, v.ID, map[string]bool{"dog": true})
	second := practiseOnce(t, env, v.ID, nil)
	assert.Equal(t, models.BucketExcellent, second.Bucket)

	results, err := env.history.ListResults(ctx, models.ResultFilter{VocabularyID: v.ID})
	require.NoError(t, err)
	require.Len(t, results, 2)

	got, err := env.history.GetResult(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Words, 3)
	require.Len(t, got.Missed(), 1)
	assert.Equal(t, "dog", got.Missed()[0].Original)

	_, err = env.history.GetResult(ctx, 999)
	assert.ErrorIs(t, err, ErrResultNotFound)

	none, err := env.history.ListResults(ctx, models.ResultFilter{VocabularyID: v.ID + 1})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	require.NoError(t, env.history.DeleteResult(ctx, first.ID))
	assert.ErrorIs(t, env.history.DeleteResult(ctx, first.ID), ErrResultNotFound)
	results, err = env.history.ListResults(ctx, models.ResultFilter{VocabularyID: v.ID})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStrugglingWords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v, _ := env.seed(t, "Animals", animals()...)

	practiseOnce(t, env, v.ID, map[string]bool{"dog": true, "cat": true})
	practiseOnce(t, env, v.ID, map[string]bool{"dog": true})
	practiseOnce(t, env, v.ID, nil)

	words, err := env.history.StrugglingWords(ctx, v.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, words, 1, "cat missed one of three sessions is below the default rate")
	assert.Equal(t, "dog", words[0].Original)
	assert.Equal(t, 3, words[0].Sessions)
	assert.Equal(t, 2, words[0].Missed)

	words, err = env.history.StrugglingWords(ctx, v.ID, 2, 0.3)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "dog", words[0].Original)
	assert.Equal(t, "cat", words[1].Original)

	_, err = env.history.StrugglingWords(ctx, 999, 0, 0)
	assert.ErrorIs(t, err, ErrVocabularyNotFound)
}

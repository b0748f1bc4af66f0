package service

import "errors"

var (
	ErrVocabularyNotFound = errors.New("vocabulary not found")
	ErrWordNotFound       = errors.New("word not found")
	ErrResultNotFound     = errors.New("result not found")
	ErrPracticeNotFound   = errors.New("practice not found")
	ErrPracticeFinished   = errors.New("practice already finished")
	ErrNoPrompt           = errors.New("no word to answer")
	ErrNoWords            = errors.New("vocabulary has no words")
	ErrNothingToImport    = errors.New("no word pairs found")
)

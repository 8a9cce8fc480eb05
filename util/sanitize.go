package util

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/pollhub/pollhub_api/util/values"
)

const (
	QuestionMinLen = 5
	QuestionMaxLen = 200
	OptionMaxLen   = 100
	MinOptions     = 2
)

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize strips all markup from s, leaving plain text. Script and style
// bodies are dropped entirely, not just their tags. Entity-encoded input is
// decoded and re-stripped until the result is stable, so markup cannot hide
// behind encoding and sanitizing already-sanitized text returns it unchanged.
func Sanitize(s string) string {
	for {
		out := html.UnescapeString(strictPolicy.Sanitize(s))
		if out == s {
			return out
		}
		s = out
	}
}

// ValidateQuestion checks a raw poll question and returns the sanitized text.
// Length limits apply to the trimmed input before sanitization. The first
// violated rule wins (empty, too short, too long) and nothing is sanitized
// on the error path.
func ValidateQuestion(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New(values.MsgQuestionEmpty)
	}

	length := utf8.RuneCountInString(trimmed)
	if length < QuestionMinLen {
		return "", errors.New(values.MsgQuestionTooShort)
	}
	if length > QuestionMaxLen {
		return "", errors.New(values.MsgQuestionTooLong)
	}

	return Sanitize(trimmed), nil
}

// ValidateOptions trims every entry, drops empty ones and checks the
// remainder: at least two options, no exact duplicates (case-sensitive),
// none longer than the option limit. Rule ordering is too-few, duplicate,
// too-long. Surviving entries are sanitized independently.
func ValidateOptions(raw []string) ([]string, error) {
	trimmed := make([]string, 0, len(raw))
	for _, opt := range raw {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		trimmed = append(trimmed, opt)
	}

	if len(trimmed) < MinOptions {
		return nil, errors.New(values.MsgTooFewOptions)
	}

	seen := make(map[string]struct{}, len(trimmed))
	for _, opt := range trimmed {
		if _, dup := seen[opt]; dup {
			return nil, errors.New(values.MsgDuplicateOptions)
		}
		seen[opt] = struct{}{}
	}

	for _, opt := range trimmed {
		if utf8.RuneCountInString(opt) > OptionMaxLen {
			return nil, errors.New(values.MsgOptionTooLong)
		}
	}

	sanitized := make([]string, len(trimmed))
	for i, opt := range trimmed {
		sanitized[i] = Sanitize(opt)
	}
	return sanitized, nil
}

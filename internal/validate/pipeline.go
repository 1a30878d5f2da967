// internal/validate/pipeline.go
//
// Word validation pipeline for a bingo cell.
// Responsibilities:
//   - Run the two-stage check: consonant rule first (pure, local), then
//     dictionary lookup (network/cache). A consonant mismatch never reaches
//     the dictionary.
//   - Fold every outcome, including lookup failure, into a Verdict value.
//     Verify has no error return on purpose: the caller always gets a
//     displayable result.
//
// Verdict codes:
//   consonant_mismatch     word does not start with a rule consonant
//   not_in_dictionary      dictionary answered definitively: no such word
//   dictionary_unavailable lookup failed; the word may be retried
//   duplicate_word         word already used elsewhere on the board
package validate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kipackjeong/wordbingo-server/internal/dict"
	"github.com/kipackjeong/wordbingo-server/internal/hangul"
)

const (
	CodeConsonantMismatch     = "consonant_mismatch"
	CodeNotInDictionary       = "not_in_dictionary"
	CodeDictionaryUnavailable = "dictionary_unavailable"
	CodeDuplicateWord         = "duplicate_word"
)

// Verdict is the outcome of validating one word. It carries the word it was
// computed for so the board can discard verdicts that arrive after the cell
// has moved on.
type Verdict struct {
	Word        string `json:"word"`
	MatchesRule bool   `json:"matchesRule"`
	Exists      bool   `json:"existsInDictionary"`
	Valid       bool   `json:"isValid"`
	Code        string `json:"errorCode,omitempty"`
	Error       string `json:"error,omitempty"`
	Retryable   bool   `json:"retryable,omitempty"`
	Definition  string `json:"definition,omitempty"`
}

// Pipeline validates words against a consonant rule and a dictionary.
type Pipeline struct {
	dict dict.Client
}

// New builds a pipeline over the given dictionary client.
func New(dc dict.Client) *Pipeline {
	return &Pipeline{dict: dc}
}

// Verify checks word against rule. The consonant check runs first and a
// failure there skips the dictionary entirely.
func (p *Pipeline) Verify(ctx context.Context, word, rule string) Verdict {
	if !hangul.Matches(word, rule) {
		return Verdict{
			Word:  word,
			Code:  CodeConsonantMismatch,
			Error: fmt.Sprintf("'%s'(으)로 시작하는 단어가 아닙니다", rule),
		}
	}

	res, err := p.dict.Lookup(ctx, word)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("dictionary lookup failed")
		return Verdict{
			Word:        word,
			MatchesRule: true,
			Code:        CodeDictionaryUnavailable,
			Error:       "사전 조회에 실패했습니다. 다시 시도해 주세요.",
			Retryable:   true,
		}
	}
	if !res.Exists {
		return Verdict{
			Word:        word,
			MatchesRule: true,
			Code:        CodeNotInDictionary,
			Error:       "사전에 없는 단어입니다.",
		}
	}

	return Verdict{
		Word:        word,
		MatchesRule: true,
		Exists:      true,
		Valid:       true,
		Definition:  res.Definition,
	}
}

// Duplicate builds the verdict for a word already used elsewhere on the
// board. No dictionary call is made.
func Duplicate(word string) Verdict {
	return Verdict{
		Word:  word,
		Code:  CodeDuplicateWord,
		Error: "이미 사용된 단어입니다.",
	}
}

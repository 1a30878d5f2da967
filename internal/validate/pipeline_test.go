package validate

import (
	"context"
	"strings"
	"testing"

	"github.com/kipackjeong/wordbingo-server/internal/dict"
)

type fakeDict struct {
	calls int
	res   dict.Result
	err   error
}

func (f *fakeDict) Lookup(ctx context.Context, word string) (dict.Result, error) {
	f.calls++
	if f.err != nil {
		return dict.Result{}, f.err
	}
	return f.res, nil
}

func (f *fakeDict) Name() string { return "fake" }

func TestVerifyValidWord(t *testing.T) {
	fd := &fakeDict{res: dict.Result{Exists: true, Definition: "노래 부르는 사람."}}
	v := New(fd).Verify(context.Background(), "가수", "ㄱ")

	if !v.Valid || !v.MatchesRule || !v.Exists {
		t.Fatalf("가수 under ㄱ should be fully valid, got %+v", v)
	}
	if v.Code != "" || v.Error != "" {
		t.Fatalf("valid verdict should carry no error, got %+v", v)
	}
	if v.Definition == "" {
		t.Fatal("definition should be carried through")
	}
	if v.Word != "가수" {
		t.Fatalf("verdict word = %q", v.Word)
	}
	if fd.calls != 1 {
		t.Fatalf("dictionary called %d times", fd.calls)
	}
}

func TestVerifyConsonantMismatchSkipsDictionary(t *testing.T) {
	fd := &fakeDict{res: dict.Result{Exists: true}}
	v := New(fd).Verify(context.Background(), "나무", "ㄱㅅ")

	if v.Valid || v.MatchesRule {
		t.Fatalf("나무 does not start with ㄱ or ㅅ, got %+v", v)
	}
	if v.Code != CodeConsonantMismatch {
		t.Fatalf("code = %q", v.Code)
	}
	if !strings.Contains(v.Error, "ㄱㅅ") {
		t.Fatalf("message should name the rule, got %q", v.Error)
	}
	if fd.calls != 0 {
		t.Fatalf("dictionary must not be called on consonant mismatch, calls = %d", fd.calls)
	}
}

func TestVerifyNotInDictionary(t *testing.T) {
	fd := &fakeDict{res: dict.Result{Exists: false}}
	v := New(fd).Verify(context.Background(), "가짜말", "ㄱ")

	if v.Valid || !v.MatchesRule || v.Exists {
		t.Fatalf("unexpected verdict %+v", v)
	}
	if v.Code != CodeNotInDictionary {
		t.Fatalf("code = %q", v.Code)
	}
	if v.Retryable {
		t.Fatal("a definitive miss is not retryable")
	}
}

func TestVerifyDictionaryUnavailable(t *testing.T) {
	fd := &fakeDict{err: dict.ErrUnavailable}
	v := New(fd).Verify(context.Background(), "가수", "ㄱ")

	if v.Valid {
		t.Fatal("cannot be valid without a dictionary answer")
	}
	if v.Code != CodeDictionaryUnavailable {
		t.Fatalf("code = %q", v.Code)
	}
	if !v.Retryable {
		t.Fatal("unavailability must be marked retryable")
	}
	if !v.MatchesRule {
		t.Fatal("the consonant check already passed")
	}
}

func TestDuplicate(t *testing.T) {
	v := Duplicate("가수")
	if v.Valid {
		t.Fatal("a duplicate is never valid")
	}
	if v.Code != CodeDuplicateWord {
		t.Fatalf("code = %q", v.Code)
	}
	if v.Word != "가수" || v.Error == "" {
		t.Fatalf("unexpected verdict %+v", v)
	}
}

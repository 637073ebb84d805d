package extractor

import (
	"context"
	"errors"
	"testing"
)

type fakeInterpreter struct {
	response string
	err      error
}

func (f *fakeInterpreter) Interpret(_ context.Context, _ string) (string, error) {
	return f.response, f.err
}

func TestExtractPrimaryPath(t *testing.T) {
	e := New(&fakeInterpreter{
		response: `{"amount": -25000, "comment": "tushlik", "category": "food"}`,
	})

	txn, err := e.Extract(context.Background(), "tushlikka 25 ming ketdi")
	if err != nil {
		t.Fatal(err)
	}
	if txn.Amount != -25000 || txn.Category != "food" {
		t.Errorf("got %+v", txn)
	}
}

func TestExtractFallsBackOnInterpreterError(t *testing.T) {
	e := New(&fakeInterpreter{err: errors.New("rate limited")})

	txn, err := e.Extract(context.Background(), "-25000 ovqat")
	if err != nil {
		t.Fatal(err)
	}
	if txn.Amount != -25000 {
		t.Errorf("amount = %d, want -25000", txn.Amount)
	}
	if txn.Category != "other" {
		t.Errorf("category = %q, want other (fallback)", txn.Category)
	}
}

func TestExtractFallsBackOnGarbageResponse(t *testing.T) {
	e := New(&fakeInterpreter{response: "I could not find any transaction here."})

	txn, err := e.Extract(context.Background(), "100000 maosh keldi")
	if err != nil {
		t.Fatal(err)
	}
	if txn.Amount != 100000 {
		t.Errorf("amount = %d, want +100000", txn.Amount)
	}
}

func TestExtractUnparseableBothPaths(t *testing.T) {
	e := New(&fakeInterpreter{err: errors.New("down")})

	if _, err := e.Extract(context.Background(), "hech qanday raqam yo'q"); !errors.Is(err, ErrUnparseable) {
		t.Errorf("err = %v, want ErrUnparseable", err)
	}
}

func TestExtractEmptyLine(t *testing.T) {
	e := New(&fakeInterpreter{})

	if _, err := e.Extract(context.Background(), "   "); !errors.Is(err, ErrUnparseable) {
		t.Errorf("err = %v, want ErrUnparseable", err)
	}
}

package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/bizdex/internal/db"
)

func testIndex() *db.IndexDefinition {
	return db.NewIndex("bizdex:business:idx").
		Prefix("bizdex:business:").
		Tag("categoryId").
		Numeric("rating").
		MustBuild()
}

func TestCreateIndex_SendsSchema(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.CREATE", "bizdex:business:idx", "ON", "HASH",
			"PREFIX", "1", "bizdex:business:", "SCHEMA", "categoryId", "TAG", "rating", "NUMERIC")).
		Return(mock.Result(mock.RedisString("OK")))

	if err := s.CreateIndex(context.Background(), testIndex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.CREATE" })).
		Return(mock.Result(mock.RedisError("Index already exists")))

	if err := s.CreateIndex(context.Background(), testIndex()); !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestCreateIndex_BackendError(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.CREATE" })).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	err := s.CreateIndex(context.Background(), testIndex())
	if dbErr := asDBError(t, err); dbErr.Key != "bizdex:business:idx" {
		t.Errorf("key = %q", dbErr.Key)
	}
}

func TestCreateIndex_InvalidDefinition(t *testing.T) {
	s := NewStoreForTest(nil)
	if err := s.CreateIndex(context.Background(), &db.IndexDefinition{Name: "idx"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestIndexExists(t *testing.T) {
	s, c := newMockStore(t)
	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("FT.INFO", "idx")).
			Return(mock.Result(mock.RedisArray(mock.RedisString("index_name"), mock.RedisString("idx")))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("FT.INFO", "idx")).
			Return(mock.Result(mock.RedisError("Unknown Index name"))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("FT.INFO", "idx")).
			Return(mock.ErrorResult(context.DeadlineExceeded)),
	)

	ctx := context.Background()
	if ok, err := s.IndexExists(ctx, "idx"); err != nil || !ok {
		t.Errorf("present index: got %v, %v", ok, err)
	}
	if ok, err := s.IndexExists(ctx, "idx"); err != nil || ok {
		t.Errorf("unknown index: got %v, %v", ok, err)
	}
	if _, err := s.IndexExists(ctx, "idx"); err == nil {
		t.Error("expected backend error")
	}
}

package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/bizdex/internal/db"
	"github.com/kailas-cloud/bizdex/internal/domain/search/filter"
)

func TestSearchList(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "bizdex:business:idx",
			"@categoryId:{legal} @isRemote:{true}", "LIMIT", "0", "100",
			"RETURN", "1", "name", "DIALECT", "2")).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("bizdex:business:a"),
			mock.RedisArray(mock.RedisString("name"), mock.RedisString("A")),
			mock.RedisString("bizdex:business:b"),
			mock.RedisArray(mock.RedisString("name"), mock.RedisString("B")),
		)))

	result, err := s.SearchList(context.Background(), &db.ListQuery{
		IndexName:    "bizdex:business:idx",
		Filters:      filter.Build(filter.Options{CategoryID: "legal", RemoteOnly: true}),
		Limit:        100,
		ReturnFields: []string{"name"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 || len(result.Entries) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Entries[1].Key != "bizdex:business:b" || result.Entries[1].Fields["name"] != "B" {
		t.Errorf("unexpected entry: %+v", result.Entries[1])
	}
}

func TestSearchList_EmptyFilterMatchesAll(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "idx", "*", "LIMIT", "20", "10", "DIALECT", "2")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	result, err := s.SearchList(context.Background(), &db.ListQuery{IndexName: "idx", Offset: 20, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 0 || len(result.Entries) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestSearchList_SkipsMalformedEntries(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("bizdex:business:a"),
			mock.RedisString("not-an-array"),
			mock.RedisString("bizdex:business:b"),
			mock.RedisArray(mock.RedisString("name"), mock.RedisString("B")),
		)))

	result, err := s.SearchList(context.Background(), &db.ListQuery{IndexName: "idx", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].Key != "bizdex:business:b" {
		t.Errorf("unexpected entries: %+v", result.Entries)
	}
}

func TestSearchList_Error(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.ErrorResult(errors.New("connection refused")))

	_, err := s.SearchList(context.Background(), &db.ListQuery{IndexName: "idx", Limit: 10})
	if dbErr := asDBError(t, err); dbErr.Op != db.OpSearch || dbErr.Key != "idx" {
		t.Errorf("unexpected error context: %+v", dbErr)
	}
}

func TestSearchList_Validation(t *testing.T) {
	s := NewStoreForTest(nil)
	if _, err := s.SearchList(context.Background(), &db.ListQuery{Limit: 10}); err == nil {
		t.Error("expected error for empty index")
	}
	if _, err := s.SearchList(context.Background(), &db.ListQuery{IndexName: "idx"}); err == nil {
		t.Error("expected error for zero limit")
	}
}

func TestSearchCount(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "idx", "@isFeatured:{true}", "LIMIT", "0", "0", "DIALECT", "2")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(42))))

	n, err := s.SearchCount(context.Background(), &db.ListQuery{
		IndexName: "idx",
		Filters:   filter.Build(filter.Options{FeaturedOnly: true}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("count = %d, want 42", n)
	}
}

func TestSearchCount_EmptyReply(t *testing.T) {
	s, c := newMockStore(t)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.Result(mock.RedisArray()))

	n, err := s.SearchCount(context.Background(), &db.ListQuery{IndexName: "idx"})
	if err != nil || n != 0 {
		t.Errorf("got %d, %v; want 0, nil", n, err)
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		opts filter.Options
		want string
	}{
		{"empty", filter.Options{}, "*"},
		{"category", filter.Options{CategoryID: "legal"}, "@categoryId:{legal}"},
		{"hyphen", filter.Options{CategoryID: "real-estate"}, `@categoryId:{real\-estate}`},
		{"space and dot", filter.Options{CategoryID: "a b.c"}, `@categoryId:{a\ b\.c}`},
		{"all", filter.Options{CategoryID: "x", RemoteOnly: true, FeaturedOnly: true},
			"@categoryId:{x} @isRemote:{true} @isFeatured:{true}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(filter.Build(tt.opts)); got != tt.want {
				t.Errorf("BuildQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

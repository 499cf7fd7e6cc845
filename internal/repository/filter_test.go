package repository

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter_SearchPageAndRange(t *testing.T) {
	params := url.Values{}
	params.Set("search", "foo")
	params.Set("page", "2")
	params.Set("price[gte]", "10")

	f := BuildFilter(params, 2)

	assert.Equal(t, primitive.Regex{Pattern: "foo", Options: "i"}, f.Query["name"])
	assert.Equal(t, bson.M{"$gte": int64(10)}, f.Query["price"])
	assert.Equal(t, int64(2), f.Skip)
	assert.Equal(t, int64(2), f.Limit)
}

func TestBuildFilter_Defaults(t *testing.T) {
	f := BuildFilter(url.Values{}, 0)

	assert.Empty(t, f.Query)
	assert.Equal(t, int64(0), f.Skip)
	assert.Equal(t, int64(DefaultPageSize), f.Limit)
}

func TestBuildFilter_ComparisonRewrites(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		field    string
		expected bson.M
	}{
		{"gte", "price[gte]", "10", "price", bson.M{"$gte": int64(10)}},
		{"lte", "price[lte]", "99", "price", bson.M{"$lte": int64(99)}},
		{"gt", "ratings[gt]", "3.5", "ratings", bson.M{"$gt": 3.5}},
		{"lt", "stock[lt]", "5", "stock", bson.M{"$lt": int64(5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := url.Values{}
			params.Set(tt.key, tt.value)

			f := BuildFilter(params, 2)
			assert.Equal(t, tt.expected, f.Query[tt.field])
		})
	}
}

func TestBuildFilter_CombinedBounds(t *testing.T) {
	params := url.Values{}
	params.Set("price[gte]", "10")
	params.Set("price[lte]", "100")

	f := BuildFilter(params, 2)

	assert.Equal(t, bson.M{"$gte": int64(10), "$lte": int64(100)}, f.Query["price"])
}

func TestBuildFilter_EqualityPassThrough(t *testing.T) {
	params := url.Values{}
	params.Set("brand", "acme")

	f := BuildFilter(params, 2)

	assert.Equal(t, "acme", f.Query["brand"])
}

func TestBuildFilter_UnknownOperatorKeptVerbatim(t *testing.T) {
	// Only gte/lte/gt/lt are rewritten; anything else passes through as an
	// ordinary key.
	params := url.Values{}
	params.Set("price[ne]", "10")

	f := BuildFilter(params, 2)

	assert.Equal(t, int64(10), f.Query["price[ne]"])
}

func TestBuildFilter_InvalidPageFallsBackToFirst(t *testing.T) {
	params := url.Values{}
	params.Set("page", "nope")

	f := BuildFilter(params, 4)

	assert.Equal(t, int64(0), f.Skip)
	assert.Equal(t, int64(4), f.Limit)
}

package bson

import (
	"errors"
	"testing"

	"github.com/kyle-williams-1/docsearch/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		query    *query.Query
		expected bson.D
	}{
		{
			name:     "empty query",
			query:    query.New("", nil, nil, nil),
			expected: bson.D{},
		},
		{
			name:     "text only",
			query:    query.New("hello world", nil, nil, nil),
			expected: bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: "hello world"}}}},
		},
		{
			name:     "attribute only",
			query:    query.New("", nil, []query.Field{query.NewField("account", "42", true)}, nil),
			expected: bson.D{{Key: "account", Value: "42"}},
		},
		{
			name:  "field is an escaped case-insensitive regex",
			query: query.New("", []query.Field{query.NewField("title", "a.b (draft)", false)}, nil, nil),
			expected: bson.D{{Key: "title", Value: bson.D{
				{Key: "$regex", Value: `a\.b \(draft\)`},
				{Key: "$options", Value: "i"},
			}}},
		},
		{
			name:     "labels",
			query:    query.New("", nil, nil, []string{"Top Secret", "budget"}),
			expected: bson.D{{Key: "labels", Value: bson.D{{Key: "$all", Value: []string{"Top Secret", "budget"}}}}},
		},
		{
			name: "several clauses are combined with $and",
			query: query.New("budget",
				[]query.Field{query.NewField("title", "foo", false)},
				[]query.Field{query.NewField("account", "42", true)},
				[]string{"Top Secret"}),
			expected: bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: "budget"}}}},
				bson.D{{Key: "title", Value: bson.D{{Key: "$regex", Value: "foo"}, {Key: "$options", Value: "i"}}}},
				bson.D{{Key: "account", Value: "42"}},
				bson.D{{Key: "labels", Value: bson.D{{Key: "$all", Value: []string{"Top Secret"}}}}},
			}}},
		},
	}

	f := New()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := f.Format(test.query)
			require.NoError(t, err)
			assert.Equal(t, test.expected, result)
		})
	}
}

func TestFormatLabelField(t *testing.T) {
	result, err := NewWithLabelField("tags").Format(query.New("", nil, nil, []string{"x"}))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "tags", Value: bson.D{{Key: "$all", Value: []string{"x"}}}}}, result)
}

func TestFormatNil(t *testing.T) {
	_, err := New().Format(nil)
	assert.True(t, errors.Is(err, ErrNilQuery))
}

func TestFormatMarshals(t *testing.T) {
	result, err := New().Format(query.New("budget", nil, nil, []string{"Top Secret"}))
	require.NoError(t, err)

	doc, err := bson.Marshal(result)
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(doc, &decoded))
	assert.Contains(t, decoded, "$and")
}

func TestFormatRejectsUnsafeKeys(t *testing.T) {
	tests := []struct {
		name  string
		field query.Field
	}{
		{"operator field", query.NewField("$where", "sleep", false)},
		{"dotted field", query.NewField("owner.passwordHash", "ab", false)},
		{"nul in field", query.NewField("a\x00b", "c", false)},
		{"operator attribute", query.NewField("$expr", "1", true)},
	}

	f := New()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var q *query.Query
			if test.field.IsAttribute() {
				q = query.New("", nil, []query.Field{test.field}, nil)
			} else {
				q = query.New("", []query.Field{test.field}, nil, nil)
			}

			result, err := f.Format(q)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidKey))
			assert.Contains(t, err.Error(), test.field.Kind)
			assert.Empty(t, result)
		})
	}
}

func TestFormatAllowsEmbeddedDollar(t *testing.T) {
	result, err := New().Format(query.New("", []query.Field{query.NewField("price$", "1", false)}, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "price$", result[0].Key)
}

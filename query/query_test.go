package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutText(t *testing.T) {
	q := New("", nil, nil, nil)

	text, ok := q.Text()
	assert.False(t, ok)
	assert.Empty(t, text)
	assert.False(t, q.HasText())
	assert.True(t, q.IsEmpty())

	assert.NotNil(t, q.Fields())
	assert.NotNil(t, q.Attributes())
	assert.NotNil(t, q.Labels())
	assert.Empty(t, q.Fields())
}

func TestQueryIsImmutable(t *testing.T) {
	fields := []Field{NewField("title", "foo", false)}
	labels := []string{"Top Secret"}
	q := New("bar", fields, nil, labels)

	fields[0].Value = "changed"
	labels[0] = "changed"
	assert.Equal(t, "foo", q.Fields()[0].Value)
	assert.Equal(t, "Top Secret", q.Labels()[0])

	got := q.Fields()
	got[0].Value = "changed again"
	assert.Equal(t, "foo", q.Fields()[0].Value)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "title:foo", NewField("title", "foo", false).String())
	assert.Equal(t, `title:"foo bar"`, NewField("title", "foo bar", false).String())
	assert.True(t, NewField("account", "42", true).IsAttribute())
	assert.False(t, NewField("title", "foo", false).IsAttribute())
}

func TestQueryString(t *testing.T) {
	q := New("bar", []Field{NewField("title", "foo", false)}, []Field{NewField("account", "42", true)}, []string{"x"})
	assert.Equal(t, `Query{text="bar" field=title:foo attribute=account:42 label="x"}`, q.String())
}

func TestMarshalJSON(t *testing.T) {
	t.Run("without text", func(t *testing.T) {
		b, err := json.Marshal(New("", nil, nil, nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"fields":[],"attributes":[],"labels":[]}`, string(b))
	})

	t.Run("full", func(t *testing.T) {
		q := New("budget", []Field{NewField("title", "foo", false)}, []Field{NewField("account", "42", true)}, []string{"Top Secret"})
		b, err := json.Marshal(q)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"text": "budget",
			"fields": [{"kind": "title", "value": "foo"}],
			"attributes": [{"kind": "account", "value": "42"}],
			"labels": ["Top Secret"]
		}`, string(b))
	})
}

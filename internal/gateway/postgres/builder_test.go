package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickdesk/quickdesk/internal/gateway"
)

var testColumns = map[string]struct{}{
	"status":      {},
	"assigned_to": {},
	"last_reply":  {},
}

func TestBuildWhere_EqualityAndNull(t *testing.T) {
	where, args, err := buildWhere(gateway.Fields{"assigned_to": nil}, testColumns)
	require.NoError(t, err)
	assert.Equal(t, " WHERE assigned_to IS NULL", where)
	assert.Empty(t, args)

	where, args, err = buildWhere(gateway.Fields{"status": "open"}, testColumns)
	require.NoError(t, err)
	assert.Equal(t, " WHERE status=$1", where)
	assert.Equal(t, []any{"open"}, args)
}

func TestBuildWhere_EmptyPredicate(t *testing.T) {
	where, args, err := buildWhere(nil, testColumns)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhere_UnknownFieldRejected(t *testing.T) {
	_, _, err := buildWhere(gateway.Fields{"password": "x"}, testColumns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestBuildSet(t *testing.T) {
	set, args, err := buildSet(gateway.Fields{"status": "closed"}, testColumns)
	require.NoError(t, err)
	assert.Equal(t, "status=$1", set)
	assert.Equal(t, []any{"closed"}, args)

	_, _, err = buildSet(gateway.Fields{}, testColumns)
	assert.Error(t, err)

	_, _, err = buildSet(gateway.Fields{"nope": 1}, testColumns)
	assert.Error(t, err)
}

func TestBuildInsert(t *testing.T) {
	cols, placeholders, args, err := buildInsert(gateway.Fields{"status": "open"}, testColumns)
	require.NoError(t, err)
	assert.Equal(t, "status", cols)
	assert.Equal(t, "$1", placeholders)
	assert.Equal(t, []any{"open"}, args)

	_, _, _, err = buildInsert(gateway.Fields{"nope": 1}, testColumns)
	assert.Error(t, err)
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, " ORDER BY last_reply DESC", orderBy("-last_reply", testColumns))
	assert.Equal(t, " ORDER BY status ASC", orderBy("status", testColumns))
	assert.Empty(t, orderBy("", testColumns))
	assert.Empty(t, orderBy("-unknown", testColumns))
}

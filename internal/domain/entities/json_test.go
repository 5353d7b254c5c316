package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func jsonFields(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	fields := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(data, &fields))
	return fields
}

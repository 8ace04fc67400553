package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lzww0608/oid"
)

func TestNewRecord(t *testing.T) {
	id := oid.MustParse("tst-agc6amh7z527vijkv2cutplwaa")
	r := NewRecord(id, "example")

	assert.Equal(t, id, r.ID)
	assert.Equal(t, "example", r.Label)
	assert.Equal(t, int64(0x0185e030ffcf), r.CreatedAt.UnixMilli())
}

func TestRecord_JSON(t *testing.T) {
	r := NewRecord(oid.MustParse("flt-agc6amh7z527vijkv2cutplwaa"), "")

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"flt-agc6amh7z527vijkv2cutplwaa","created_at":"2023-01-23T19:53:05.743Z"}`, string(data))

	var got Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, r.ID, got.ID)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
}

func TestSortRecords(t *testing.T) {
	gen := oid.NewGenerator()
	var ids []oid.OID
	for i := 0; i < 5; i++ {
		id, err := gen.NewOID("tst")
		require.NoError(t, err)
		ids = append(ids, id)
	}
	other, err := gen.NewOID("abc")
	require.NoError(t, err)

	records := []Record{
		NewRecord(ids[3], ""),
		NewRecord(ids[0], ""),
		NewRecord(other, ""),
		NewRecord(ids[4], ""),
		NewRecord(ids[1], ""),
		NewRecord(ids[2], ""),
	}
	SortRecords(records)

	assert.Equal(t, other, records[0].ID)
	for i, id := range ids {
		assert.Equal(t, id, records[i+1].ID)
	}
}

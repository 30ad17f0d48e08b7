package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLoadMetadataType(t *testing.T) {
	for _, s := range []string{"never", "Never", " NEVER"} {
		v, err := ParseLoadMetadataType(s)
		assert.NoError(t, err)
		assert.Equal(t, Never, v)
	}
	v, err := ParseLoadMetadataType("always")
	assert.NoError(t, err)
	assert.Equal(t, Always, v)

	_, err = ParseLoadMetadataType("sometimes")
	assert.Error(t, err)
}

func TestLoadMetadataTypeJSON(t *testing.T) {
	d, err := json.Marshal(ListStatusOptions{LoadDirectChildren: true, LoadMetadataType: Always})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"loadDirectChildren":true,"loadMetadataType":"Always"}`, string(d))

	var o ListStatusOptions
	assert.NoError(t, json.Unmarshal(d, &o))
	assert.Equal(t, Always, o.LoadMetadataType)

	assert.Error(t, json.Unmarshal([]byte(`{"loadMetadataType":"Maybe"}`), &o))
	_, err = json.Marshal(ListStatusOptions{LoadMetadataType: LoadMetadataType(7)})
	assert.Error(t, err)
	assert.Equal(t, "LoadMetadataType(7)", LoadMetadataType(7).String())
}

package api_test

import (
	"encoding/json"
	"testing"

	"warehouse/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := api.Load()
	require.NoError(t, err)

	assert.NotNil(t, doc.Paths.Find("/api/v1/shipments/{shipmentId}/release"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/racks/ranges"))
	assert.Contains(t, doc.Components.Schemas, "Invoice")
}

func TestSwaggerDoc_ReadDoc(t *testing.T) {
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(api.SwaggerDoc{}.ReadDoc()), &decoded))

	assert.Equal(t, "3.0.3", decoded["openapi"])
}

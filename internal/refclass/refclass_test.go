package refclass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openapi-tools/normalizer/internal/refclass"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, refclass.KindURL, refclass.Classify("https://example.com/schemas/Pet.yaml"))
	assert.Equal(t, refclass.KindFragment, refclass.Classify("#/components/schemas/Pet"))
	assert.Equal(t, refclass.KindFilePath, refclass.Classify("./schemas/Pet.yaml"))
	assert.Equal(t, refclass.KindFilePath, refclass.Classify("../shared/Pet.yaml"))
	assert.Equal(t, refclass.KindFilePath, refclass.Classify("Pet.yaml"))
	assert.Equal(t, refclass.KindUnknown, refclass.Classify(""))
}

func TestIsExternalFileReference(t *testing.T) {
	assert.True(t, refclass.IsExternalFileReference("./schemas/Pet.yaml"))
	assert.True(t, refclass.IsExternalFileReference("schemas/Pet.YML"))
	assert.True(t, refclass.IsExternalFileReference("schemas/Pet.json"))
	assert.True(t, refclass.IsExternalFileReference("schemas/Pet.yaml#/definitions/Pet"))

	assert.False(t, refclass.IsExternalFileReference("#/components/schemas/Pet"))
	assert.False(t, refclass.IsExternalFileReference("#"))
	assert.False(t, refclass.IsExternalFileReference("https://example.com/schemas/Pet.yaml"))
	assert.False(t, refclass.IsExternalFileReference("schemas/Pet.txt"))
	assert.False(t, refclass.IsExternalFileReference(""))
}

func TestJoinFragmentOnlyRelative(t *testing.T) {
	joined, err := refclass.Join("schemas/Pet.yaml", "#/definitions/Pet")
	require.NoError(t, err)
	assert.Equal(t, "schemas/Pet.yaml#/definitions/Pet", joined)
}

func TestJoinURLBase(t *testing.T) {
	joined, err := refclass.Join("https://example.com/schemas/Pet.yaml", "Owner.yaml")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/schemas/Owner.yaml", joined)
}

func TestJoinFilePathBaseWithParentNavigation(t *testing.T) {
	joined, err := refclass.Join("a/b/Pet.yaml", "../shared/Owner.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a/shared/Owner.yaml", joined)
}

package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openapi-tools/normalizer/docpointer"
	"github.com/openapi-tools/normalizer/naming"
)

func TestFromSourcePath(t *testing.T) {
	assert.Equal(t, "Pet", naming.FromSourcePath("models/Pet.yaml"))
	assert.Equal(t, "PetBase", naming.FromSourcePath("./PetBase.yaml"))
	assert.Equal(t, "Schema", naming.FromSourcePath(""))
	assert.Equal(t, "my-weird-file--", naming.FromSourcePath("my weird file!!.json"))
}

func TestFromPointerSkipsStructuralTokens(t *testing.T) {
	name := naming.FromPointer(docpointer.Pointer("#/paths/~1pets/get/responses/200/content/application~1json/schema/properties/address"))
	assert.Equal(t, "Address", name)
}

func TestFromPointerSkipsDigitsAndSlashesAndMediaTypes(t *testing.T) {
	name := naming.FromPointer(docpointer.Pointer("#/paths/~1pets/get/responses/200/content/application~1json/schema"))
	assert.Equal(t, "Schema", name) // every token is structural/digit/media-type; falls back to default
}

func TestFromPointerSkipsIgnoredTokens(t *testing.T) {
	name := naming.FromPointer(docpointer.Pointer("#/components/schemas/Pet/allOf/0"))
	assert.Equal(t, "Pet", name)
}

func TestFromPointerFallsBackToDefault(t *testing.T) {
	name := naming.FromPointer(docpointer.Pointer("#/paths/get/responses/schema"))
	assert.Equal(t, "Schema", name)
}

func TestPascalCase(t *testing.T) {
	assert.Equal(t, "HelloWorld", naming.PascalCase("hello_world"))
	assert.Equal(t, "HelloWorld", naming.PascalCase("hello-world.yaml"))
	assert.Equal(t, "Schema", naming.PascalCase("!!!"))
}

func TestUniqueDeduplicates(t *testing.T) {
	taken := map[string]bool{"Pet": true, "Pet_2": true}
	assert.Equal(t, "Pet_3", naming.Unique(taken, "Pet"))
	assert.Equal(t, "Owner", naming.Unique(taken, "Owner"))
}

package archive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-api/internal/domain"
	"github.com/jhoicas/cfdi-api/internal/infrastructure/archive"
)

func TestReadXMLMembers_FiltraPorExtension(t *testing.T) {
	data, err := archive.BuildZip(
		archive.File{Name: "a.xml", Data: []byte("<a/>")},
		archive.File{Name: "leeme.txt", Data: []byte("hola")},
		archive.File{Name: "sub/B.XML", Data: []byte("<b/>")},
		archive.File{Name: "c.Xml", Data: []byte("<c/>")},
		archive.File{Name: "d.xml.bak", Data: []byte("<d/>")},
	)
	require.NoError(t, err)

	members, err := archive.ReadXMLMembers(data)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "a.xml", members[0].Name)
	assert.Equal(t, "sub/B.XML", members[1].Name)
	assert.Equal(t, "c.Xml", members[2].Name)
	assert.Equal(t, []byte("<b/>"), members[1].Data)
	for _, m := range members {
		assert.NoError(t, m.Err)
	}
}

func TestReadXMLMembers_SinXML(t *testing.T) {
	data, err := archive.BuildZip(archive.File{Name: "nota.txt", Data: []byte("x")})
	require.NoError(t, err)

	members, err := archive.ReadXMLMembers(data)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestReadXMLMembers_ZipVacio(t *testing.T) {
	data, err := archive.BuildZip()
	require.NoError(t, err)

	members, err := archive.ReadXMLMembers(data)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestReadXMLMembers_NoEsZip(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("no soy un zip"), []byte("PK\x03\x04basura")} {
		_, err := archive.ReadXMLMembers(data)
		assert.ErrorIs(t, err, domain.ErrInvalidArchive)
	}
}

func TestReader_LimiteDeTamano(t *testing.T) {
	data, err := archive.BuildZip(
		archive.File{Name: "chico.xml", Data: []byte("<a/>")},
		archive.File{Name: "grande.xml", Data: make([]byte, 64)},
	)
	require.NoError(t, err)

	members, err := archive.NewReader(16).ReadXMLMembers(data)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.NoError(t, members[0].Err)
	assert.Error(t, members[1].Err, "el miembro que excede el límite se reporta, no aborta")
	assert.Nil(t, members[1].Data)
}

func TestBuildZipFromMap_OrdenEstable(t *testing.T) {
	data, err := archive.BuildZipFromMap(map[string][]byte{
		"z.xml": []byte("<z/>"),
		"a.xml": []byte("<a/>"),
	})
	require.NoError(t, err)
	members, err := archive.ReadXMLMembers(data)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "a.xml", members[0].Name)
	assert.Equal(t, "z.xml", members[1].Name)
}

func TestIsXMLName(t *testing.T) {
	assert.True(t, archive.IsXMLName("FACTURA.XML"))
	assert.True(t, archive.IsXMLName("x.xml"))
	assert.False(t, archive.IsXMLName("x.xmlx"))
	assert.False(t, archive.IsXMLName("xml"))
}

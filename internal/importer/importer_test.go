package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/importer"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
)

func TestService_Parse(t *testing.T) {
	svc := importer.NewService()

	t.Run("WellFormed", func(t *testing.T) {
		csv := "name,email,phone\n" +
			"María Peña,maria@example.com,809-555-0101\n" +
			"\n" +
			"José López,jose@example.com,\n"

		rows, err := svc.Parse(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "María Peña", rows[0].Params.Name)
		assert.Equal(t, "maria@example.com", rows[0].Params.Email)
		assert.Equal(t, "809-555-0101", rows[0].Params.Phone)
		assert.Equal(t, user.RoleClient, rows[0].Params.Role)
		assert.Equal(t, 2, rows[0].Line)

		assert.Equal(t, "José López", rows[1].Params.Name)
		assert.Equal(t, 4, rows[1].Line)
	})

	t.Run("ReorderedAndExtraColumns", func(t *testing.T) {
		csv := "phone,notes,email,name\n" +
			"809-555-0102,vip,ana@example.com,Ana\n"

		rows, err := svc.Parse(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Ana", rows[0].Params.Name)
		assert.Equal(t, "ana@example.com", rows[0].Params.Email)
	})

	t.Run("Windows1252Accents", func(t *testing.T) {
		raw := append([]byte("name,email\nJos"), 0xE9)
		raw = append(raw, []byte(",jose@example.com\n")...)

		rows, err := svc.Parse(strings.NewReader(string(raw)))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "José", rows[0].Params.Name)
	})

	t.Run("MissingEmailHeader", func(t *testing.T) {
		_, err := svc.Parse(strings.NewReader("name,phone\nAna,809-555-0103\n"))
		assert.ErrorIs(t, err, importer.ErrMissingHeader)
	})

	t.Run("InvalidEmailValue", func(t *testing.T) {
		_, err := svc.Parse(strings.NewReader("name,email\nAna,not-an-email\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := svc.Parse(strings.NewReader("name,email\n,ana@example.com\n"))
		assert.Error(t, err)
	})
}

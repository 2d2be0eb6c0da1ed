package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(fileName, []byte(content), 0644))
	return fileName
}

func TestDefault(t *testing.T) {
	data := Default()

	require.Len(t, data.Users, 2)
	require.Len(t, data.Books, 2)
	assert.Equal(t, models.StringPtr("Sunjae"), data.Users[0].Name)
	assert.Equal(t, models.StringPtr("Harry Potter"), data.Books[0].Title)
	assert.Equal(t, "1", data.Books[0].OwnerID)
	assert.NoError(t, data.validate())
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		wantErr   bool
		wantUsers int
		wantBooks int
	}{
		{
			name: "positive",
			content: `{
				"users": [{"id": "7", "name": "Ann"}],
				"books": [{"id": "3", "title": "Dune", "ownerId": "7"}]
			}`,
			wantUsers: 1,
			wantBooks: 1,
		},
		{
			name:    "empty_collections",
			content: `{"users": [], "books": []}`,
		},
		{
			name:    "non_numeric_id",
			content: `{"users": [{"id": "abc"}]}`,
			wantErr: true,
		},
		{
			name:    "duplicate_id",
			content: `{"books": [{"id": "1"}, {"id": "1"}]}`,
			wantErr: true,
		},
		{
			name:    "unknown_field",
			content: `{"authors": []}`,
			wantErr: true,
		},
		{
			name:    "broken_json",
			content: `{"users": [`,
			wantErr: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			data, err := Load(writeTempJSON(t, testCase.content))
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, data.Users, testCase.wantUsers)
			assert.Len(t, data.Books, testCase.wantBooks)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	data, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), data)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

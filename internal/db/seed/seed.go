// Package seed provides the records a storage starts with: either the
// built-in set or the contents of a read-only JSON file.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

// Data is the initial content of both collections.
type Data struct {
	Users []models.User `json:"users"`
	Books []models.Book `json:"books"`
}

// Default returns the built-in seed records.
func Default() *Data {
	return &Data{
		Users: []models.User{
			{
				ID:    "1",
				Name:  models.StringPtr("Sunjae"),
				Email: models.StringPtr("sj111@gmail.com"),
				Age:   models.StringPtr("24"),
			},
			{
				ID:    "2",
				Name:  models.StringPtr("Peter"),
				Email: models.StringPtr("nicepeter@gmail.com"),
				Age:   models.StringPtr("28"),
			},
		},
		Books: []models.Book{
			{
				ID:       "1",
				Title:    models.StringPtr("Harry Potter"),
				Price:    models.StringPtr("15000"),
				Quantity: models.StringPtr("12"),
				OwnerID:  "1",
			},
			{
				ID:       "2",
				Title:    models.StringPtr("The load of the rings"),
				Price:    models.StringPtr("17000"),
				Quantity: models.StringPtr("6"),
				OwnerID:  "2",
			},
		},
	}
}

func parseJSONFile(fileName string, data *Data) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()

	return decoder.Decode(data)
}

// Load reads seed records from fileName. The file is never written back.
func Load(fileName string) (*Data, error) {
	data := &Data{}

	err := parseJSONFile(fileName, data)
	if err != nil {
		return nil, fmt.Errorf("in internal/db/seed/seed.go/Load(): error while parsing %q: %w", fileName, err)
	}

	err = data.validate()
	if err != nil {
		return nil, fmt.Errorf("in internal/db/seed/seed.go/Load(): %q: %w", fileName, err)
	}

	return data, nil
}

// LoadOrDefault loads fileName when it is set and falls back to Default.
func LoadOrDefault(fileName string) (*Data, error) {
	if fileName == "" {
		return Default(), nil
	}

	return Load(fileName)
}

func (data *Data) validate() error {
	userIDs := make([]string, 0, len(data.Users))
	for _, usr := range data.Users {
		userIDs = append(userIDs, usr.ID)
	}
	if err := checkIDs("user", userIDs); err != nil {
		return err
	}

	bookIDs := make([]string, 0, len(data.Books))
	for _, book := range data.Books {
		bookIDs = append(bookIDs, book.ID)
	}

	return checkIDs("book", bookIDs)
}

func checkIDs(kind string, ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil || n < 0 {
			return fmt.Errorf("%s id %q is not a decimal integer", kind, id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate %s id %q", kind, id)
		}
		seen[id] = true
	}

	return nil
}

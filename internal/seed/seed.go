// Package seed loads the startup records of every catalog resource from
// embedded YAML documents.
package seed

import (
	"bytes"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

//go:embed data/*.yaml
var files embed.FS

// Load decodes every embedded seed document.
func Load() (store.Seeds, error) {
	var (
		seeds store.Seeds
		err   error
	)
	if seeds.Books, err = decode[types.Book](store.ResourceBooks); err != nil {
		return store.Seeds{}, err
	}
	if seeds.Students, err = decode[types.Student](store.ResourceStudents); err != nil {
		return store.Seeds{}, err
	}
	if seeds.Menu, err = decode[types.MenuItem](store.ResourceMenu); err != nil {
		return store.Seeds{}, err
	}
	if seeds.Products, err = decode[types.Product](store.ResourceProducts); err != nil {
		return store.Seeds{}, err
	}
	if seeds.Tasks, err = decode[types.Task](store.ResourceTasks); err != nil {
		return store.Seeds{}, err
	}
	if seeds.Users, err = decode[types.UserProfile](store.ResourceUsers); err != nil {
		return store.Seeds{}, err
	}
	return seeds, nil
}

func decode[T any](resource string) ([]T, error) {
	raw, err := files.ReadFile("data/" + resource + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("reading %s seed: %w", resource, err)
	}
	return parse[T](resource, raw)
}

func parse[T any](resource string, raw []byte) ([]T, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var records []T
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s seed: %w", resource, err)
	}
	return records, nil
}

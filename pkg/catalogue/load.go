package catalogue

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/starrupture/srfactory/pkg/errors"
)

// Default file names of the definition files.
const (
	DefaultItemsFile     = "starrupture_recipe_items.csv"
	DefaultInputsFile    = "starrupture_recipe_input.csv"
	DefaultRawFile       = "starrupture_recipe_raw.csv"
	DefaultBuildingsFile = "starrupture_recipe_buildings.csv"
)

// Files names the four definition files.
type Files struct {
	Items     string
	Inputs    string
	Raw       string
	Buildings string
}

// DefaultFiles returns the standard file names.
func DefaultFiles() Files {
	return Files{
		Items:     DefaultItemsFile,
		Inputs:    DefaultInputsFile,
		Raw:       DefaultRawFile,
		Buildings: DefaultBuildingsFile,
	}
}

// Load reads all four definition files and builds a Catalogue.
func Load(files Files) (*Catalogue, error) {
	items, err := loadFile(files.Items, ReadItems)
	if err != nil {
		return nil, err
	}
	inputs, err := loadFile(files.Inputs, ReadRecipeInputs)
	if err != nil {
		return nil, err
	}
	raw, err := loadFile(files.Raw, ReadRawItems)
	if err != nil {
		return nil, err
	}
	buildings, err := loadFile(files.Buildings, ReadBuildings)
	if err != nil {
		return nil, err
	}
	return New(items, inputs, raw, buildings), nil
}

func loadFile[T any](path string, read func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalogue file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalogue, err, "open %s", path)
	}
	defer f.Close()
	return read(f, path)
}

// ReadItems parses the items file. name is used in error messages.
func ReadItems(r io.Reader, name string) ([]Item, error) {
	return readRows(r, name, 5, func(p *rowParser) Item {
		return Item{
			Name:           p.text(0),
			NumProduced:    p.atoi(1),
			PeriodSeconds:  p.atof(2),
			Building:       p.text(3),
			ItemsPerMinute: p.atoi(4),
		}
	})
}

// ReadRecipeInputs parses the recipe inputs file.
func ReadRecipeInputs(r io.Reader, name string) ([]RecipeInput, error) {
	return readRows(r, name, 5, func(p *rowParser) RecipeInput {
		return RecipeInput{
			ItemName:          p.text(0),
			InputName:         p.text(1),
			NumRequired:       p.atoi(2),
			PeriodSeconds:     p.atof(3),
			RequiredPerMinute: p.atoi(4),
		}
	})
}

// ReadRawItems parses the raw items file.
func ReadRawItems(r io.Reader, name string) ([]RawItem, error) {
	return readRows(r, name, 6, func(p *rowParser) RawItem {
		return RawItem{
			Name:           p.text(0),
			Variant:        p.text(1),
			NumProduced:    p.atoi(2),
			PeriodSeconds:  p.atoi(3),
			Building:       p.text(4),
			ItemsPerMinute: p.atoi(5),
		}
	})
}

// ReadBuildings parses the buildings file. The first populated cost column
// (bbm, ibm, qbm) decides the building's material type.
func ReadBuildings(r io.Reader, name string) ([]Building, error) {
	return readRows(r, name, 5, func(p *rowParser) Building {
		b := Building{Name: p.text(0), HeatCost: p.atoi(1)}
		for i, mat := range []string{MaterialBBM, MaterialIBM, MaterialQBM} {
			if strings.TrimSpace(p.row[2+i]) != "" {
				b.MaterialType = mat
				b.Cost = p.atoi(2 + i)
				return b
			}
		}
		p.fail("no building cost defined for building %q", b.Name)
		return b
	})
}

// readRows skips the header row and converts every following record.
func readRows[T any](r io.Reader, name string, fields int, conv func(*rowParser) T) ([]T, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = fields

	var out []T
	header := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalogue, err, "read %s", name)
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		p := &rowParser{row: row}
		v := conv(p)
		if p.err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalogue, p.err, "%s:%d", name, line)
		}
		out = append(out, v)
	}
}

// rowParser converts CSV fields, remembering the first failure.
type rowParser struct {
	row []string
	err error
}

func (p *rowParser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf(format, args...)
	}
}

func (p *rowParser) text(i int) string {
	s := strings.TrimSpace(p.row[i])
	if s == "" {
		p.fail("column %d is empty", i+1)
	}
	return s
}

func (p *rowParser) atoi(i int) int {
	v, err := strconv.Atoi(strings.TrimSpace(p.row[i]))
	if err != nil {
		p.fail("column %d: %q is not an integer", i+1, p.row[i])
	}
	return v
}

func (p *rowParser) atof(i int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.row[i]), 64)
	if err != nil {
		p.fail("column %d: %q is not a number", i+1, p.row[i])
	}
	return v
}

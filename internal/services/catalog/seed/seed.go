// Package seed reads catalog seed files
package seed

import (
	"io"
	"os"

	perr "eshoppers/internal/platform/errors"
	"eshoppers/internal/services/catalog/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File is the yaml layout of a seed catalog
//
//	products:
//	  - name: Espresso cup
//	    description: porcelain, 80ml
//	    price: "12.50"
type File struct {
	Products []Item `yaml:"products"`
}

// Item is one product in a seed file, price is kept as text to stay exact
type Item struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
}

// Decode reads a seed catalog from r
func Decode(r io.Reader) ([]domain.ProductInput, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return []domain.ProductInput{}, nil
		}
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid seed yaml")
	}
	out := make([]domain.ProductInput, 0, len(f.Products))
	for i, it := range f.Products {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "product %d: bad price %q", i+1, it.Price), "price")
		}
		out = append(out, domain.ProductInput{Name: it.Name, Description: it.Description, Price: price})
	}
	return out, nil
}

// Load reads a seed catalog from the file at path
func Load(path string) ([]domain.ProductInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open seed %s", path)
	}
	defer f.Close()
	return Decode(f)
}

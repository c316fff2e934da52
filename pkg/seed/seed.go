// Package seed describes the reference data file of WAStD: conservation
// lists with their categories and criteria, taxa and threatened ecological
// communities.
//
// A seed file is YAML:
//
//	lists:
//	  - code: WAWCA
//	    label: WA Wildlife Conservation Act 2016
//	    scope: {wa: true, species: true, communities: true}
//	    active_from: 2018-01-01
//	    categories:
//	      - {code: CR, label: Critically Endangered}
//	    criteria:
//	      - {code: A4a}
//	taxa:
//	  - {name_id: 24557, name: "Caretta caretta (Linnaeus, 1758)", code: zoological}
//	communities:
//	  - {code: SCP20a, name: Banksia attenuata woodlands}
//
// Records are matched by natural key: list code, list and category code,
// taxon name_id, community code. Loading a file twice does not create
// duplicates.
package seed

import (
	"bytes"
	"context"
	"time"

	"gopkg.in/yaml.v3"
)

// Importer writes seed data to the database.
type Importer interface {
	Import(ctx context.Context, data *Data) (*Stats, error)
}

// Data is the content of a seed file.
type Data struct {
	Lists       []List      `yaml:"lists"`
	Taxa        []Taxon     `yaml:"taxa"`
	Communities []Community `yaml:"communities"`

	// Warnings holds non-fatal validation issues (not serialized).
	Warnings []Warning `yaml:"-"`
}

// List is a conservation list.
type List struct {
	Code        string     `yaml:"code"`
	Label       string     `yaml:"label"`
	Description string     `yaml:"description,omitempty"`
	Scope       Scope      `yaml:"scope"`
	ActiveFrom  *time.Time `yaml:"active_from,omitempty"`
	ActiveTo    *time.Time `yaml:"active_to,omitempty"`
	Categories  []Ref      `yaml:"categories"`
	Criteria    []Ref      `yaml:"criteria"`
}

// Scope tells where a list applies and to what.
type Scope struct {
	WA          bool `yaml:"wa"`
	CMW         bool `yaml:"cmw"`
	Intl        bool `yaml:"intl"`
	Species     bool `yaml:"species"`
	Communities bool `yaml:"communities"`
}

// Ref is a category or a criterion. Its position in the file defines its
// rank within the list.
type Ref struct {
	Code        string `yaml:"code"`
	Label       string `yaml:"label,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Taxon is a name from WACensus.
type Taxon struct {
	NameID     int    `yaml:"name_id"`
	Name       string `yaml:"name"`
	Code       string `yaml:"code,omitempty"`
	Vernacular string `yaml:"vernacular,omitempty"`
}

// Community is a threatened ecological community.
type Community struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Warning is a non-fatal issue found by Validate.
type Warning struct {
	Section string
	Index   int
	Message string
}

// Stats counts imported records.
type Stats struct {
	Lists       int `json:"lists"`
	Categories  int `json:"categories"`
	Criteria    int `json:"criteria"`
	Taxa        int `json:"taxa"`
	Communities int `json:"communities"`
}

// Parse decodes a seed file. Unknown fields are errors.
func Parse(content []byte) (*Data, error) {
	var res Data
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Package parserpool normalizes scientific names of taxa with a pool of
// gnparser instances. There is one pool per nomenclatural code.
package parserpool

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnuuid"
)

// Name is a parsed scientific name.
type Name struct {
	// Verbatim is the input string with surrounding spaces removed.
	Verbatim string

	// Canonical is the simple canonical form, e.g. "Caretta caretta".
	// Falls back to Verbatim for names the parser could not parse.
	Canonical string

	// Authorship is the normalized authorship, can be empty.
	Authorship string

	// UUID is the UUID v5 of Verbatim.
	UUID string

	// Parsed is false when gnparser failed to recognize the name.
	Parsed bool
}

// Pool parses names concurrently.
type Pool interface {
	// Parse normalizes a name according to the nomenclatural code.
	// It blocks while all parsers of that code are busy.
	Parse(name string, code nomcode.Code) (Name, error)

	// Close releases the parsers. The pool cannot be used afterwards.
	Close()
}

type pool struct {
	pools map[nomcode.Code]chan gnparser.GNparser
}

// NewPool creates jobsNum parsers per supported code.
// Zero means runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	if jobsNum <= 0 {
		jobsNum = runtime.NumCPU()
	}

	res := pool{pools: make(map[nomcode.Code]chan gnparser.GNparser, 2)}
	for _, code := range []nomcode.Code{nomcode.Botanical, nomcode.Zoological} {
		cfg := gnparser.NewConfig(gnparser.OptCode(code))
		res.pools[code] = gnparser.NewPool(cfg, jobsNum)
	}
	return &res
}

func (p *pool) Parse(name string, code nomcode.Code) (Name, error) {
	ch, ok := p.pools[code]
	if !ok {
		return Name{}, fmt.Errorf("unsupported nomenclatural code: %v", code)
	}

	name = strings.TrimSpace(name)
	res := Name{
		Verbatim:  name,
		Canonical: name,
		UUID:      gnuuid.New(name).String(),
	}

	gnp := <-ch
	prs := gnp.ParseName(name)
	ch <- gnp

	if !prs.Parsed || prs.Canonical == nil {
		return res, nil
	}
	res.Parsed = true
	res.Canonical = prs.Canonical.Simple
	if prs.Authorship != nil {
		res.Authorship = prs.Authorship.Normalized
	}
	return res, nil
}

func (p *pool) Close() {
	for code, ch := range p.pools {
		close(ch)
		for range ch {
		}
		delete(p.pools, code)
	}
}

// Code converts the name of a nomenclatural code used in seed files.
// Empty string means botanical, WACensus holds mostly plants.
func Code(s string) (nomcode.Code, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "botanical", "icn":
		return nomcode.Botanical, nil
	case "zoological", "iczn":
		return nomcode.Zoological, nil
	default:
		return nomcode.Unknown, fmt.Errorf("unknown nomenclatural code %q", s)
	}
}

// CodeName is the inverse of Code for supported codes.
func CodeName(code nomcode.Code) string {
	switch code {
	case nomcode.Botanical:
		return "botanical"
	case nomcode.Zoological:
		return "zoological"
	default:
		return ""
	}
}

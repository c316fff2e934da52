package seed

import (
	"fmt"
	"strings"
)

var nomCodes = map[string]bool{
	"":           true,
	"botanical":  true,
	"icn":        true,
	"zoological": true,
	"iczn":       true,
}

// Validate checks required fields and uniqueness of natural keys.
// Codes are trimmed. Non-fatal issues are appended to Warnings.
func (d *Data) Validate() error {
	if len(d.Lists)+len(d.Taxa)+len(d.Communities) == 0 {
		return fmt.Errorf("seed file has no lists, taxa or communities")
	}

	lists := make(map[string]bool)
	for i := range d.Lists {
		l := &d.Lists[i]
		l.Code = strings.TrimSpace(l.Code)
		if l.Code == "" {
			return fmt.Errorf("list %d: code is required", i+1)
		}
		if lists[l.Code] {
			return fmt.Errorf("list %d: duplicate code %q", i+1, l.Code)
		}
		lists[l.Code] = true

		if l.ActiveFrom != nil && l.ActiveTo != nil &&
			l.ActiveTo.Before(*l.ActiveFrom) {
			return fmt.Errorf("list %s: active_to is before active_from", l.Code)
		}
		if err := validateRefs(l.Code, "category", l.Categories); err != nil {
			return err
		}
		if err := validateRefs(l.Code, "criterion", l.Criteria); err != nil {
			return err
		}
		if len(l.Categories) == 0 {
			d.warn("lists", i+1, "list "+l.Code+" has no categories")
		}
		if !l.Scope.Species && !l.Scope.Communities {
			d.warn("lists", i+1,
				"list "+l.Code+" applies neither to species nor to communities")
		}
	}

	taxa := make(map[int]bool)
	for i := range d.Taxa {
		t := &d.Taxa[i]
		if t.NameID <= 0 {
			return fmt.Errorf("taxon %d: name_id must be positive", i+1)
		}
		if taxa[t.NameID] {
			return fmt.Errorf("taxon %d: duplicate name_id %d", i+1, t.NameID)
		}
		taxa[t.NameID] = true
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("taxon %d: name is required", i+1)
		}
		t.Code = strings.ToLower(strings.TrimSpace(t.Code))
		if !nomCodes[t.Code] {
			return fmt.Errorf("taxon %d: unknown code %q", i+1, t.Code)
		}
		if t.Code == "" {
			d.warn("taxa", i+1, "no code given, parsing as botanical name")
		}
	}

	comms := make(map[string]bool)
	for i := range d.Communities {
		c := &d.Communities[i]
		c.Code = strings.TrimSpace(c.Code)
		if c.Code == "" {
			return fmt.Errorf("community %d: code is required", i+1)
		}
		if comms[c.Code] {
			return fmt.Errorf("community %d: duplicate code %q", i+1, c.Code)
		}
		comms[c.Code] = true
	}
	return nil
}

func validateRefs(list, kind string, refs []Ref) error {
	seen := make(map[string]bool, len(refs))
	for i := range refs {
		r := &refs[i]
		r.Code = strings.TrimSpace(r.Code)
		if r.Code == "" {
			return fmt.Errorf("list %s: %s %d: code is required", list, kind, i+1)
		}
		if seen[r.Code] {
			return fmt.Errorf("list %s: duplicate %s %q", list, kind, r.Code)
		}
		seen[r.Code] = true
	}
	return nil
}

func (d *Data) warn(section string, idx int, msg string) {
	d.Warnings = append(d.Warnings, Warning{
		Section: section,
		Index:   idx,
		Message: msg,
	})
}

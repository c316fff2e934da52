package seed

import (
	"github.com/dbca-wa/wastd/pkg/schema"
)

// Model converts the list without its categories and criteria.
func (l List) Model() schema.ConservationList {
	return schema.ConservationList{
		Code:             l.Code,
		Label:            l.Label,
		Description:      l.Description,
		ScopeWA:          l.Scope.WA,
		ScopeCMW:         l.Scope.CMW,
		ScopeIntl:        l.Scope.Intl,
		ScopeSpecies:     l.Scope.Species,
		ScopeCommunities: l.Scope.Communities,
		ActiveFrom:       l.ActiveFrom,
		ActiveTo:         l.ActiveTo,
	}
}

// CategoryModels converts categories of a stored list. Positions follow
// the order of the file, starting at 1.
func (l List) CategoryModels(listID uint) []schema.ConservationCategory {
	res := make([]schema.ConservationCategory, len(l.Categories))
	for i, r := range l.Categories {
		res[i] = schema.ConservationCategory{
			ConservationListID: listID,
			Code:               r.Code,
			Label:              label(r),
			Description:        r.Description,
			Position:           i + 1,
		}
	}
	return res
}

// CriterionModels converts criteria of a stored list.
func (l List) CriterionModels(listID uint) []schema.ConservationCriterion {
	res := make([]schema.ConservationCriterion, len(l.Criteria))
	for i, r := range l.Criteria {
		res[i] = schema.ConservationCriterion{
			ConservationListID: listID,
			Code:               r.Code,
			Label:              label(r),
			Description:        r.Description,
			Position:           i + 1,
		}
	}
	return res
}

func label(r Ref) string {
	if r.Label == "" {
		return r.Code
	}
	return r.Label
}

// Model converts the community.
func (c Community) Model() schema.Community {
	return schema.Community{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
	}
}

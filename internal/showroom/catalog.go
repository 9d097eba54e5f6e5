// Package showroom binds a loaded vehicle asset to its interactive roles
// and keeps the toggle state, materials, lights and render layers in sync.
package showroom

import (
	"errors"
	"fmt"
	"strings"
)

// CatalogVersion is the version of DefaultCatalog.
const CatalogVersion = 2

// ErrInvalidCatalog is returned when a catalog fails validation.
var ErrInvalidCatalog = errors.New("showroom: invalid catalog")

// Role is the semantic part of the vehicle a node plays.
type Role int

const (
	RoleNone Role = iota
	RoleTurnLight
	RoleBodyInterior
	RoleBody
	RoleDriverDoor
	RoleHazardSwitch
	RoleDriverHeadlight
	RolePassengerHeadlight
	RoleHeadlightSwitch
)

var roleNames = map[Role]string{
	RoleNone:               "none",
	RoleTurnLight:          "turn-light",
	RoleBodyInterior:       "body-interior",
	RoleBody:               "body",
	RoleDriverDoor:         "driver-door",
	RoleHazardSwitch:       "hazard-switch",
	RoleDriverHeadlight:    "driver-headlight",
	RolePassengerHeadlight: "passenger-headlight",
	RoleHeadlightSwitch:    "headlight-switch",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// IsHeadlight reports whether r is one of the headlight roles.
func (r Role) IsHeadlight() bool {
	return r == RoleDriverHeadlight || r == RolePassengerHeadlight
}

// MatchKind selects how a rule compares node names.
type MatchKind int

const (
	// MatchExact requires the name to equal a pattern.
	MatchExact MatchKind = iota
	// MatchSubstring requires the name to contain a pattern.
	// Case variants must be listed as separate patterns.
	MatchSubstring
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	default:
		return fmt.Sprintf("match(%d)", int(k))
	}
}

// Treatment is the material change applied to a node when it is bound.
type Treatment int

const (
	TreatNone Treatment = iota
	// TreatEnhance keeps the node's look and adds clearcoat and reflections.
	TreatEnhance
	// TreatPaint replaces the material with the body paint and enables shadows.
	TreatPaint
	// TreatGhost replaces the material with a near invisible click target.
	TreatGhost
)

func (t Treatment) String() string {
	switch t {
	case TreatNone:
		return "none"
	case TreatEnhance:
		return "enhance"
	case TreatPaint:
		return "paint"
	case TreatGhost:
		return "ghost"
	default:
		return fmt.Sprintf("treatment(%d)", int(t))
	}
}

// Rule binds nodes whose names match Patterns to Role.
type Rule struct {
	Role        Role
	Patterns    []string
	Match       MatchKind
	Multi       bool // collect every match instead of the first
	Interactive bool // clickable
	Treatment   Treatment
}

// Matches reports whether name satisfies the rule.
func (r Rule) Matches(name string) bool {
	for _, p := range r.Patterns {
		switch r.Match {
		case MatchExact:
			if name == p {
				return true
			}
		case MatchSubstring:
			if strings.Contains(name, p) {
				return true
			}
		}
	}
	return false
}

// Catalog is an ordered list of rules. The first matching rule wins, so a
// node is bound to at most one role.
type Catalog struct {
	Version int
	Rules   []Rule
}

// DefaultCatalog returns the role table for the showroom car asset.
func DefaultCatalog() Catalog {
	return Catalog{
		Version: CatalogVersion,
		Rules: []Rule{
			{Role: RoleTurnLight, Patterns: []string{"turn", "Turn"}, Match: MatchSubstring, Multi: true, Treatment: TreatEnhance},
			{Role: RoleBodyInterior, Patterns: []string{"body2Interior_Geo_lodABody_lodA"}, Match: MatchExact, Treatment: TreatEnhance},
			{Role: RoleBody, Patterns: []string{"Body"}, Match: MatchExact, Treatment: TreatPaint},
			{Role: RoleDriverDoor, Patterns: []string{"Driver-DoorExterior-Panel"}, Match: MatchExact, Interactive: true, Treatment: TreatPaint},
			{Role: RoleHazardSwitch, Patterns: []string{"hazard"}, Match: MatchExact, Interactive: true},
			{Role: RoleDriverHeadlight, Patterns: []string{"Driver-Headlight"}, Match: MatchSubstring, Interactive: true, Treatment: TreatEnhance},
			{Role: RolePassengerHeadlight, Patterns: []string{"Passenger-Headlight"}, Match: MatchSubstring, Interactive: true, Treatment: TreatEnhance},
			{Role: RoleHeadlightSwitch, Patterns: []string{"headlight-switch"}, Match: MatchSubstring, Interactive: true, Treatment: TreatGhost},
		},
	}
}

// Validate checks the catalog for rules that could never bind correctly.
func (c Catalog) Validate() error {
	if c.Version <= 0 {
		return fmt.Errorf("%w: version %d", ErrInvalidCatalog, c.Version)
	}
	seen := make(map[Role]bool, len(c.Rules))
	for i, r := range c.Rules {
		if r.Role == RoleNone {
			return fmt.Errorf("%w: rule %d has no role", ErrInvalidCatalog, i)
		}
		if seen[r.Role] {
			return fmt.Errorf("%w: role %s listed twice", ErrInvalidCatalog, r.Role)
		}
		seen[r.Role] = true

		if r.Match != MatchExact && r.Match != MatchSubstring {
			return fmt.Errorf("%w: role %s has unknown match kind %s", ErrInvalidCatalog, r.Role, r.Match)
		}
		if len(r.Patterns) == 0 {
			return fmt.Errorf("%w: role %s has no patterns", ErrInvalidCatalog, r.Role)
		}
		for _, p := range r.Patterns {
			if p == "" {
				return fmt.Errorf("%w: role %s has an empty pattern", ErrInvalidCatalog, r.Role)
			}
		}
		if r.Treatment < TreatNone || r.Treatment > TreatGhost {
			return fmt.Errorf("%w: role %s has unknown treatment %s", ErrInvalidCatalog, r.Role, r.Treatment)
		}
	}
	return nil
}

// Match returns the first rule matching name.
func (c Catalog) Match(name string) (Rule, bool) {
	for _, r := range c.Rules {
		if r.Matches(name) {
			return r, true
		}
	}
	return Rule{}, false
}

// Rule returns the rule for role.
func (c Catalog) Rule(role Role) (Rule, bool) {
	for _, r := range c.Rules {
		if r.Role == role {
			return r, true
		}
	}
	return Rule{}, false
}

package showroom

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/material"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/logger"
)

// Binding is the set of nodes bound to a role. Originals and Snapshots are
// parallel to Nodes and hold the material each node wore right after binding.
type Binding struct {
	Role      Role
	Nodes     []*scene.Node
	Originals []*material.Material
	Snapshots []material.Snapshot
}

// Len returns the number of bound nodes.
func (b *Binding) Len() int {
	return len(b.Nodes)
}

func (b *Binding) add(n *scene.Node) {
	b.Nodes = append(b.Nodes, n)
	b.Originals = append(b.Originals, n.Material)
	if n.Material != nil {
		b.Snapshots = append(b.Snapshots, material.Capture(n.Material))
	} else {
		b.Snapshots = append(b.Snapshots, material.Snapshot{})
	}
}

// Table is the result of binding a scene to a catalog. It is not modified
// after Resolve returns.
type Table struct {
	version     int
	bindings    map[Role]*Binding
	roles       map[*scene.Node]Role
	interactive []*scene.Node
	meshes      []*scene.Node
}

// EmptyTable returns a table with no bindings. Every toggle on a session
// built from it is a no-op.
func EmptyTable() *Table {
	return &Table{
		bindings: make(map[Role]*Binding),
		roles:    make(map[*scene.Node]Role),
	}
}

// Resolve walks root once, normalizes every mesh, and binds matching nodes
// to catalog roles. Roles without matches are left absent and logged.
func Resolve(root *scene.Node, cat Catalog, log *zap.Logger) (*Table, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Named("bindings")
	}

	t := EmptyTable()
	t.version = cat.Version
	if root == nil {
		return t, nil
	}

	matches := make(map[Role]int, len(cat.Rules))

	root.Traverse(func(n *scene.Node) {
		if !n.IsMesh() {
			return
		}
		normalize(n)
		t.meshes = append(t.meshes, n)

		rule, ok := cat.Match(n.Name)
		if !ok {
			return
		}
		matches[rule.Role]++

		b := t.bindings[rule.Role]
		if b != nil && !rule.Multi {
			log.Debug("ignoring extra match",
				zap.Stringer("role", rule.Role),
				zap.String("node", n.Name),
				zap.String("bound", b.Nodes[0].Name))
			return
		}
		if b == nil {
			b = &Binding{Role: rule.Role}
			t.bindings[rule.Role] = b
		}

		treat(n, rule.Treatment)
		b.add(n)
		t.roles[n] = rule.Role
		if rule.Interactive {
			t.interactive = append(t.interactive, n)
		}
	})

	for _, r := range cat.Rules {
		switch n := matches[r.Role]; {
		case n == 0:
			log.Warn("role has no matching node",
				zap.Stringer("role", r.Role),
				zap.Strings("patterns", r.Patterns),
				zap.Stringer("match", r.Match))
		case n > 1 && !r.Multi:
			log.Warn("role matched more nodes than expected",
				zap.Stringer("role", r.Role),
				zap.Int("matches", n))
		}
	}

	names := make([]string, len(t.interactive))
	for i, n := range t.interactive {
		names[i] = fmt.Sprintf("%s (%s)", n.Name, t.roles[n])
	}
	log.Info("bindings resolved",
		zap.Int("catalog_version", cat.Version),
		zap.Int("meshes", len(t.meshes)),
		zap.Int("roles", len(t.bindings)),
		zap.Strings("interactive", names))

	return t, nil
}

// normalize applies the rendering fixes every mesh gets.
func normalize(n *scene.Node) {
	if n.Material != nil {
		n.Material.DoubleSided = true
		n.Material.NeedsUpdate()
	}
	if len(n.Mesh.Positions) > 0 {
		n.Mesh.ComputeVertexNormals()
	}
}

func treat(n *scene.Node, t Treatment) {
	var next *material.Material
	switch t {
	case TreatEnhance:
		if n.Material == nil {
			return
		}
		next = material.Enhanced(material.Capture(n.Material))
		next.Name = n.Material.Name
	case TreatPaint:
		next = material.Paint()
		n.CastShadow = true
		n.ReceiveShadow = true
	case TreatGhost:
		next = material.Ghost()
	default:
		return
	}

	if prev := n.SetMaterial(next); prev != nil {
		prev.Dispose()
	}
}

// Version returns the catalog version the table was built from.
func (t *Table) Version() int {
	return t.version
}

// Get returns the binding for role.
func (t *Table) Get(role Role) (*Binding, bool) {
	b, ok := t.bindings[role]
	return b, ok
}

// First returns the first node bound to role, or nil.
func (t *Table) First(role Role) *scene.Node {
	if b, ok := t.bindings[role]; ok && len(b.Nodes) > 0 {
		return b.Nodes[0]
	}
	return nil
}

// RoleOf returns the role n is bound to, or RoleNone.
func (t *Table) RoleOf(n *scene.Node) Role {
	return t.roles[n]
}

// Interactive returns the clickable nodes in traversal order.
func (t *Table) Interactive() []*scene.Node {
	return t.interactive
}

// Meshes returns every mesh node in the scene.
func (t *Table) Meshes() []*scene.Node {
	return t.meshes
}

// Empty reports whether nothing was bound.
func (t *Table) Empty() bool {
	return len(t.bindings) == 0
}

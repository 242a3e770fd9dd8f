package director

import (
	"fmt"
)

// NodeFault records a node whose validation step failed. The rest of the
// tree is still wired and the length still recomputed.
type NodeFault struct {
	Node Directable
	Err  error
}

func (f NodeFault) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", f.Node.Kind(), f.Node.ID(), f.Node.TypeName(), f.Err)
}

func (f NodeFault) Unwrap() error { return f.Err }

// Validate rebuilds the flattened directables list and rewires every
// back-reference. Groups and tracks are walked in reverse insertion order,
// clips in insertion order; that order is the paint order of list views.
// Nodes that left the tree lose their back-references. Finally the
// post-deserialize hooks run and the length is recomputed.
func (a *Asset) Validate() []NodeFault {
	previous := a.directables

	list := make([]Directable, 0, len(previous))
	var faults []NodeFault

	visit := func(d, parent Directable) {
		list = append(list, d)
		if err := a.validateNode(d, parent); err != nil {
			logger().Warn("node validation failed",
				"node", d.ID(), "kind", d.Kind().String(), "type", d.TypeName(), "err", err)
			faults = append(faults, NodeFault{Node: d, Err: err})
		}
	}

	for i := len(a.groups) - 1; i >= 0; i-- {
		g := a.groups[i]
		visit(g, nil)
		for j := len(g.tracks) - 1; j >= 0; j-- {
			t := g.tracks[j]
			visit(t, g)
			for _, c := range t.clips {
				visit(c, t)
			}
		}
	}

	inTree := make(map[Directable]struct{}, len(list))
	index := make(map[string]Directable, len(list))
	for _, d := range list {
		inTree[d] = struct{}{}
		index[d.ID()] = d
	}
	for _, d := range previous {
		if _, ok := inTree[d]; ok {
			continue
		}
		if root := d.Root(); root == nil || root == a {
			d.detach()
		}
	}

	a.directables = list
	a.index = index

	for _, d := range list {
		if err := afterDeserialize(d); err != nil {
			logger().Warn("post-deserialize hook failed", "node", d.ID(), "type", d.TypeName(), "err", err)
			faults = append(faults, NodeFault{Node: d, Err: err})
		}
	}

	a.UpdateMaxTime()
	a.faults = faults
	return faults
}

func (a *Asset) validateNode(d, parent Directable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return d.validate(a, parent)
}

func afterDeserialize(d Directable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	d.OnAfterDeserialize()
	return nil
}

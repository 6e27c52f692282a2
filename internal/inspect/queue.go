package inspect

import "go/types"

// queue hands out every named type at most once.
type queue struct {
	needs []*types.Named
	done  map[TypeID]struct{}
}

// Needs schedules t unless it was scheduled before.
func (q *queue) Needs(t *types.Named) {
	if q.done == nil {
		q.done = make(map[TypeID]struct{})
	}

	id := idOf(t)
	if _, exists := q.done[id]; exists {
		return
	}

	q.done[id] = struct{}{}
	q.needs = append(q.needs, t)
}

// Next returns the oldest scheduled type.
func (q *queue) Next() (*types.Named, bool) {
	if len(q.needs) == 0 {
		return nil, false
	}

	t := q.needs[0]
	q.needs = q.needs[1:]

	return t, true
}

func idOf(t *types.Named) TypeID {
	obj := t.Obj()
	if obj.Pkg() == nil {
		return TypeID{Name: obj.Name()}
	}

	return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
}

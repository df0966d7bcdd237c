package spatial

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
)

func spawnAt(r *component.Registry, p geo.Point, flags *component.Flags) ecs.EntityID {
	id := r.Spawn()
	r.Position.Set(id, component.Position{Coord: p})
	if flags != nil {
		r.Flags.Set(id, *flags)
	}
	return id
}

func setupTable() (*Table, *component.Registry) {
	return New(10, 10), component.NewRegistry()
}

func TestResetIndexesPositionedEntities(t *testing.T) {
	tbl, r := setupTable()
	a := spawnAt(r, geo.Pt(2, 2), &component.Flags{Solid: true})
	b := spawnAt(r, geo.Pt(2, 2), &component.Flags{Solid: true, BlockSight: true})
	dead := spawnAt(r, geo.Pt(3, 3), &component.Flags{Solid: true})
	r.Destroy(dead)

	tbl.Reset(r)
	c := tbl.Get(geo.Pt(2, 2))
	require.NotNil(t, c)
	assert.Equal(t, []ecs.EntityID{a, b}, c.Entities)
	assert.Equal(t, 2, c.SolidCount)
	assert.True(t, c.Solid)
	assert.Equal(t, 1, c.OpaqueCount)
	assert.False(t, tbl.IsSolid(geo.Pt(3, 3)), "tombstoned entities are not indexed")
}

func TestWalkMovesEntityBetweenCells(t *testing.T) {
	tbl, r := setupTable()
	hero := spawnAt(r, geo.Pt(4, 4), &component.Flags{Solid: true})
	tbl.Reset(r)

	tbl.Update(action.New(hero, action.WalkDirection{Dir: geo.Pt(1, 0)}), r)

	assert.False(t, tbl.Get(geo.Pt(4, 4)).Has(hero))
	assert.False(t, tbl.IsSolid(geo.Pt(4, 4)))
	assert.True(t, tbl.Get(geo.Pt(5, 4)).Has(hero))
	assert.True(t, tbl.IsSolid(geo.Pt(5, 4)))
}

func TestCountsNeverGoNegative(t *testing.T) {
	tbl, r := setupTable()
	door := spawnAt(r, geo.Pt(1, 1), &component.Flags{Solid: true, BlockSight: true})
	tbl.Reset(r)

	open := action.New(ecs.NilEntity, action.OpenDoor{Door: door})
	tbl.Update(open, r)
	tbl.Update(open, r)
	tbl.Update(action.New(door, action.KillEntity{}), r)

	c := tbl.Get(geo.Pt(1, 1))
	assert.Equal(t, 0, c.SolidCount)
	assert.Equal(t, 0, c.OpaqueCount)
	assert.False(t, c.Solid)
	assert.False(t, c.Opaque)
	assert.Empty(t, c.Entities)
}

func TestOpeningAnOpenDoorKeepsOccupantCounts(t *testing.T) {
	tbl, r := setupTable()
	door := spawnAt(r, geo.Pt(1, 1), &component.Flags{})
	spawnAt(r, geo.Pt(1, 1), &component.Flags{Solid: true})
	tbl.Reset(r)

	tbl.Update(action.New(ecs.NilEntity, action.OpenDoor{Door: door}), r)

	c := tbl.Get(geo.Pt(1, 1))
	assert.Equal(t, 1, c.SolidCount)
	assert.True(t, c.Solid)
}

func TestDropAndPickUp(t *testing.T) {
	tbl, r := setupTable()
	hero := spawnAt(r, geo.Pt(6, 6), &component.Flags{Solid: true})
	potion := r.Spawn()
	tbl.Reset(r)

	tbl.Update(action.New(hero, action.DropItem{Item: potion}), r)
	assert.Equal(t, []ecs.EntityID{hero, potion}, tbl.Get(geo.Pt(6, 6)).Entities)
	assert.Equal(t, 1, tbl.Get(geo.Pt(6, 6)).SolidCount, "non-solid item adds no count")

	tbl.Update(action.New(hero, action.PickUpItem{Item: potion}), r)
	assert.Equal(t, []ecs.EntityID{hero}, tbl.Get(geo.Pt(6, 6)).Entities)
}

func TestUnhandledCommandsAreNoOps(t *testing.T) {
	tbl, r := setupTable()
	hero := spawnAt(r, geo.Pt(6, 6), nil)
	tbl.Reset(r)
	before := *tbl.Get(geo.Pt(6, 6))

	tbl.Update(action.New(hero, action.Wait{}), r)
	tbl.Update(action.New(hero, action.SpawnFog{Pos: geo.Pt(6, 6)}), r)
	assert.Equal(t, before, *tbl.Get(geo.Pt(6, 6)))
}

func TestInCircleIsEuclidean(t *testing.T) {
	tbl, r := setupTable()
	near := spawnAt(r, geo.Pt(5, 7), nil)   // distance 2
	corner := spawnAt(r, geo.Pt(7, 7), nil) // distance 2.83
	tbl.Reset(r)

	hits := tbl.InCircle(geo.Pt(5, 5), 2)
	require.Len(t, hits, 1)
	assert.Equal(t, near, hits[0].Entity)
	wide := tbl.InCircle(geo.Pt(5, 5), 3)
	require.Len(t, wide, 2)
	assert.Equal(t, corner, wide[1].Entity)
}

func TestClosestSortsByTileDistance(t *testing.T) {
	tbl, r := setupTable()
	self := spawnAt(r, geo.Pt(5, 5), nil)
	far := spawnAt(r, geo.Pt(2, 5), nil)
	near := spawnAt(r, geo.Pt(6, 6), nil)
	tbl.Reset(r)

	hits := tbl.ByProximity(geo.Pt(5, 5), 5)
	require.Len(t, hits, 3)
	assert.Equal(t, []ecs.EntityID{self, near, far}, []ecs.EntityID{hits[0].Entity, hits[1].Entity, hits[2].Entity})

	h, ok := tbl.Closest(geo.Pt(5, 5), 5, true)
	require.True(t, ok)
	assert.Equal(t, near, h.Entity)

	h, ok = tbl.Closest(geo.Pt(5, 5), 5, false)
	require.True(t, ok)
	assert.Equal(t, self, h.Entity)

	_, ok = tbl.Closest(geo.Pt(0, 0), 1, true)
	assert.False(t, ok)
}

func TestGetOffGrid(t *testing.T) {
	tbl, _ := setupTable()
	assert.Nil(t, tbl.Get(geo.NoPosition))
	assert.Nil(t, tbl.Get(geo.Pt(10, 0)))
	assert.False(t, tbl.IsSolid(geo.Pt(-3, 2)))
}

func TestTableJSONRoundTrip(t *testing.T) {
	tbl, r := setupTable()
	spawnAt(r, geo.Pt(1, 2), &component.Flags{Solid: true, BlockSight: true})
	spawnAt(r, geo.Pt(9, 9), nil)
	tbl.Reset(r)

	data, err := json.Marshal(tbl)
	require.NoError(t, err)
	var got Table
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *tbl, got)
}

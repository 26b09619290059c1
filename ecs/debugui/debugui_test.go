package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/stencil/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagSystem struct {
	ecs.BaseSystem
}

func newTagSystem(name string) *tagSystem {
	return &tagSystem{BaseSystem: ecs.NewBaseSystem(name)}
}

type inspected struct {
	Name    string
	Level   int
	Child   *inspected
	private int
}

func newToolingWorld(t *testing.T) (*ecs.World, []*ecs.Object) {
	t.Helper()
	w := ecs.NewWorld()
	render := newTagSystem("render")
	physics := newTagSystem("physics")

	rock := w.DefineTemplate("rock")
	rock.AddSystem(render)
	rock.AddSystem(physics)
	ecs.Add(rock.Props(), "mass", 10)

	objs := []*ecs.Object{
		rock.MakeInstance(),
		w.NewObject("ghost"),
		rock.MakeInstance(),
	}
	objs[1].AddSystem(render)
	w.Flush()
	return w, objs
}

func TestCollectAndFilterObjects(t *testing.T) {
	w, objs := newToolingWorld(t)

	rows := collectObjects(w.Objects())
	require.Len(t, rows, 3)
	assert.Equal(t, objs[0].ID(), rows[0].ID)
	assert.Equal(t, "rock", rows[0].Template)
	assert.Equal(t, []string{"render", "physics"}, rows[0].Systems)
	assert.Equal(t, []string{"mass"}, rows[0].Properties)
	assert.Equal(t, ecs.StateInitialized, rows[1].State)

	assert.Len(t, filterObjects(rows, "", "rock"), 2)
	assert.Len(t, filterObjects(rows, "GHOST", ""), 1)
	assert.Len(t, filterObjects(rows, "mass", ""), 2)
	assert.Empty(t, filterObjects(rows, "ghost", "rock"))
	assert.Len(t, filterObjects(rows, "", ""), 3)
}

func TestSortObjects(t *testing.T) {
	rows := []ObjectInfo{
		{ID: 2, Name: "b"},
		{ID: 1, Name: "c"},
		{ID: 3, Name: "a"},
	}

	sortObjects(rows, 0, true)
	assert.Equal(t, ecs.ObjectID(1), rows[0].ID)

	sortObjects(rows, 1, false)
	assert.Equal(t, "c", rows[0].Name)
	assert.Equal(t, "a", rows[2].Name)
}

func TestBrowserCacheFollowsWorld(t *testing.T) {
	w, _ := newToolingWorld(t)
	browser := NewObjectBrowserWindow(10)

	browser.rebuildCacheIfNeeded(w)
	require.Len(t, browser.cache.objects, 3)

	w.NewObject("late")
	browser.rebuildCacheIfNeeded(w)
	assert.Len(t, browser.cache.objects, 4)

	browser.FilterTemplate("rock")
	assert.Equal(t, "rock", browser.filterTemplate)
}

func TestMembersOfAll(t *testing.T) {
	w, objs := newToolingWorld(t)

	assert.Equal(t, []*ecs.Object{objs[0], objs[2]}, membersOfAll(w, []string{"physics", "render"}))
	assert.Len(t, membersOfAll(w, []string{"render"}), 3)
	assert.Empty(t, membersOfAll(w, []string{"render", "missing"}))
	assert.Empty(t, membersOfAll(w, nil))
}

func TestSortTemplates(t *testing.T) {
	rows := []ecs.TemplateStats{
		{Name: "a", Live: 1, Created: 5},
		{Name: "b", Live: 3, Created: 3},
		{Name: "c", Live: 2, Created: 4},
	}

	sortTemplates(rows, 3, false)
	assert.Equal(t, "b", rows[0].Name)

	sortTemplates(rows, 4, true)
	assert.Equal(t, "b", rows[0].Name)
	assert.Equal(t, "a", rows[2].Name)
}

func TestReflectionCache(t *testing.T) {
	rc := NewReflectionCache()
	typ := reflect.TypeFor[inspected]()

	fields := rc.Fields(typ)
	require.Len(t, fields, 3, "unexported fields are skipped")
	assert.Equal(t, "Child", fields[2].Name)
	assert.True(t, fields[2].IsPointer)
	assert.Equal(t, reflect.Struct, fields[2].Kind)
	assert.Equal(t, reflect.Int, fields[1].Kind)

	rc.Fields(typ)
	assert.Equal(t, 1, rc.Len())

	assert.Nil(t, rc.Fields(reflect.TypeFor[int]()))
}

func TestPropertyLabel(t *testing.T) {
	store := ecs.NewPropertyStore(nil)
	ecs.Add(store, "mass", 10)
	assert.Equal(t, "mass (int)", propertyLabel(store.Property("mass")))
}

func TestPerformanceHistory(t *testing.T) {
	ps := NewPerformanceStatsWindow(4)
	ps.record(0.010)
	avg := ps.record(0.030)
	assert.InDelta(t, 10.0, avg, 1e-3)

	for range 4 {
		avg = ps.record(0.020)
	}
	assert.InDelta(t, 20.0, avg, 1e-3)
}

package fieldwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection(t *testing.T) {
	table := func(t *testing.T) *Table {
		tbl := NewTable()
		require.NoError(t, tbl.Declare((*camera)(nil),
			React("OnNameChanged", "Name"),
		))
		return tbl
	}

	t.Run("reselection resets the baseline", func(t *testing.T) {
		ins := newInspector(t, table(t))
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		// the edit happens while the object is not inspected
		ins.Select()
		cam.Name = "backup"

		ins.Select(cam)
		assert.NoError(t, ins.Commit())
		assert.Empty(t, *cam.calls)

		cam.Name = "main"
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"name"}, *cam.calls)
	})

	t.Run("objects staying selected keep their baseline", func(t *testing.T) {
		ins := newInspector(t, table(t))
		kept := newCamera()
		dropped := newCamera()

		ins.Select(kept, dropped)
		assert.NoError(t, ins.Commit())

		ins.Select(kept)
		kept.Name = "backup"
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"name"}, *kept.calls)
	})

	t.Run("invalidate forces a first observation", func(t *testing.T) {
		ins := newInspector(t, table(t))
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		cam.Name = "backup"
		ins.Invalidate(cam)

		assert.NoError(t, ins.Commit())
		assert.Empty(t, *cam.calls)
	})

	t.Run("multi-object batch edits", func(t *testing.T) {
		ins := newInspector(t, table(t))
		a := newCamera()
		b := newCamera()

		ins.Select(a, b)
		assert.NoError(t, ins.Commit())

		a.Name = "left"
		b.Name = "right"
		assert.NoError(t, ins.Commit())

		assert.Equal(t, []string{"name"}, *a.calls)
		assert.Equal(t, []string{"name"}, *b.calls)
	})

	t.Run("non-comparable objects are skipped", func(t *testing.T) {
		ins := newInspector(t, table(t))
		cam := newCamera()

		// a struct value with a slice field has no usable identity
		ins.Select(struct{ Tags []string }{Tags: []string{"x"}}, cam)
		assert.NoError(t, ins.Commit())

		cam.Name = "backup"
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"name"}, *cam.calls)

		ins.Invalidate(struct{ Tags []string }{})
	})

	t.Run("commit inside an edit defers to the end of the cycle", func(t *testing.T) {
		ins := newInspector(t, table(t))
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		err := ins.Edit(func() {
			cam.Name = "backup"
			assert.NoError(t, ins.Commit())
			assert.Empty(t, *cam.calls)
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"name"}, *cam.calls)
	})

	t.Run("edit groups edits into one cycle", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Declare((*camera)(nil),
			React("OnLensChanged", "Name", "Zoom"),
		))

		ins := newInspector(t, tbl)
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		err := ins.Edit(func() {
			cam.Name = "backup"
			ins.Edit(func() { // nested edits extend the same cycle
				cam.Zoom = 2.0
			})
			assert.Empty(t, *cam.calls)
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"lens:Name", "lens:Zoom"}, *cam.calls)
	})
}

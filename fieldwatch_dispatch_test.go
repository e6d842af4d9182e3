package fieldwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	t.Run("niladic fires once per cycle", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Declare((*camera)(nil),
			React("OnNameChanged", "Name", "Zoom"),
		))

		ins := newInspector(t, tbl)
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		// both watched fields change, still a single call
		cam.Name = "backup"
		cam.Zoom = 2.0
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"name"}, *cam.calls)
	})

	t.Run("field-name handler fires once per changed field", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Declare((*camera)(nil),
			React("OnLensChanged", "Name", "Zoom"),
		))

		ins := newInspector(t, tbl)
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		cam.Zoom = 2.0
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"lens:Zoom"}, *cam.calls)

		cam.Name = "backup"
		cam.Zoom = 3.0
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"lens:Zoom", "lens:Name", "lens:Zoom"}, *cam.calls)
	})

	t.Run("descriptors fire in declaration order", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Declare((*camera)(nil),
			React("OnLensChanged", "Zoom"),
			React("OnNameChanged", "Name"),
			React("OnAnyChanged", "Name", "Zoom"),
		))

		ins := newInspector(t, tbl)
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		cam.Name = "backup"
		cam.Zoom = 2.0
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"lens:Zoom", "name", "any:Name", "any:Zoom"}, *cam.calls)
	})

	t.Run("same method in two declarations fires per declaration", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Declare((*camera)(nil),
			React("OnAnyChanged", "Name"),
			React("OnAnyChanged", "Zoom"),
		))

		ins := newInspector(t, tbl)
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		cam.Name = "backup"
		cam.Zoom = 2.0
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"any:Name", "any:Zoom"}, *cam.calls)
	})

	t.Run("non-invocable declarations never fire but still track", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Declare((*camera)(nil),
			React("Resize", "Zoom"),
			React("OnAnyChanged", "Zoom"),
		))

		ins := newInspector(t, tbl)
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())

		cam.Zoom = 2.0
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"any:Zoom"}, *cam.calls)

		// the shared baseline was updated, so nothing fires again
		assert.NoError(t, ins.Commit())
		assert.Equal(t, []string{"any:Zoom"}, *cam.calls)
	})

	t.Run("unchanged object is untouched", func(t *testing.T) {
		tbl := NewTable()
		require.NoError(t, tbl.Declare((*camera)(nil), React("OnNameChanged", "Name")))

		ins := newInspector(t, tbl)
		cam := newCamera()

		ins.Select(cam)
		assert.NoError(t, ins.Commit())
		assert.NoError(t, ins.Commit())
		assert.Empty(t, *cam.calls)
	})
}

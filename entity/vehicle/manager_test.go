package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/entity/vehicle"
)

func TestVehicleManager(t *testing.T) {
	m := vehicle.NewManager()
	require.NoError(t, m.Init([]vehicle.Vehicle{
		{ID: "V1", TypeID: "car"},
		{ID: "F1", TypeID: "freight"},
	}))
	typ, ok := m.Type("V1")
	assert.True(t, ok)
	assert.Equal(t, "car", typ)
	_, ok = m.Type("bus_1")
	assert.False(t, ok)

	var vehicles entity.IVehicleManager = m
	typ, ok = vehicles.Type("F1")
	assert.True(t, ok)
	assert.Equal(t, "freight", typ)
}

func TestVehicleManagerInvalid(t *testing.T) {
	assert.Error(t, vehicle.NewManager().Init([]vehicle.Vehicle{{ID: "V1", TypeID: "car"}, {ID: "V1", TypeID: "car"}}))
	assert.Error(t, vehicle.NewManager().Init([]vehicle.Vehicle{{ID: "V1"}}))
}

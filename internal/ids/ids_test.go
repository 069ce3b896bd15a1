package ids

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, at time.Time, r int) {
	t.Helper()
	origNow, origRand, origUUID := now, randIntN, newUUID
	t.Cleanup(func() { now, randIntN, newUUID = origNow, origRand, origUUID })

	now = func() time.Time { return at }
	randIntN = func(int) int { return r }
	newUUID = func() string { return "0f8fad5b-d9cb-469f-a165-70867728950e" }
}

func TestNew_Format(t *testing.T) {
	stub(t, time.UnixMilli(1700000001234), 7)

	id, err := New(Freelancer)
	require.NoError(t, err)
	assert.Equal(t, "FL123407", id)

	id, err = New(Client)
	require.NoError(t, err)
	assert.Equal(t, "CL123407", id)

	id, err = New(Job)
	require.NoError(t, err)
	assert.Equal(t, "JB123407", id)
}

func TestNew_PadsShortMillis(t *testing.T) {
	stub(t, time.UnixMilli(1700000000005), 3)

	id, err := New(Job)
	require.NoError(t, err)
	assert.Equal(t, "JB000503", id)
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(Kind("admin"))
	require.Error(t, err)
}

func TestNew_AlwaysValid(t *testing.T) {
	for i := 0; i < 200; i++ {
		for _, k := range []Kind{Freelancer, Client, Job} {
			id, err := New(k)
			require.NoError(t, err)
			require.True(t, Validate(id, k), id)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		id   string
		kind Kind
		want bool
	}{
		{"FL000001", Freelancer, true},
		{"CL000001", Client, true},
		{"JB123456", Job, true},
		{"FL000001", Client, false},
		{"FL00001", Freelancer, false},
		{"FL0000011", Freelancer, false},
		{"fl000001", Freelancer, false},
		{"FL000001", Kind("x"), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Validate(c.id, c.kind), "%s/%s", c.id, c.kind)
	}
}

func TestFallbackJobID(t *testing.T) {
	stub(t, time.UnixMilli(1700000001234), 0)
	assert.Equal(t, "job_1700000001234_0f8fad5bd", FallbackJobID())
}

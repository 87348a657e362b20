package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackToActive(t *testing.T) {
	require.Equal(t, MainNet, Resolve(nil))
	require.Equal(t, ForkIDNet, Resolve(ForkIDNet))
}

func TestSelectSwapsActiveProfile(t *testing.T) {
	original := Current()
	defer func() { active.Store(original) }()

	require.Nil(t, Select(StrictNet.Name))
	require.Equal(t, StrictNet, Current())

	err := Select("does-not-exist")
	require.NotNil(t, err)
}

func TestRegisterCustomProfile(t *testing.T) {
	custom := &Params{Name: "customnet", Family: FamilyLegacy}
	require.Nil(t, Register(custom))

	original := Current()
	defer func() { active.Store(original) }()

	require.Nil(t, Select("customnet"))
	require.Equal(t, custom, Current())
}

func TestRequireFamily(t *testing.T) {
	require.Nil(t, RequireFamily(MainNet, FamilyLegacy))
	require.NotNil(t, RequireFamily(MainNet, FamilyBlake))
	require.Nil(t, RequireFamily(BlakeNet, FamilyBlake))
}

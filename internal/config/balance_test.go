package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBalance(t *testing.T) {
	bal := DefaultBalance()
	assert.EqualValues(t, 25000, bal.StartingCash)
	assert.Equal(t, 25, bal.RenovationIncrement)
	assert.InDelta(t, 0.30, bal.EventProbability, 1e-9)
	assert.Len(t, bal.Tenants, 5)
	assert.Len(t, bal.UpgradePrices, 4)

	student := bal.Tenants["student"]
	assert.Equal(t, 70, student.RentMinPct)
	assert.Equal(t, 85, student.RentMaxPct)
	assert.Equal(t, 60, student.MinCondition)
}

func TestLoadBalanceOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yml")
	body := []byte("starting_cash: 50000\nevent_probability: 0.5\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	bal, err := LoadBalance(path)
	require.NoError(t, err)
	assert.EqualValues(t, 50000, bal.StartingCash)
	assert.InDelta(t, 0.5, bal.EventProbability, 1e-9)
	// Untouched fields keep their defaults.
	assert.Equal(t, 25, bal.RenovationIncrement)
	assert.Len(t, bal.Tenants, 5)
}

func TestLoadBalanceEmptyPath(t *testing.T) {
	bal, err := LoadBalance("")
	require.NoError(t, err)
	assert.EqualValues(t, 25000, bal.StartingCash)
}

func TestLoadBalanceMissingFile(t *testing.T) {
	bal, err := LoadBalance(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
	// Defaults survive a load failure.
	assert.EqualValues(t, 25000, bal.StartingCash)
}

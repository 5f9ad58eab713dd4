package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyWastePercent(t *testing.T) {
	net := ApplyWastePercent(MustMoney("1000"), MustMoney("5"))
	assert.True(t, net.Equal(MustMoney("950")), "got %s", net)

	// 5% waste at 45000/kg prices the load at 42,750,000.
	revenue := net.Mul(MustMoney("45000"))
	assert.True(t, revenue.Equal(MustMoney("42750000")), "got %s", revenue)
}

func TestApplyWastePercent_ZeroWaste(t *testing.T) {
	net := ApplyWastePercent(MustMoney("1800"), Zero())
	assert.True(t, net.Equal(MustMoney("1800")))
}

func TestDivSafe(t *testing.T) {
	assert.True(t, DivSafe(MustMoney("100"), MustMoney("4")).Equal(MustMoney("25")))
	assert.True(t, DivSafe(MustMoney("100"), Zero()).IsZero())
	assert.True(t, DivSafe(Zero(), Zero()).IsZero())
}

func TestRatioPercent(t *testing.T) {
	assert.True(t, RatioPercent(MustMoney("1"), MustMoney("4")).Equal(MustMoney("25")))
	assert.True(t, RatioPercent(MustMoney("1"), Zero()).IsZero())
}

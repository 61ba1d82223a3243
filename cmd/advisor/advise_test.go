package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-advisor/internal/charts"
	"github.com/lox/holdem-advisor/internal/engine"
)

func TestParseVillain(t *testing.T) {
	p, err := parseVillain("25", 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, p.Stack)
	assert.True(t, p.Active)

	p, err = parseVillain("co:25", 3, 100)
	require.NoError(t, err)
	assert.Equal(t, charts.CO, p.Position)
	assert.Equal(t, 2500.0, p.Stack)

	p, err = parseVillain("CO:25:2.5", 4, 100)
	require.NoError(t, err)
	assert.Equal(t, 250.0, p.CurrentBet)

	_, err = parseVillain("XX:25", 2, 100)
	assert.Error(t, err)

	_, err = parseVillain("CO:lots", 2, 100)
	assert.Error(t, err)
}

func TestStreetForBoard(t *testing.T) {
	assert.Equal(t, engine.Preflop, streetForBoard(""))
	assert.Equal(t, engine.Flop, streetForBoard("Td7s8h"))
	assert.Equal(t, engine.Turn, streetForBoard("Td7s8h2c"))
	assert.Equal(t, engine.River, streetForBoard("Td7s8h2c9d"))
}

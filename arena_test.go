// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

type cellMeta struct {
	width   int
	height  int
	wrapped bool
}

func TestAllocateReturnsZeroedValue(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	m := Allocate[cellMeta](a)
	require.NotNil(t, m)
	require.Equal(t, cellMeta{}, *m)

	m.width = 12
	m.height = 3

	// a second allocation must not share memory with the first
	m2 := Allocate[cellMeta](a)
	require.Equal(t, cellMeta{}, *m2)
	require.Equal(t, cellMeta{width: 12, height: 3}, *m)
}

func TestAllocateAlignment(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	// misalign the bump cursor on purpose
	require.NotNil(t, a.Alloc(3))

	v := Allocate[uint64](a)
	require.Zero(t, uintptr(unsafe.Pointer(v))%unsafe.Alignof(uint64(0)))
}

func TestAllocateNilArenaFallsBackToNew(t *testing.T) {
	m := Allocate[cellMeta](nil)
	require.NotNil(t, m)
	require.Equal(t, cellMeta{}, *m)
}

func TestAllocateReleasedArenaFallsBackToNew(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	a.Release()

	m := Allocate[cellMeta](a)
	require.NotNil(t, m)
}

func TestAllocateZeroSizedType(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	used := a.Len()
	v := Allocate[struct{}](a)
	require.NotNil(t, v)
	require.Equal(t, used, a.Len(), "zero-sized types take no arena space")
}

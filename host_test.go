// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHostFuncsOpaqueThreading(t *testing.T) {
	type ctx struct{ allocs, frees int }
	opaque := &ctx{}

	host := HostFuncs{
		Alloc: func(size int, o any) []byte {
			o.(*ctx).allocs++
			return make([]byte, size)
		},
		Free: func(_ []byte, o any) {
			o.(*ctx).frees++
		},
		Opaque: opaque,
	}

	a, err := New(WithHostFuncs(host))
	require.NoError(t, err)
	require.Equal(t, 1, opaque.allocs)

	require.NotNil(t, a.Alloc(100_000))
	require.Equal(t, 2, opaque.allocs)

	a.Release()
	require.Equal(t, 2, opaque.frees)
}

func TestHostFuncsMissingFunctionSelectsDefaults(t *testing.T) {
	called := false

	// Free missing: the whole record is replaced by the defaults, so
	// the provided Alloc must never run
	a, err := New(WithHostFuncs(HostFuncs{
		Alloc: func(size int, _ any) []byte {
			called = true
			return make([]byte, size)
		},
	}))
	require.NoError(t, err)
	require.False(t, called)
	require.NotNil(t, a.Alloc(64))
	require.False(t, called)

	// Alloc missing: same substitution
	a, err = New(WithHostFuncs(HostFuncs{
		Free: func([]byte, any) { called = true },
	}))
	require.NoError(t, err)
	a.Release()
	require.False(t, called)
}

func TestHostFuncsEmptyRecordSelectsDefaults(t *testing.T) {
	a, err := New(WithHostFuncs(HostFuncs{}))
	require.NoError(t, err)
	require.NotNil(t, a.Alloc(64))
}

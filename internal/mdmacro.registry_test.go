package internal

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTagResolver implements TagResolver for testing
type mockTagResolver struct {
	name    string
	pattern *regexp.Regexp
	output  string
	err     error
}

func newMockTagResolver(name string) *mockTagResolver {
	return &mockTagResolver{
		name:    name,
		pattern: CompileTagPattern(`<<\s*` + name + `\s*>>\s*\n`),
		output:  "resolved:" + name,
	}
}

func (m *mockTagResolver) TagName() string { return m.name }

func (m *mockTagResolver) Pattern() *regexp.Regexp { return m.pattern }

func (m *mockTagResolver) Resolve(Match) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

func TestRegistry_NewRegistry(t *testing.T) {
	reg := NewRegistry(nil)
	require.NotNil(t, reg)
	assert.False(t, reg.Has(TagNameInclude))
}

func TestRegistry_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		reg := NewRegistry(nil)
		require.NoError(t, reg.Register(newMockTagResolver("alpha")))
		assert.True(t, reg.Has("alpha"))
		assert.False(t, reg.Has("beta"))
	})

	t.Run("nil resolver", func(t *testing.T) {
		reg := NewRegistry(nil)
		err := reg.Register(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNilTagResolver)
	})

	t.Run("empty name", func(t *testing.T) {
		reg := NewRegistry(nil)
		err := reg.Register(&mockTagResolver{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEmptyTagName)
	})

	t.Run("first come wins", func(t *testing.T) {
		reg := NewRegistry(nil)
		first := newMockTagResolver("dup")
		second := newMockTagResolver("dup")
		second.output = "second"

		require.NoError(t, reg.Register(first))
		err := reg.Register(second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgTagResolverExists)

		got, ok := reg.Get("dup")
		require.True(t, ok)
		assert.Same(t, first, got)
	})

	t.Run("must register panics on duplicate", func(t *testing.T) {
		reg := NewRegistry(nil)
		reg.MustRegister(newMockTagResolver("x"))
		assert.Panics(t, func() { reg.MustRegister(newMockTagResolver("x")) })
	})
}

func TestRegisterBuiltins(t *testing.T) {
	reg := NewRegistry(nil)
	RegisterBuiltins(reg, NewFragments(newMapLocator(nil), FragmentConfig{}))

	for _, name := range PipelineOrder {
		got, ok := reg.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, name, got.TagName())
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry(nil)
	RegisterBuiltins(reg, NewFragments(newMapLocator(nil), FragmentConfig{}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range PipelineOrder {
				_, ok := reg.Get(name)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

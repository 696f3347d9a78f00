package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"smp/internal/platform/config"
	dErrors "smp/pkg/domain-errors"
)

type stubProvider struct {
	Provider
	name string
}

func factoryNamed(name string) Factory {
	return func(context.Context, config.Backend, *slog.Logger) (Provider, error) {
		return &stubProvider{name: name}, nil
	}
}

func installerFor(ids ...string) Installer {
	return func(r Registrar) error {
		for _, id := range ids {
			if err := r.Register(id, factoryNamed(id)); err != nil {
				return err
			}
		}
		return nil
	}
}

type RegistrySuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) TestRegister() {
	s.Run("duplicate id fails and keeps the first factory", func() {
		r, err := NewRegistry(installerFor("memory"))
		s.Require().NoError(err)

		err = r.Register("memory", factoryNamed("second"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateBackend))

		f, ok := r.Resolve("memory")
		s.Require().True(ok)
		p, err := f(context.Background(), config.Backend{}, nil)
		s.Require().NoError(err)
		s.Equal("memory", p.(*stubProvider).name)
	})

	s.Run("duplicate across installers aborts construction", func() {
		_, err := NewRegistry(installerFor("sql"), installerFor("sql"))
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateBackend))
	})

	s.Run("rejects empty id and nil factory", func() {
		r, err := NewRegistry()
		s.Require().NoError(err)
		s.True(dErrors.HasCode(r.Register(" ", factoryNamed("x")), dErrors.CodeValidation))
		s.True(dErrors.HasCode(r.Register("x", nil), dErrors.CodeValidation))
	})
}

func (s *RegistrySuite) TestResolve() {
	r, err := NewRegistry(installerFor("memory", "file"))
	s.Require().NoError(err)

	s.Run("empty id is absent", func() {
		_, ok := r.Resolve("")
		s.False(ok)
	})

	s.Run("unknown id is absent", func() {
		_, ok := r.Resolve("mongodb")
		s.False(ok)
	})

	s.Run("ids keep registration order", func() {
		s.Require().NoError(r.Register("redis", factoryNamed("redis")))
		s.Equal([]string{"memory", "file", "redis"}, r.IDs())
	})
}

func (s *RegistrySuite) TestReinitialize() {
	s.Run("drops explicit registrations and re-runs installers", func() {
		r, err := NewRegistry(installerFor("memory", "file"))
		s.Require().NoError(err)
		s.Require().NoError(r.Register("extra", factoryNamed("extra")))

		s.Require().NoError(r.Reinitialize())
		s.Equal([]string{"memory", "file"}, r.IDs())
		_, ok := r.Resolve("extra")
		s.False(ok)
	})

	s.Run("failed pass keeps the previous table", func() {
		calls := 0
		flaky := func(reg Registrar) error {
			calls++
			if calls > 1 {
				return errors.New("discovery failed")
			}
			return reg.Register("memory", factoryNamed("memory"))
		}
		r, err := NewRegistry(flaky)
		s.Require().NoError(err)

		s.Require().Error(r.Reinitialize())
		_, ok := r.Resolve("memory")
		s.True(ok)
	})
}

// TestReinitialize_AtomicPublish resolves while other goroutines rebuild the
// table. Every snapshot must contain all or none of one pass's ids.
//
// Justification: readers must never observe a partially rebuilt table.
func TestReinitialize_AtomicPublish(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = fmt.Sprintf("backend-%02d", i)
	}
	r, err := NewRegistry(installerFor(ids...))
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					assert.NoError(t, r.Reinitialize())
				}
			}
		}()
	}

	for range 2000 {
		snapshot := r.IDs()
		require.Len(t, snapshot, len(ids))
		for _, id := range ids {
			_, ok := r.Resolve(id)
			require.True(t, ok, id)
		}
	}
	close(stop)
	wg.Wait()
}

package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/denis-svg/Crash-Game/discovery/domain"
	"github.com/denis-svg/Crash-Game/discovery/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ interfaces.Store = (*Store)(nil)

func reg(t, u string) domain.Registration {
	return domain.Registration{ServiceType: t, ServiceURL: u}
}

func TestStore_RegisterKeepsOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Register(ctx, reg("auth_service", "http://a")))
	require.NoError(t, s.Register(ctx, reg("auth_service", "http://b")))
	require.NoError(t, s.Register(ctx, reg("auth_service", "http://a")))
	require.NoError(t, s.Register(ctx, reg("game_service", "http://g")))

	got, err := s.Services(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"auth_service": {"http://a", "http://b", "http://a"},
		"game_service": {"http://g"},
	}, got)
}

func TestStore_Deregister(t *testing.T) {
	tests := []struct {
		name      string
		seed      []domain.Registration
		target    domain.Registration
		wantKnown bool
		want      map[string][]string
	}{
		{
			name:      "removes_every_match",
			seed:      []domain.Registration{reg("auth_service", "http://a"), reg("auth_service", "http://b"), reg("auth_service", "http://a")},
			target:    reg("auth_service", "http://a"),
			wantKnown: true,
			want:      map[string][]string{"auth_service": {"http://b"}},
		},
		{
			name:      "known_type_without_match",
			seed:      []domain.Registration{reg("auth_service", "http://a")},
			target:    reg("auth_service", "http://z"),
			wantKnown: true,
			want:      map[string][]string{"auth_service": {"http://a"}},
		},
		{
			name:      "emptied_type_stays_known",
			seed:      []domain.Registration{reg("game_service", "http://g")},
			target:    reg("game_service", "http://g"),
			wantKnown: true,
			want:      map[string][]string{"game_service": {}},
		},
		{
			name:      "unknown_type",
			seed:      []domain.Registration{reg("auth_service", "http://a")},
			target:    reg("billing_service", "http://a"),
			wantKnown: false,
			want:      map[string][]string{"auth_service": {"http://a"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewStore()
			for _, r := range tt.seed {
				require.NoError(t, s.Register(ctx, r))
			}

			known, err := s.Deregister(ctx, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKnown, known)
			got, err := s.Services(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_ServicesIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Register(ctx, reg("auth_service", "http://a")))

	got, err := s.Services(ctx)
	require.NoError(t, err)
	got["auth_service"][0] = "http://mutated"
	got["game_service"] = []string{"http://x"}

	again, err := s.Services(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"auth_service": {"http://a"}}, again)
}

func TestStore_ConcurrentRegister(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_ = s.Register(ctx, reg("game_service", fmt.Sprintf("http://g-%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	got, err := s.Services(ctx)
	require.NoError(t, err)
	assert.Len(t, got["game_service"], 200)
}

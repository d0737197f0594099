package mods

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func entries(names ...string) []Entry {
	ee := make([]Entry, len(names))
	for i, name := range names {
		ee[i] = Entry{ID: uint64(i + 1), Name: name}
	}
	return ee
}

func TestLaunchArgs(t *testing.T) {
	testCases := []struct {
		name          string
		set           Set
		wantMod       string
		wantServerMod string
	}{
		{
			name: "empty set yields no flags",
		},
		{
			name:    "collection only",
			set:     Set{Collection: entries("CF", "Dabs Framework")},
			wantMod: "@CF;@Dabs Framework",
		},
		{
			name:          "individual only",
			set:           Set{Individual: entries("Expansion")},
			wantServerMod: "@Expansion",
		},
		{
			name: "both lists keep their own order",
			set: Set{
				Individual: entries("B", "A"),
				Collection: entries("Z", "Y", "X"),
			},
			wantMod:       "@Z;@Y;@X",
			wantServerMod: "@B;@A",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mod, ok := tc.set.ModArg()
			require.Equal(t, tc.wantMod != "", ok)
			require.Equal(t, tc.wantMod, mod)

			serverMod, ok := tc.set.ServerModArg()
			require.Equal(t, tc.wantServerMod != "", ok)
			require.Equal(t, tc.wantServerMod, serverMod)

			if tc.wantMod != "" {
				tokens := strings.Split(mod, ";")
				require.Len(t, tokens, len(tc.set.Collection))
				for i, tok := range tokens {
					require.Equal(t, "@"+tc.set.Collection[i].Name, tok)
				}
			}
		})
	}
}

func TestSetValidate(t *testing.T) {
	ok := Set{
		Individual: entries("CF"),
		Collection: entries("Dabs Framework"),
	}
	require.NoError(t, ok.Validate())

	dup := Set{
		Individual: []Entry{{ID: 1, Name: "CF"}},
		Collection: []Entry{{ID: 2, Name: "CF"}},
	}
	err := dup.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "@CF")

	// Activation directories collide case-insensitively on the platforms
	// the server runs on.
	folded := Set{
		Individual: []Entry{{ID: 1, Name: "cf"}, {ID: 2, Name: "CF"}},
	}
	require.Error(t, folded.Validate())
}

func TestSetAll(t *testing.T) {
	s := Set{
		Individual: entries("A"),
		Collection: entries("B", "C"),
	}
	all := s.All()
	require.Len(t, all, 3)
	require.Equal(t, "A", all[0].Name)
	require.Equal(t, "B", all[1].Name)
	require.Equal(t, "C", all[2].Name)
	require.False(t, s.Empty())
	require.True(t, Set{}.Empty())
}

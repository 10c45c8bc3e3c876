package profile

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminder-engine/internal/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		override model.ScheduleProfile
		want     model.ScheduleProfile
	}{
		{"override global wins over austria", "Austria", model.ProfileGlobal, model.ProfileGlobal},
		{"override austria", "Germany", model.ProfileAustria, model.ProfileAustria},
		{"invalid override ignored", "at", model.ScheduleProfile("MARS"), model.ProfileAustria},
		{"lowercase override", "Austria", model.ScheduleProfile(" global "), model.ProfileGlobal},
		{"empty country", "", "", model.ProfileAustria},
		{"iso2", " AT ", "", model.ProfileAustria},
		{"iso3", "aut", "", model.ProfileAustria},
		{"german spelling", "Österreich", "", model.ProfileAustria},
		{"ascii german spelling", "Republik Oesterreich", "", model.ProfileAustria},
		{"unrecognized country", "Germany", "", model.ProfileAustria},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.country, tc.override))
		})
	}
}

func TestInferNeverGlobal(t *testing.T) {
	for _, c := range []string{"", "us", "France", "global", "GLOBAL", "???"} {
		assert.Equal(t, model.ProfileAustria, Infer(c), c)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse(" global ")
	require.NoError(t, err)
	assert.Equal(t, model.ProfileGlobal, p)

	_, err = Parse("EU")
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestInfos(t *testing.T) {
	infos := Infos()
	require.Len(t, infos, 2)
	for _, info := range infos {
		assert.True(t, info.Key.Valid())
		assert.NotEmpty(t, info.Label)
		assert.NotEmpty(t, info.References)
	}
}

func TestRecognized(t *testing.T) {
	for _, c := range []string{"", "AT", "Aut", "Österreich", "oesterreich", "Republic of Austria"} {
		assert.True(t, Recognized(c), c)
	}
	for _, c := range []string{"Germany", "us", "australia"} {
		assert.False(t, Recognized(c), c)
	}
}

// The engine imports this package, so it must stay free of storage drivers.
func TestNoThirdPartyImports(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			first := strings.SplitN(path, "/", 2)[0]
			if strings.Contains(first, ".") {
				t.Errorf("%s imports %s", name, path)
			}
		}
	}
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/specialistvlad/overhangs/internal/config"
	"github.com/specialistvlad/overhangs/internal/digest"
	"github.com/specialistvlad/overhangs/internal/hcl"
	"github.com/specialistvlad/overhangs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlasmid = "GGTCTC" + "A" + "AACG" + "ATGAAACCCGGGTTTTAA" + "TATG" + "A" + "GAGACC" +
	"TTTTTTTTTTCCCCCCCCCCAAAAAAAAAA"

// reverse complement of testPlasmid
const testPlasmidRC = "TTTTTTTTTTGGGGGGGGGGAAAAAAAAAA" + "GGTCTC" + "T" + "CATA" +
	"TTAAAACCCGGGTTTCAT" + "CGTT" + "T" + "GAGACC"

var testFiles = map[string]string{
	"assembly.hcl": `
		assembly "cycle" {
			paths = [
				["CCCT", "AACG", "CCCT"],
				["AACG", "AAAA", "CCCT"],
			]
		}
	`,
	"syntax.hcl": `
		syntax "moclo" {
			part "cds" {
				left_overhang  = "aacg"
				right_overhang = "TATG"
			}
		}
	`,
	"plasmids.hcl": `
		plasmid "forward" {
			syntax   = "moclo"
			sequence = "` + testPlasmid + `"
			enzymes  = ["BsaI"]

			feature "gfp" {
				start = 11
				end   = 29
			}
		}

		plasmid "reverse" {
			syntax   = "moclo"
			sequence = "` + testPlasmidRC + `"
			enzymes  = ["bsai"]
		}
	`,
}

// setupApp writes files, builds and loads an app for system testing.
func setupApp(t *testing.T, files map[string]string, cfg Config) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	cfg.ConfigPaths = []string{testutil.WriteFiles(t, files)}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a := NewApp(out, logs, appConfig, hcl.NewLoader())
	require.NoError(t, a.Load(context.Background()))

	t.Cleanup(func() {
		if os.Getenv("OVHG_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out, logs
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		cfg     Config
		want    *Config
		wantErr string
	}{
		{
			name: "defaults",
			cfg:  Config{ConfigPaths: []string{"x"}},
			want: &Config{ConfigPaths: []string{"x"}, Output: OutputText, Workers: 1},
		},
		{
			name:    "no paths",
			cfg:     Config{},
			wantErr: "at least one configuration path",
		},
		{
			name:    "bad output",
			cfg:     Config{ConfigPaths: []string{"x"}, Output: "yaml"},
			wantErr: "invalid output",
		},
		{
			name:    "negative workers",
			cfg:     Config{ConfigPaths: []string{"x"}, Workers: -2},
			wantErr: "workers must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestApp_RunAlign_Text validates the text table of an alignment.
func TestApp_RunAlign_Text(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out, logs := setupApp(t, testFiles, Config{})

	// --- Act ---
	err := a.RunAlign(context.Background(), nil)

	// --- Assert ---
	require.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "assembly cycle: 2 paths, 2 shown")
	assert.Contains(t, text, "AACG-AAAA")
	assert.Contains(t, text, "AACG-CCCT")
	assert.Contains(t, text, "columns 2-2: 2 alternatives")
	assert.Contains(t, text, "columns 3-3: 2 alternatives")
	assert.Contains(t, logs.String(), "Configuration loaded.")
}

// TestApp_RunAlign_JSON validates the JSON document of an alignment.
func TestApp_RunAlign_JSON(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out, _ := setupApp(t, testFiles, Config{Output: OutputJSON})

	// --- Act ---
	err := a.RunAlign(context.Background(), []string{"cycle"})

	// --- Assert ---
	require.NoError(t, err)
	var got []struct {
		Assembly  string      `json:"assembly"`
		Columns   int         `json:"columns"`
		Truncated bool        `json:"truncated"`
		Rows      [][]*string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "cycle", got[0].Assembly)
	assert.Equal(t, 3, got[0].Columns)
	require.Len(t, got[0].Rows, 2)
	spacers := 0
	for _, row := range got[0].Rows {
		for _, cell := range row {
			if cell == nil {
				spacers++
			}
		}
	}
	assert.Equal(t, 1, spacers, "spacer should encode as null")
}

// TestApp_MaxPaths validates that the command line overrides the settings
// block.
func TestApp_MaxPaths(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"settings.hcl": `
			settings {
				max_paths = 1
			}
		`,
	}
	for k, v := range testFiles {
		files[k] = v
	}

	t.Run("settings cap", func(t *testing.T) {
		a, _, _ := setupApp(t, files, Config{})
		r, err := a.Align(context.Background(), "cycle")
		require.NoError(t, err)
		assert.True(t, r.Result.Truncated)
		assert.Len(t, r.Result.Rows, 1)
	})

	t.Run("command line removes the cap", func(t *testing.T) {
		a, _, _ := setupApp(t, files, Config{MaxPaths: -1})
		r, err := a.Align(context.Background(), "cycle")
		require.NoError(t, err)
		assert.False(t, r.Result.Truncated)
		assert.Len(t, r.Result.Rows, 2)
	})
}

// TestApp_RunAssign validates concurrent assignment of every plasmid and
// that a plasmid and its reverse complement carry the same part.
func TestApp_RunAssign(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out, _ := setupApp(t, testFiles, Config{Output: OutputJSON, Workers: 2})

	// --- Act ---
	err := a.RunAssign(context.Background(), nil)

	// --- Assert ---
	require.NoError(t, err)
	var got []struct {
		Plasmid     string                  `json:"plasmid"`
		Assignments []digest.PartAssignment `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "forward", got[0].Plasmid)
	require.Len(t, got[0].Assignments, 1)
	fwd := got[0].Assignments[0]
	assert.Equal(t, "AACG", string(fwd.LeftOverhang))
	assert.Equal(t, "TATG", string(fwd.RightOverhang))
	assert.Equal(t, []string{"cds"}, fwd.Parts)
	require.NotNil(t, fwd.LongestFeature)
	assert.Equal(t, "gfp", fwd.LongestFeature.Name)

	assert.Equal(t, "reverse", got[1].Plasmid)
	require.Len(t, got[1].Assignments, 1)
	assert.Equal(t, fwd.LeftOverhang, got[1].Assignments[0].LeftOverhang)
	assert.Equal(t, fwd.RightOverhang, got[1].Assignments[0].RightOverhang)
}

func TestApp_RunAssign_Text(t *testing.T) {
	t.Parallel()

	a, out, _ := setupApp(t, testFiles, Config{})
	require.NoError(t, a.RunAssign(context.Background(), []string{"forward"}))

	text := out.String()
	assert.Contains(t, text, "plasmid forward: syntax moclo, enzymes BsaI")
	assert.Contains(t, text, "LEFT")
	assert.Contains(t, text, "gfp")
}

// TestApp_Errors validates that lookup failures surface as typed errors.
func TestApp_Errors(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"bad.hcl": `
			plasmid "orphan" {
				syntax   = "missing"
				sequence = "ACGT"
				enzymes  = ["BsaI"]
			}

			syntax "s" {
				part "p" {
					left_overhang  = "AACG"
					right_overhang = "TATG"
				}
			}

			plasmid "noenzyme" {
				syntax   = "s"
				sequence = "ACGT"
				enzymes  = ["NoSuchEnzyme"]
			}
		`,
	}
	a, _, _ := setupApp(t, files, Config{})
	ctx := context.Background()

	_, err := a.Assign(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.Assign(ctx, "orphan")
	assert.ErrorIs(t, err, config.ErrUnknownSyntax)

	_, err = a.Assign(ctx, "noenzyme")
	assert.ErrorIs(t, err, digest.ErrUnknownEnzyme)

	err = a.RunAssign(ctx, []string{"noenzyme"})
	assert.ErrorIs(t, err, digest.ErrUnknownEnzyme)

	err = a.RunAlign(ctx, []string{"ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApp_NotLoaded(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{ConfigPaths: []string{"x"}})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, hcl.NewLoader())

	assert.Error(t, a.RunAlign(context.Background(), nil))
	assert.Error(t, a.RunAssign(context.Background(), nil))
	assert.Len(t, a.Enzymes(), len(digest.Builtin()))
}

func TestApp_LoadError(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{ConfigPaths: []string{testutil.WriteFiles(t, map[string]string{"x.hcl": "assembly {"})}})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, hcl.NewLoader())

	err = a.Load(context.Background())
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestApp_RunEnzymes(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"enzymes.hcl": `
			enzyme "Zeta" {
				site            = "GCNNC"
				skip            = 0
				overhang_length = 3
			}
		`,
	}
	a, out, _ := setupApp(t, files, Config{})
	require.NoError(t, a.RunEnzymes(context.Background()))

	text := out.String()
	assert.Contains(t, text, "NAME")
	assert.Contains(t, text, "BsaI")
	assert.Contains(t, text, "Zeta")
	assert.Len(t, a.Enzymes(), len(digest.Builtin())+1)
}

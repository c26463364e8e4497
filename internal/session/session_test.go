package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/fieldteam-cli/internal/analysis"
	"github.com/KaramelBytes/fieldteam-cli/internal/parser"
	"github.com/KaramelBytes/fieldteam-cli/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dados.csv")
	require.NoError(t, os.WriteFile(src, []byte("Equipe,1º Desp\nT1,15\n"), 0o644))

	s := session.NewSession("manha", src, filepath.Join(dir, "sess"))
	require.NotEmpty(t, s.ID)
	assert.Equal(t, "todos", s.Filter.ID())

	s.ToggleFilter(analysis.HasAction)
	s.SortBy(parser.ColDesp1)
	s.SortBy(parser.ColDesp1)
	id := s.AddExport("out.csv", "csv", 1)
	require.NoError(t, s.Save())

	got, err := session.LoadSession(filepath.Join(dir, "sess"))
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, src, got.Source)
	assert.False(t, got.Filter.IsEnabled(analysis.HasAction))
	assert.True(t, got.Filter.IsEnabled(analysis.LoginOver5))
	assert.Equal(t, analysis.SortState{Column: parser.ColDesp1, Direction: analysis.Desc}, got.Sort)
	require.Contains(t, got.Exports, id)
	assert.Equal(t, "dispatchOver10+travelOver25+loginOver5", got.Exports[id].FilterID)
	assert.Len(t, got.ExportList(), 1)
}

func TestLoadSessionMissing(t *testing.T) {
	_, err := session.LoadSession(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestFilterOperations(t *testing.T) {
	s := session.NewSession("x", "", "")
	s.OnlyFilter(analysis.TravelOver25)
	assert.Equal(t, "travelOver25", s.Filter.ID())
	s.AllFilters()
	assert.Equal(t, "todos", s.Filter.ID())
	s.AllFilters()
	assert.Equal(t, "none", s.Filter.ID())
	s.ToggleFilter(analysis.LoginOver5)
	assert.Equal(t, "loginOver5", s.Filter.ID())
	assert.Equal(t, analysis.FilterAnyEnabled, s.Filter.Mode)
}

func TestRecordLoadResetsSortOnNewData(t *testing.T) {
	s := session.NewSession("x", "", "")
	m := session.SourceMeta{Path: "a.csv", Size: 10}
	s.RecordLoad(m)
	s.SortBy(parser.ColEquipe)
	s.RecordLoad(m)
	assert.True(t, s.Sort.Active(), "same file keeps the sort")

	m.Size = 11
	s.RecordLoad(m)
	assert.False(t, s.Sort.Active(), "new data resets the sort")
}

func TestSetSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(src, []byte("Equipe\nT1\n"), 0o644))
	s := session.NewSession("x", "", dir)
	s.SortBy(parser.ColEquipe)
	require.Error(t, s.SetSource(filepath.Join(dir, "missing.csv")))
	require.NoError(t, s.SetSource(src))
	assert.Equal(t, src, s.Source)
	assert.False(t, s.Sort.Active())
}

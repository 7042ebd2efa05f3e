package settings

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveLoad_YAMLAndTOML(t *testing.T) {
	for _, name := range []string{"settings.yaml", "settings.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			s := Default()
			s.TimeUnits = Hours
			s.RecentFiles = []string{"/work/a.estimate", "/work/b.estimate"}
			require.NoError(t, Save(path, s))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, s, loaded)
		})
	}
}

func TestLoad_TOMLIsReallyTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("time_units = \"hours\"\nrecent_files = [\"/x.estimate\"]\n"), 0600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Hours, s.TimeUnits)
	assert.Equal(t, "/x.estimate", s.MostRecent())
	assert.Equal(t, DefaultMaxRecentFiles, s.MaxRecentFiles)
}

func TestLoad_InvalidValuesNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_units: fortnights\nmax_recent_files: 2\nrecent_files: [a, '', b, c]\n"), 0600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Minutes, s.TimeUnits)
	assert.Equal(t, []string{"a", "b"}, s.RecentFiles)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recent_files: [unclosed\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestTouch_MovesToFrontAndTrims(t *testing.T) {
	s := Default()
	s.MaxRecentFiles = 3
	for _, p := range []string{"/a", "/b", "/c"} {
		s.Touch(p)
	}
	assert.Equal(t, []string{"/c", "/b", "/a"}, s.RecentFiles)

	s.Touch("/a")
	assert.Equal(t, []string{"/a", "/c", "/b"}, s.RecentFiles)

	s.Touch("/d")
	assert.Equal(t, []string{"/d", "/a", "/c"}, s.RecentFiles)
}

func TestTimeUnit_Format(t *testing.T) {
	assert.Equal(t, "90", Minutes.Format(90))
	assert.Equal(t, "1.50", Hours.Format(90))
	assert.Equal(t, "0.00", Hours.Format(0))
}

func TestTimeUnit_ParseMinutes(t *testing.T) {
	tests := []struct {
		unit TimeUnit
		in   string
		want int
	}{
		{Minutes, "90", 90},
		{Hours, "1.5", 90},
		{Minutes, "2h", 120},
		{Hours, "45m", 45},
		{Hours, " 0.25 ", 15},
	}
	for _, tt := range tests {
		got, err := tt.unit.ParseMinutes(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "abc", "-5", "100000"} {
		_, err := Minutes.ParseMinutes(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTimeUnit(t *testing.T) {
	u, err := ParseTimeUnit("H")
	require.NoError(t, err)
	assert.Equal(t, Hours, u)

	_, err = ParseTimeUnit("days")
	assert.Error(t, err)
}

func TestSaver_WritesLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	var errs []error
	sv := NewSaver(path, func(err error) { errs = append(errs, err) })

	s := Default()
	s.Touch("/first")
	sv.Save(context.Background(), s)
	s.Touch("/second")
	sv.Save(context.Background(), s)
	sv.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "/second"))
}

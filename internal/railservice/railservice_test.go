package railservice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMSN = "/!! Start of file\n" +
	"A                             FILE-SPEC=05 1.00 25/08/20 18.05.31   748           \n" +
	"A    KINGS LYNN                    1KLYNN  KLN   KLN15623 63201 5                 \n" +
	"A    LONDON KINGS CROSS            3KNGX   KGX   KGX15303 6183015                 \n"

const testFLF = "/!! Begin\n" +
	"ADDITIONAL LINK: WALK BETWEEN KLN AND KGX IN  10 MINUTES\n"

const testMCA = "/!! Comment line!\n" +
	"BSNL221082005232012120000010 PXX1T25    121725000 EMU365 100D     B            P\n" +
	"BX         GNYGN161701                                                          \n" +
	"LOKLYNN   1045 10451         TB                                                 \n" +
	"LTKNGX    1235 12356     TF                                                     \n"

func writeDataset(t *testing.T, dir, prefix string) string {
	t.Helper()
	full := filepath.Join(dir, prefix)
	require.NoError(t, os.WriteFile(full+".MSN", []byte(testMSN), 0o644))
	require.NoError(t, os.WriteFile(full+".FLF", []byte(testFLF), 0o644))
	require.NoError(t, os.WriteFile(full+".MCA", []byte(testMCA), 0o644))
	return full
}

func TestLoadServices(t *testing.T) {
	dir := t.TempDir()
	prefix := writeDataset(t, dir, "TESTFEED")

	rail, err := LoadServices(prefix)
	require.NoError(t, err)

	assert.Equal(t, 2, rail.Stations.Count())
	assert.Len(t, rail.FixedLinks, 1)
	assert.Len(t, rail.Timetable.Services, 1)
	assert.Equal(t, 2, rail.Graph.StationCount())
}

func TestLoadServicesMissingFile(t *testing.T) {
	_, err := LoadServices(filepath.Join(t.TempDir(), "NOPE"))
	assert.Error(t, err)
}

package timetable

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/railplan/internal/stations"
)

func mustMSN(t *testing.T, content string) *stations.Registry {
	t.Helper()
	reg, err := stations.ReadMSNFile(strings.NewReader(content))
	require.NoError(t, err)
	return reg
}

func newScanner(t *testing.T, content string) *bufio.Scanner {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

const singleServiceMSN = "/!! Start of file\n" +
	"A                             FILE-SPEC=05 1.00 25/08/20 18.05.31   748           \n" +
	"A    KINGS LYNN                    1KLYNN  KLN   KLN15623 63201 5                 \n" +
	"A    WATLINGTON                    0WATLGTNWTG   WTG15612 63110 5                 \n" +
	"A    CAMBRIDGE                     2CAMBDGECBG   CBG15462 62573 5                 \n" +
	"A    STEVENAGE                     2STEVNGESVG   SVG15235 62238 4                 \n" +
	"A    LONDON KINGS CROSS            3KNGX   KGX   KGX15303 6183015                 \n"

const singleServiceMCA = "/!! Comment line!\n" +
	"BSNL221082005232012120000010 PXX1T25    121725000 EMU365 100D     B            P\n" +
	"BX         GNYGN161701                                                          \n" +
	"LOKLYNN   1045 10451         TB                                                 \n" +
	"LIWATLGTN 1052 1052H     105210521        T                                     \n" +
	"CRCAMBDGE XX1T25    121725000 EMU365 100D     B                    GN161703     \n" +
	"LICAMBDGE 1136H1144H     113711448        T -U                                  \n" +
	"LISTEVNGE           1211H000000002                      1                       \n" +
	"LTKNGX    1235 12356     TF                                                     \n"

func TestReadServiceEntry(t *testing.T) {
	reg := mustMSN(t, singleServiceMSN)

	scanner := newScanner(t, singleServiceMCA)
	lineNum := 0
	service, err := readServiceEntry(reg, scanner, &lineNum)
	require.NoError(t, err)
	require.NotNil(t, service)

	assert.Equal(t, "L22108", service.TrainUID)
	assert.Len(t, service.Stops, 4)

	cambridgeID, ok := reg.LookupByName("CAMBRIDGE")
	require.True(t, ok)
	assert.Equal(t, cambridgeID, service.Stops[2].Station)
	assert.Equal(t, "1144", service.Stops[2].Departure.To24h())
}

const twoServiceMSN = "/!! Start of file\n" +
	"A                             FILE-SPEC=05 1.00 25/08/20 18.05.31   748           \n" +
	"A    KINGS LYNN                    1KLYNN  KLN   KLN15623 63201 5                 \n" +
	"A    LONDON KINGS CROSS            3KNGX   KGX   KGX15303 6183015                 \n"

const twoServiceMCA = "/!! Comment line!\n" +
	"BSNL221082005232012120000010 PXX1T25    121725000 EMU365 100D     B            P\n" +
	"BX         GNYGN161701                                                          \n" +
	"LOKLYNN   1045 10451         TB                                                 \n" +
	"LTKNGX    1235 12356     TF                                                     \n" +
	"BSNL221192005232012120000010 PXX1T30    121725000 EMU365 100D     B            P\n" +
	"BX         GNYGN162200                                                          \n" +
	"LOKNGX    1242 12429  B      TB                                                 \n" +
	"LTKLYNN   1431 14311     TF                                                     \n"

func TestReadMCAFile(t *testing.T) {
	reg := mustMSN(t, twoServiceMSN)

	tt, err := ReadMCAFile(reg, strings.NewReader(twoServiceMCA))
	require.NoError(t, err)
	require.Len(t, tt.Services, 2)
	assert.Equal(t, "L22119", tt.Services[1].TrainUID)
	assert.Len(t, tt.Services[1].Stops, 2)
}

func TestReadMCAFileShortInput(t *testing.T) {
	reg := mustMSN(t, twoServiceMSN)

	truncated := "BSNL221082005232012120000010 PXX1T25    121725000 EMU365 100D     B            P\n" +
		"LOKLYNN   1045 10451         TB                                                 \n"

	_, err := ReadMCAFile(reg, strings.NewReader(truncated))
	assert.Error(t, err)
}

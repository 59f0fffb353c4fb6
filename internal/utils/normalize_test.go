package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey_ComposedAndDecomposedMatch(t *testing.T) {
	composed := "PL-H\u00e0 N\u1ed9i"
	decomposed := "PL-Ha\u0300 No\u0323\u0302i"
	require.NotEqual(t, composed, decomposed)
	assert.Equal(t, NormalizeKey(composed), NormalizeKey("  "+decomposed+" "))
}

func TestYearFromContractNo(t *testing.T) {
	assert.Equal(t, 2025, YearFromContractNo("0123/2025/HDQTGAN-PN/MR", 1999))
	assert.Equal(t, 1999, YearFromContractNo("no-year-here", 1999))
	assert.Equal(t, 1999, YearFromContractNo("12/abc/x", 1999))
}

func TestNormalizeMultiValues(t *testing.T) {
	assert.Equal(t, "a@x.vn; b@y.vn", NormalizeMultiEmails(" a@x.vn,\nb@y.vn ; "))
	assert.Equal(t, "0912345678; +84 24 3333", NormalizeMultiPhones("091 234 5678;  +84  24   3333"))
	assert.Equal(t, "", NormalizeMultiPhones("   "))
}

func TestNormalizeChannelInput(t *testing.T) {
	id, link := NormalizeChannelInput("https://www.youtube.com/channel/UCabcdefghij123")
	assert.Equal(t, "UCabcdefghij123", id)
	assert.Equal(t, "https://www.youtube.com/channel/UCabcdefghij123", link)

	id, link = NormalizeChannelInput("@somehandle")
	assert.Equal(t, "@somehandle", id)
	assert.Equal(t, "@somehandle", link)

	id, link = NormalizeChannelInput("")
	assert.Empty(t, id)
	assert.Empty(t, link)
}

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=1": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                   "dQw4w9WgXcQ",
		`=HYPERLINK("https://youtu.be/abcDEF123","x")`:   "abcDEF123",
		"dQw4w9WgXcQ":                                    "dQw4w9WgXcQ",
		"not a video":                                    "",
		"":                                               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractVideoID(in), in)
	}
}

func TestNormalizeDurations(t *testing.T) {
	got, err := NormalizeHHMMSS("3:07")
	require.NoError(t, err)
	assert.Equal(t, "00:03:07", got)

	got, err = NormalizeHHMMSS("1:02:03")
	require.NoError(t, err)
	assert.Equal(t, "01:02:03", got)

	_, err = NormalizeHHMMSS("1:60")
	assert.ErrorIs(t, err, ErrInvalidDuration)

	got, err = NormalizeTimeRange("0:10 – 3:07")
	require.NoError(t, err)
	assert.Equal(t, "00:00:10 - 00:03:07", got)

	_, err = NormalizeTimeRange("0:10")
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestFormatDDMMYYYY(t *testing.T) {
	assert.Equal(t, "05/03/2025", FormatDDMMYYYY("5-3-2025"))
	assert.Equal(t, "05/03/2025", FormatDDMMYYYY("5.3.2025"))
	assert.Equal(t, "unknown", FormatDDMMYYYY(" unknown "))
}

func TestParseMoney(t *testing.T) {
	n, err := ParseMoney("1.500.000 VNĐ")
	require.NoError(t, err)
	assert.Equal(t, int64(1500000), n)

	_, err = ParseMoney("VND")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

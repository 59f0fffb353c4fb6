package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	channelIDRe   = regexp.MustCompile(`(UC[0-9A-Za-z_-]{10,})`)
	watchIDRe     = regexp.MustCompile(`watch\?v=([0-9A-Za-z_-]{6,})`)
	shortIDRe     = regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{6,})`)
	hyperlinkIDRe = regexp.MustCompile(`(?i)HYPERLINK\("[^"]*youtu(?:\.be/|be\.com/watch\?v=)([^"&?#]+)`)
	bareVideoIDRe = regexp.MustCompile(`^[0-9A-Za-z_-]{6,}$`)
	dmyRe         = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	nonDigitRe    = regexp.MustCompile(`[^0-9]`)
)

var ErrInvalidDuration = errors.New("duration must be hh:mm:ss or mm:ss")

// NormalizeKey canonicalises a natural key (contract_no, annex_no). Keys typed
// on different keyboards may arrive as composed or decomposed Vietnamese;
// both must resolve to the same stored row.
func NormalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// YearFromContractNo reads YYYY out of "NNNN/YYYY/...". It returns fallback
// when the second segment is not a number.
func YearFromContractNo(contractNo string, fallback int) int {
	parts := strings.Split(contractNo, "/")
	if len(parts) >= 2 {
		if y, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && y > 0 {
			return y
		}
	}
	return fallback
}

// SplitMultiValues splits on ';', ',' and newlines, dropping blanks.
func SplitMultiValues(s string) []string {
	if s == "" {
		return nil
	}
	r := strings.NewReplacer("\r\n", ";", "\r", ";", "\n", ";", ",", ";")
	var out []string
	for _, p := range strings.Split(r.Replace(s), ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func NormalizeMultiEmails(s string) string {
	return strings.Join(SplitMultiValues(strings.TrimSpace(s)), "; ")
}

// NormalizeMultiPhones keeps Vietnamese numbers (10/11 digits starting with 0)
// as bare digits and collapses whitespace in anything else.
func NormalizeMultiPhones(s string) string {
	parts := SplitMultiValues(strings.TrimSpace(s))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		compact := nonDigitRe.ReplaceAllString(p, "")
		if (len(compact) == 10 || len(compact) == 11) && strings.HasPrefix(compact, "0") {
			out = append(out, compact)
			continue
		}
		out = append(out, strings.Join(strings.Fields(p), " "))
	}
	return strings.Join(out, "; ")
}

func ExtractChannelID(s string) string {
	if m := channelIDRe.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		return m[1]
	}
	return ""
}

// NormalizeChannelInput accepts a channel id or URL and returns the id and a
// canonical link.
func NormalizeChannelInput(raw string) (channelID, link string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ""
	}
	channelID = s
	if id := ExtractChannelID(s); id != "" {
		channelID = id
	}
	if !strings.HasPrefix(channelID, "UC") {
		return channelID, s
	}
	return channelID, "https://www.youtube.com/channel/" + channelID
}

// ExtractVideoID understands watch URLs, youtu.be links, spreadsheet
// HYPERLINK formulas and bare ids.
func ExtractVideoID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "=") {
		if m := watchIDRe.FindStringSubmatch(s); m != nil {
			return m[1]
		}
		if m := hyperlinkIDRe.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	if m := watchIDRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := shortIDRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if bareVideoIDRe.MatchString(s) {
		return s
	}
	return ""
}

func YouTubeWatchURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + videoID
}

// NormalizeHHMMSS turns "m:ss" / "h:mm:ss" into zero-padded hh:mm:ss.
func NormalizeHHMMSS(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", nil
	}
	parts := strings.Split(t, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		nums[i] = n
	}

	var hh, mm, ss int
	switch len(nums) {
	case 2:
		mm, ss = nums[0], nums[1]
	case 3:
		hh, mm, ss = nums[0], nums[1], nums[2]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	if hh < 0 || mm < 0 || mm >= 60 || ss < 0 || ss >= 60 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss), nil
}

// NormalizeTimeRange normalises "start - end" (en dash accepted).
func NormalizeTimeRange(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", nil
	}
	parts := strings.Split(strings.ReplaceAll(t, "–", "-"), "-")
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: time range %q", ErrInvalidDuration, s)
	}
	start, err := NormalizeHHMMSS(parts[0])
	if err != nil {
		return "", err
	}
	end, err := NormalizeHHMMSS(parts[1])
	if err != nil {
		return "", err
	}
	return start + " - " + end, nil
}

// FormatDDMMYYYY rewrites d/m/yyyy, d-m-yyyy and d.m.yyyy as dd/mm/yyyy and
// returns anything else trimmed but unchanged.
func FormatDDMMYYYY(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	normalized := strings.NewReplacer("-", "/", ".", "/").Replace(t)
	m := dmyRe.FindStringSubmatch(normalized)
	if m == nil {
		return t
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%02d/%02d/%04d", d, mo, y)
}

// ParseMoney reads "1.500.000 VNĐ"-style input as an integer amount.
func ParseMoney(s string) (int64, error) {
	raw := strings.NewReplacer("VNĐ", "", "VND", "").Replace(strings.TrimSpace(s))
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidPayload, s)
	}
	return strconv.ParseInt(digits, 10, 64)
}

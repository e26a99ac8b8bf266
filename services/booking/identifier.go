package booking

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingIDPrefix tags every reference issued by the camp.
const BookingIDPrefix = "SC"

const randomSuffixLen = 8

var bookingIDPattern = regexp.MustCompile(`^` + BookingIDPrefix + `[0-9A-Z]{16,20}$`)

// GenerateBookingID returns a short, shareable reference: the prefix, the
// current time in base 36 and eight random base-36 characters.
// The random part comes from a v4 UUID (122 random bits), so ids issued in
// the same millisecond still differ.
func GenerateBookingID() string {
	return newBookingID(time.Now())
}

func newBookingID(now time.Time) string {
	stamp := strconv.FormatInt(now.UnixMilli(), 36)
	return strings.ToUpper(BookingIDPrefix + stamp + randomSuffix())
}

func randomSuffix() string {
	id := uuid.New()
	s := new(big.Int).SetBytes(id[:]).Text(36)
	for len(s) < randomSuffixLen {
		s = "0" + s
	}
	return s[len(s)-randomSuffixLen:]
}

// ValidBookingID reports whether id has the shape GenerateBookingID produces.
func ValidBookingID(id string) bool {
	return bookingIDPattern.MatchString(id)
}

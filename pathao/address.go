package pathao

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// Address validation errors.
var (
	// ErrAddressTooShort indicates an address outside the accepted
	// 15-120 character range.
	ErrAddressTooShort = errors.New("pathao: address length must be between 15 and 120 characters")

	// ErrAddressFormat indicates an address that cannot be split into
	// at least area, district and division.
	ErrAddressFormat = errors.New("pathao: address must contain at least area, district, and division separated by commas")

	// ErrUnknownDivision indicates a division name that is not one of
	// the eight divisions of Bangladesh.
	ErrUnknownDivision = errors.New("pathao: unknown division")

	// ErrUnknownDistrict indicates an unrecognized district name.
	ErrUnknownDistrict = errors.New("pathao: unknown district")
)

// suggestionCutoff is the minimum similarity score for a fuzzy
// closest-match suggestion to be offered.
const suggestionCutoff = 0.6

// divisions are the eight administrative divisions of Bangladesh.
var divisions = []string{
	"Barishal", "Chattogram", "Dhaka", "Khulna",
	"Mymensingh", "Rajshahi", "Rangpur", "Sylhet",
}

// districts are the 64 districts of Bangladesh.
var districts = []string{
	"Bagerhat", "Bandarban", "Barguna", "Barishal", "Bhola", "Bogura",
	"Brahmanbaria", "Chandpur", "Chapainawabganj", "Chattogram",
	"Chuadanga", "Coxs Bazar", "Cumilla", "Dhaka", "Dinajpur",
	"Faridpur", "Feni", "Gaibandha", "Gazipur", "Gopalganj", "Habiganj",
	"Jamalpur", "Jashore", "Jhalokathi", "Jhenaidah", "Joypurhat",
	"Khagrachhari", "Khulna", "Kishoreganj", "Kurigram", "Kushtia",
	"Lakshmipur", "Lalmonirhat", "Madaripur", "Magura", "Manikganj",
	"Meherpur", "Moulvibazar", "Munshiganj", "Mymensingh", "Naogaon",
	"Narail", "Narayanganj", "Narsingdi", "Natore", "Netrokona",
	"Nilphamari", "Noakhali", "Pabna", "Panchagarh", "Patuakhali",
	"Pirojpur", "Rajbari", "Rajshahi", "Rangamati", "Rangpur",
	"Satkhira", "Shariatpur", "Sherpur", "Sirajganj", "Sunamganj",
	"Sylhet", "Tangail", "Thakurgaon",
}

// Address is a parsed pickup address.
//
// The expected input form is
// "[Area], [Road/Details], [Zone], [District], [Division]",
// e.g. "House 123, Road 4, Uttara, Dhaka-1230, Dhaka".
type Address struct {
	// Area is the first comma-separated part.
	Area string
	// Zone is the third part from the end.
	Zone string
	// District is the second part from the end, stripped of
	// non-letter characters (postal suffixes such as "-1230").
	District string
	// Division is the last part, stripped the same way.
	Division string
	// Full is the original address string.
	Full string
}

// ValidateAddress checks length, composition, and that the district and
// division parts name real places. Unknown names produce errors that
// carry a closest-match suggestion when one is close enough.
func ValidateAddress(address string) error {
	address = strings.TrimSpace(address)

	if l := len(address); l < 15 || l > 120 {
		return fmt.Errorf("%w (got %d)", ErrAddressTooShort, len(address))
	}

	parts := splitAddress(address)
	if len(parts) < 3 {
		return ErrAddressFormat
	}

	division := cleanPart(parts[len(parts)-1])
	district := cleanPart(parts[len(parts)-2])

	if !containsFold(divisions, division) {
		return unknownLocationError(ErrUnknownDivision, division, divisions)
	}
	if !containsFold(districts, district) {
		return unknownLocationError(ErrUnknownDistrict, district, districts)
	}

	return nil
}

// ParseAddress validates address and splits it into its components.
func ParseAddress(address string) (Address, error) {
	if err := ValidateAddress(address); err != nil {
		return Address{}, err
	}

	parts := splitAddress(strings.TrimSpace(address))
	return Address{
		Area:     parts[0],
		Zone:     parts[len(parts)-3],
		District: cleanPart(parts[len(parts)-2]),
		Division: cleanPart(parts[len(parts)-1]),
		Full:     address,
	}, nil
}

// suggestName returns the closest match to name among candidates, or
// false when nothing scores above the similarity cutoff.
func suggestName(name string, candidates []string) (string, bool) {
	if name == "" || len(candidates) == 0 {
		return "", false
	}

	var (
		best      string
		bestScore float64
	)
	upper := strings.ToUpper(name)
	for _, candidate := range candidates {
		score := levenshtein.Match(upper, strings.ToUpper(candidate), nil)
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore < suggestionCutoff {
		return "", false
	}
	return best, true
}

func unknownLocationError(sentinel error, name string, candidates []string) error {
	if suggestion, ok := suggestName(name, candidates); ok {
		return fmt.Errorf("%w: %q (did you mean %q?)", sentinel, name, suggestion)
	}
	return fmt.Errorf("%w: %q", sentinel, name)
}

func splitAddress(address string) []string {
	raw := strings.Split(address, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// cleanPart keeps only letters and spaces and collapses runs of
// whitespace, turning "Dhaka-1230" into "Dhaka".
func cleanPart(part string) string {
	var b strings.Builder
	for _, r := range part {
		if isLetter(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func containsFold(list []string, name string) bool {
	for _, item := range list {
		if strings.EqualFold(item, name) {
			return true
		}
	}
	return false
}

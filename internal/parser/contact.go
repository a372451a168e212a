package parser

import "regexp"

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`)
	// Digits and separators are Unicode-aware: PDF text often carries
	// non-breaking spaces or full-width digits between phone groups.
	phonePattern = regexp.MustCompile(`\+?\p{Nd}[\p{Nd}\s\p{Z}\x{1c}-\x{1f}\x{85}().-]{8,}\p{Nd}`)
)

// ExtractContact returns the first email address and phone number in text.
// Either value is empty when there is no match.
func ExtractContact(text string) (email, phone string) {
	return emailPattern.FindString(text), phonePattern.FindString(text)
}

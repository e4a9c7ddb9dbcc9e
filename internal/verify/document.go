package verify

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentVerifier checks an uploaded KRS document for required identity
// tokens.
type DocumentVerifier struct {
	requiredTokens []string
}

// NewDocumentVerifier creates a verifier that additionally requires every
// token in requiredTokens (e.g. the election year) to appear in the document
// text, beyond the identity key and display name.
func NewDocumentVerifier(requiredTokens []string) *DocumentVerifier {
	return &DocumentVerifier{requiredTokens: requiredTokens}
}

// Verify reports whether the document's text layer contains the identity
// key, the display name, and every configured required token. Comparison is
// case-insensitive (text and tokens are uppercased). Any parse failure or
// empty text yields false.
func (v *DocumentVerifier) Verify(identityKey, displayName string, doc []byte) bool {
	if identityKey == "" || displayName == "" || len(doc) == 0 {
		return false
	}

	text, ok := extractText(doc)
	if !ok || text == "" {
		return false
	}
	text = strings.ToUpper(text)

	if !strings.Contains(text, strings.ToUpper(identityKey)) {
		return false
	}
	if !strings.Contains(text, strings.ToUpper(displayName)) {
		return false
	}
	for _, token := range v.requiredTokens {
		if !strings.Contains(text, strings.ToUpper(token)) {
			return false
		}
	}
	return true
}

// extractText concatenates the text layer of every page.
func extractText(doc []byte) (text string, ok bool) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// An unreadable page does not invalidate text found on others.
			continue
		}
		sb.WriteString(pageText)
	}
	return sb.String(), true
}

package student

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseDocParams(docType DocumentType, number string) DocumentParams {
	return DocumentParams{
		Type:       docType,
		Number:     number,
		IssueDate:  time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		IssuePlace: "Cong an TP HCM",
		ExpiryDate: time.Now().AddDate(5, 0, 0),
	}
}

func TestNewDocument_VariantDispatch(t *testing.T) {
	doc, err := NewDocument(baseDocParams(DocumentTypeCCCD, strings.Repeat("1", 12)))
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeCCCD, doc.Type())
	assert.True(t, strings.HasPrefix(doc.FormattedString(), "CCCD"))

	// 11 digits is invalid for every variant.
	_, err = NewDocument(baseDocParams(DocumentTypeCCCD, strings.Repeat("1", 11)))
	assert.Error(t, err)

	_, err = NewDocument(baseDocParams("DRIVERS_LICENSE", "123456789"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown document type")
}

func TestNewDocument_CMNDNumberLengths(t *testing.T) {
	_, err := NewDocument(baseDocParams(DocumentTypeCMND, strings.Repeat("2", 9)))
	assert.NoError(t, err)

	_, err = NewDocument(baseDocParams(DocumentTypeCMND, strings.Repeat("2", 12)))
	assert.NoError(t, err)

	_, err = NewDocument(baseDocParams(DocumentTypeCMND, strings.Repeat("2", 10)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9 or 12 digits")
}

func TestNewDocument_CCCDChip(t *testing.T) {
	p := baseDocParams(DocumentTypeCCCD, strings.Repeat("3", 12))
	p.HasChip = true
	doc, err := NewDocument(p)
	require.NoError(t, err)

	card, ok := doc.(NewIDCard)
	require.True(t, ok)
	assert.True(t, card.HasChip())
	assert.Contains(t, doc.FormattedString(), "có chip")

	p.HasChip = false
	doc, err = NewDocument(p)
	require.NoError(t, err)
	assert.NotContains(t, doc.FormattedString(), "chip")
}

func TestNewDocument_Passport(t *testing.T) {
	p := baseDocParams(DocumentTypePassport, "C1234567")
	p.IssuingCountry = "Vietnam"
	doc, err := NewDocument(p)
	require.NoError(t, err)
	assert.Contains(t, doc.FormattedString(), "Hộ chiếu")
	assert.Contains(t, doc.FormattedString(), "Vietnam")

	p.IssuingCountry = ""
	_, err = NewDocument(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issuing country")

	p.IssuingCountry = "Vietnam"
	p.Number = "C12" // too short
	_, err = NewDocument(p)
	assert.Error(t, err)
}

func TestDocument_ExpiryRules(t *testing.T) {
	p := baseDocParams(DocumentTypeCCCD, strings.Repeat("4", 12))
	p.ExpiryDate = p.IssueDate // not after issue date
	_, err := NewDocument(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after issue date")

	p = baseDocParams(DocumentTypeCCCD, strings.Repeat("4", 12))
	p.ExpiryDate = time.Now().AddDate(0, 0, 30)
	doc, err := NewDocument(p)
	require.NoError(t, err)
	assert.True(t, doc.IsValid())
	assert.True(t, doc.IsExpiringWithin(60))
	assert.False(t, doc.IsExpiringWithin(10))
}

func TestDocument_SnapshotRoundTrip(t *testing.T) {
	p := baseDocParams(DocumentTypeCCCD, strings.Repeat("5", 12))
	p.HasChip = true
	doc, err := NewDocument(p)
	require.NoError(t, err)

	snap := doc.Snapshot()
	assert.Equal(t, "CCCD", snap.Type)
	require.NotNil(t, snap.HasChip)
	assert.True(t, *snap.HasChip)
	assert.True(t, snap.IsValid)

	restored, err := DocumentFromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, doc.Snapshot(), restored.Snapshot())
}

package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/core/analysis"
)

type recordingDetector struct {
	code string
	got  []string
}

func (d *recordingDetector) Detect(text string) string {
	d.got = append(d.got, text)
	return d.code
}

var fixedTime = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

func TestAssembleReport(t *testing.T) {
	det := &recordingDetector{code: "en"}
	a := NewAssembler(det, zap.NewNop(), WithClock(func() time.Time { return fixedTime }))

	raw := "Report Title\nThis is a short report about testing testing testing."
	rec := a.Assemble(raw, "report.txt")

	assert.Equal(t, "report.txt", rec.Filename)
	assert.Equal(t, "Report Title", rec.Title)
	assert.Equal(t, 11, rec.WordCount)
	require.NotEmpty(t, rec.Keywords)
	assert.Equal(t, "testing", rec.Keywords[0])
	assert.Equal(t, []string{"testing", "report", "title", "short", "about"}, rec.Keywords)
	assert.Equal(t, "Report Title This is a short report about testing testing testing.", rec.Summary)
	assert.Equal(t, "en", rec.Language)
	assert.Equal(t, fixedTime, rec.CreatedTime)
	assert.Equal(t, "text/plain", rec.FileType)

	require.Len(t, det.got, 1)
	assert.Equal(t, "Report Title This is a short report about testing testing testing.", det.got[0],
		"detector sees normalized text")
}

func TestAssembleEmptyText(t *testing.T) {
	a := NewAssembler(&recordingDetector{code: analysis.UnknownLanguage}, nil)
	rec := a.Assemble("", "blank.pdf")

	assert.Equal(t, analysis.UntitledTitle, rec.Title)
	assert.Zero(t, rec.WordCount)
	assert.NotNil(t, rec.Keywords)
	assert.Empty(t, rec.Keywords)
	assert.Empty(t, rec.Summary)
	assert.Equal(t, analysis.UnknownLanguage, rec.Language)
	assert.Equal(t, "application/pdf", rec.FileType)
}

func TestAssembleWithoutDetector(t *testing.T) {
	rec := NewAssembler(nil, nil).Assemble("Some long enough text for detection to be attempted.", "a.txt")
	assert.Equal(t, analysis.UnknownLanguage, rec.Language)
}

func TestAssembleKeywordCount(t *testing.T) {
	a := NewAssembler(nil, nil, WithKeywordCount(2))
	rec := a.Assemble("gamma gamma alpha alpha alpha delta", "x.txt")
	assert.Equal(t, []string{"alpha", "gamma"}, rec.Keywords)
}

func TestAssembleIsPure(t *testing.T) {
	a := NewAssembler(&recordingDetector{code: "en"}, nil, WithClock(func() time.Time { return fixedTime }))
	raw := "Heading\nbody text with several interesting words\n"

	assert.Equal(t, a.Assemble(raw, "n.txt"), a.Assemble(raw, "n.txt"))
}

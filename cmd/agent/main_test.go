package main

import (
	"bytes"
	"testing"

	"istqb-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"run", "once", "ingest"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestIngestCmd_RequiresOneArg(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"ingest"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestIngestCmd_RejectsNonPDF(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"ingest", "main.go"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestPrintReport(t *testing.T) {
	var out bytes.Buffer
	cmd := newOnceCmd()
	cmd.SetOut(&out)

	printReport(cmd, domain.PassReport{
		Listed: 2, Processed: 1, Skipped: 1, Inserted: 3,
		Outcomes: []domain.ProcessingOutcome{
			{SourceID: "a.pdf", Strategy: "heuristic", Generated: 3, Inserted: 3},
			{SourceID: "b.pdf", Skipped: true, SkipReason: "locked"},
		},
	})

	assert.Contains(t, out.String(), "skipped (locked)")
	assert.Contains(t, out.String(), "listed=2 processed=1 skipped=1 inserted=3")
}

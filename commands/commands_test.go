package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boligbudsjett/catalog"
	"boligbudsjett/config"
	"boligbudsjett/scraper/finn"
	"boligbudsjett/utils"
)

const listingHTML = `<html><body>
<h1 class="u-t3">Fjellveien 3, 5019 Bergen</h1>
<dl>
  <dt>Totalpris</dt><dd>4 000 000 kr</dd>
  <dt>Internt bruksareal</dt><dd>70 m² (BRA-i)</dd>
  <dt>Byggeår</dt><dd>1978</dd>
</dl>
</body></html>`

func testApp() *App {
	return &App{
		Config: &config.Config{CompareConcurrency: 2, HTTPAddr: ":0"},
		Logger: utils.NewNopLogger(),
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(testApp())
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeListing(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listing.html")
	require.NoError(t, os.WriteFile(path, []byte(listingHTML), 0644))
	return path
}

func TestCommandTree(t *testing.T) {
	root := NewRootCmd(testApp())
	assert.Equal(t, "boligbudsjett", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"fetch", "catalog", "plan", "serve"}, names)

	plan := PlanCmd(testApp())
	for _, flag := range []string{"url", "html", "select", "equity", "rate", "years", "compare-rates", "report", "csv"} {
		assert.NotNil(t, plan.Flags().Lookup(flag), flag)
	}
	assert.Equal(t, ":0", ServeCmd(testApp()).Flags().Lookup("addr").DefValue)
}

func TestFetchFromFile(t *testing.T) {
	out, err := run(t, "fetch", "--html", writeListing(t))
	require.NoError(t, err)

	var res finn.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "Boligdata hentet", res.Message)
	require.NotNil(t, res.Record.YearBuilt)
	assert.Equal(t, 1978, *res.Record.YearBuilt)
}

func TestFetchNeedsSource(t *testing.T) {
	_, err := run(t, "fetch")
	assert.Error(t, err)

	_, err = run(t, "fetch", "https://www.finn.no/1", "--html", "x.html")
	assert.Error(t, err)
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Våtrom")
	assert.Contains(t, out, "Nytt bad")
	assert.Contains(t, out, "25 000")
	assert.Contains(t, out, "stk")
}

func TestPlanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "kostnadsrapport.txt")
	csvPath := filepath.Join(dir, "oppussing.csv")

	out, err := run(t, "plan",
		"--html", writeListing(t),
		"--select", "Nytt bad=Standard:100",
		"--select", "Nye vinduer=budget:4",
		"--compare-rates", "3.5,5.5",
		"--report", reportPath,
		"--csv", csvPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Fjellveien 3")
	assert.Contains(t, out, "5 774 000 NOK")
	assert.Contains(t, out, "Rentescenarier")

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Kostnadsrapport for Fjellveien 3, 5019 Bergen")
	assert.Contains(t, string(report), "Oppussingskostnad: 1 774 000 NOK")

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Våtrom,Nytt bad,Standard,70.0"))
}

func TestPlanRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no price", []string{"plan"}},
		{"rate out of range", []string{"plan", "--price", "3000000", "--rate", "20"}},
		{"unknown item", []string{"plan", "--price", "3000000", "--select", "Badstue=Standard"}},
		{"bad tier", []string{"plan", "--price", "3000000", "--select", "Nytt bad=Gull"}},
		{"bad compare rate", []string{"plan", "--price", "3000000", "--compare-rates", "fire"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParseSelection(t *testing.T) {
	cat := catalog.Default()

	req, err := parseSelection(cat, "Nytt bad=Standard:75,5")
	require.NoError(t, err)
	assert.Equal(t, "Nytt bad", req.Item)
	assert.Equal(t, "Standard", req.Tier)
	require.NotNil(t, req.Percent)
	assert.Equal(t, 75.5, *req.Percent)
	assert.Nil(t, req.Count)

	req, err = parseSelection(cat, "Nye dører=Premium:3")
	require.NoError(t, err)
	require.NotNil(t, req.Count)
	assert.Equal(t, 3, *req.Count)
	assert.Nil(t, req.Percent)

	req, err = parseSelection(cat, "Maling av vegger=Budget")
	require.NoError(t, err)
	assert.Nil(t, req.Percent)
	assert.Nil(t, req.Count)

	for _, bad := range []string{"Nytt bad", "=Standard", "Nye dører=Budget:2.5", "Nytt bad=Budget:mye"} {
		_, err := parseSelection(cat, bad)
		assert.Error(t, err, bad)
	}
}
